package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                      // 主键
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`                         // 分类ID
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`                          // 唯一标识
	Name          string         `gorm:"not null" json:"name"`                                      // 商品名称
	Description   string         `gorm:"type:text" json:"description"`                              // 商品描述
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`        // 售价
	OriginalPrice *Money         `gorm:"type:decimal(20,2)" json:"original_price,omitempty"`        // 原价（划线价）
	ImageURL      string         `gorm:"type:varchar(500)" json:"image_url"`                        // 主图
	Images        StringArray    `gorm:"type:json" json:"images"`                                   // 图片数组
	DetailImages  StringArray    `gorm:"type:json" json:"detail_images"`                            // 详情图数组
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`                  // 库存数量
	IsAvailable   bool           `gorm:"default:true;index" json:"is_available"`                    // 是否上架
	SortOrder     int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
