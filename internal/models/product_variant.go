package models

import "time"

// ProductVariant 商品规格表（尺码/颜色）
type ProductVariant struct {
	ID            uint      `gorm:"primarykey" json:"id"`                      // 主键
	ProductID     uint      `gorm:"not null;index" json:"product_id"`          // 商品ID
	Size          string    `gorm:"not null" json:"size"`                      // 尺码
	Color         string    `gorm:"default:''" json:"color"`                   // 颜色
	SKU           string    `gorm:"default:'';index" json:"sku"`               // 规格编码
	Price         *Money    `gorm:"type:decimal(20,2)" json:"price,omitempty"` // 规格售价（空则沿用商品售价）
	StockQuantity int       `gorm:"not null;default:0" json:"stock_quantity"`  // 规格库存
	IsAvailable   bool      `gorm:"default:true" json:"is_available"`          // 是否可售
	CreatedAt     time.Time `json:"created_at"`                                // 创建时间
	UpdatedAt     time.Time `json:"updated_at"`                                // 更新时间
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}
