package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表（下单时的商品快照，后续商品变更不影响历史订单）
type OrderItem struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                       // 主键
	OrderID        uint           `gorm:"index;not null" json:"order_id"`                             // 订单ID
	ProductID      uint           `gorm:"index;not null" json:"product_id"`                           // 商品ID
	ProductName    string         `gorm:"not null" json:"product_name"`                               // 商品名称快照
	ProductPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"product_price"` // 下单时单价
	Quantity       int            `gorm:"not null" json:"quantity"`                                   // 数量
	Status         string         `gorm:"index;not null" json:"status"`                               // 订单项状态
	TrackingNumber string         `gorm:"default:''" json:"tracking_number"`                          // 订单项物流单号
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
