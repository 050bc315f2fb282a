package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo            string         `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	UserID             uint           `gorm:"index;not null" json:"user_id"`                             // 用户ID
	Status             string         `gorm:"index;not null" json:"status"`                              // 订单状态
	TotalAmount        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 订单总额
	ShippingName       string         `gorm:"default:''" json:"shipping_name"`                           // 收件人姓名
	ShippingPhone      string         `gorm:"default:''" json:"shipping_phone"`                          // 收件人电话
	ShippingAddress    string         `gorm:"type:text" json:"shipping_address"`                         // 收货地址
	ShippingPostalCode string         `gorm:"default:''" json:"shipping_postal_code"`                    // 收货邮编
	TrackingNumber     string         `gorm:"default:''" json:"tracking_number"`                         // 物流单号
	PaidAt             *time.Time     `gorm:"index" json:"paid_at"`                                      // 支付确认时间
	CanceledAt         *time.Time     `gorm:"index" json:"canceled_at"`                                  // 取消时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
