package models

import (
	"time"

	"gorm.io/gorm"
)

// DeliveryAddress 用户收货地址
type DeliveryAddress struct {
	ID            uint           `gorm:"primarykey" json:"id"`             // 主键
	UserID        uint           `gorm:"index;not null" json:"user_id"`    // 用户ID
	RecipientName string         `gorm:"not null" json:"recipient_name"`   // 收件人姓名
	Phone         string         `gorm:"default:''" json:"phone"`          // 联系电话
	Address       string         `gorm:"type:text;not null" json:"address"`
	PostalCode    string         `gorm:"default:''" json:"postal_code"`    // 邮编
	IsDefault     bool           `gorm:"default:false" json:"is_default"`  // 是否默认地址
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`          // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`          // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                   // 软删除时间
}

// TableName 指定表名
func (DeliveryAddress) TableName() string {
	return "delivery_addresses"
}
