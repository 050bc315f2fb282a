package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSizeMeasurement 商品规格尺寸明细表（单位 cm，空值表示该部位不适用）
type ProductSizeMeasurement struct {
	ID               uint             `gorm:"primarykey" json:"id"`                     // 主键
	ProductVariantID uint             `gorm:"not null;index" json:"product_variant_id"` // 规格ID
	TotalLength      *decimal.Decimal `gorm:"type:decimal(8,2)" json:"total_length"`    // 总长
	ShoulderWidth    *decimal.Decimal `gorm:"type:decimal(8,2)" json:"shoulder_width"`  // 肩宽
	ChestSection     *decimal.Decimal `gorm:"type:decimal(8,2)" json:"chest_section"`   // 胸围
	SleeveLength     *decimal.Decimal `gorm:"type:decimal(8,2)" json:"sleeve_length"`   // 袖长
	WaistSection     *decimal.Decimal `gorm:"type:decimal(8,2)" json:"waist_section"`   // 腰围
	HipSection       *decimal.Decimal `gorm:"type:decimal(8,2)" json:"hip_section"`     // 臀围
	ThighSection     *decimal.Decimal `gorm:"type:decimal(8,2)" json:"thigh_section"`   // 大腿围
	DisplayOrder     int              `gorm:"not null;default:0" json:"display_order"`  // 展示顺序
	CreatedAt        time.Time        `json:"created_at"`                               // 创建时间
}

// TableName 指定表名
func (ProductSizeMeasurement) TableName() string {
	return "product_size_measurements"
}
