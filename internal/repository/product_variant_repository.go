package repository

import (
	"errors"

	"github.com/atelier-shop/internal/models"

	"gorm.io/gorm"
)

// ProductVariantRepository 商品规格与尺寸明细数据访问接口
type ProductVariantRepository interface {
	ListByProduct(productID uint) ([]models.ProductVariant, error)
	GetByID(id uint) (*models.ProductVariant, error)
	Create(variant *models.ProductVariant) error
	Update(variant *models.ProductVariant) error
	Delete(id uint) error
	CountBySKU(sku string, excludeID *uint) (int64, error)

	ListMeasurements(variantID uint) ([]models.ProductSizeMeasurement, error)
	GetMeasurementByID(id uint) (*models.ProductSizeMeasurement, error)
	CreateMeasurement(measurement *models.ProductSizeMeasurement) error
	UpdateMeasurement(measurement *models.ProductSizeMeasurement) error
	DeleteMeasurement(id uint) error
}

// GormProductVariantRepository GORM 实现
type GormProductVariantRepository struct {
	db *gorm.DB
}

// NewProductVariantRepository 创建商品规格仓库
func NewProductVariantRepository(db *gorm.DB) *GormProductVariantRepository {
	return &GormProductVariantRepository{db: db}
}

// ListByProduct 获取商品规格列表（按尺码排序）
func (r *GormProductVariantRepository) ListByProduct(productID uint) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := r.db.Where("product_id = ?", productID).Order("size").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// GetByID 根据 ID 获取规格
func (r *GormProductVariantRepository) GetByID(id uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// Create 创建规格
func (r *GormProductVariantRepository) Create(variant *models.ProductVariant) error {
	return r.db.Create(variant).Error
}

// Update 更新规格
func (r *GormProductVariantRepository) Update(variant *models.ProductVariant) error {
	return r.db.Save(variant).Error
}

// Delete 删除规格，连同其尺寸明细一并删除
func (r *GormProductVariantRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_variant_id = ?", id).
			Delete(&models.ProductSizeMeasurement{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ProductVariant{}, id).Error
	})
}

// CountBySKU 统计规格编码数量
func (r *GormProductVariantRepository) CountBySKU(sku string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.ProductVariant{}).Where("sku = ?", sku)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListMeasurements 获取规格尺寸明细（按展示顺序）
func (r *GormProductVariantRepository) ListMeasurements(variantID uint) ([]models.ProductSizeMeasurement, error) {
	var measurements []models.ProductSizeMeasurement
	if err := r.db.Where("product_variant_id = ?", variantID).
		Order("display_order").Find(&measurements).Error; err != nil {
		return nil, err
	}
	return measurements, nil
}

// GetMeasurementByID 根据 ID 获取尺寸明细
func (r *GormProductVariantRepository) GetMeasurementByID(id uint) (*models.ProductSizeMeasurement, error) {
	var measurement models.ProductSizeMeasurement
	if err := r.db.First(&measurement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &measurement, nil
}

// CreateMeasurement 创建尺寸明细
func (r *GormProductVariantRepository) CreateMeasurement(measurement *models.ProductSizeMeasurement) error {
	return r.db.Create(measurement).Error
}

// UpdateMeasurement 更新尺寸明细
func (r *GormProductVariantRepository) UpdateMeasurement(measurement *models.ProductSizeMeasurement) error {
	return r.db.Save(measurement).Error
}

// DeleteMeasurement 删除尺寸明细
func (r *GormProductVariantRepository) DeleteMeasurement(id uint) error {
	return r.db.Delete(&models.ProductSizeMeasurement{}, id).Error
}
