package service

import (
	"strings"

	"github.com/atelier-shop/internal/models"
	"github.com/atelier-shop/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductVariantService 商品规格业务服务
type ProductVariantService struct {
	repo        repository.ProductVariantRepository
	productRepo repository.ProductRepository
}

// NewProductVariantService 创建商品规格服务
func NewProductVariantService(repo repository.ProductVariantRepository, productRepo repository.ProductRepository) *ProductVariantService {
	return &ProductVariantService{repo: repo, productRepo: productRepo}
}

// ProductVariantInput 创建/更新规格输入
type ProductVariantInput struct {
	Size          string
	Color         string
	SKU           string
	Price         *models.Money
	StockQuantity int
	IsAvailable   bool
}

// SizeMeasurementInput 创建/更新尺寸明细输入（nil 表示该部位不适用）
type SizeMeasurementInput struct {
	TotalLength   *decimal.Decimal
	ShoulderWidth *decimal.Decimal
	ChestSection  *decimal.Decimal
	SleeveLength  *decimal.Decimal
	WaistSection  *decimal.Decimal
	HipSection    *decimal.Decimal
	ThighSection  *decimal.Decimal
	DisplayOrder  int
}

// ListByProduct 获取商品的规格列表
func (s *ProductVariantService) ListByProduct(productID uint) ([]models.ProductVariant, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.repo.ListByProduct(productID)
}

// CreateVariant 为商品创建规格
func (s *ProductVariantService) CreateVariant(productID uint, input ProductVariantInput) (*models.ProductVariant, error) {
	size := strings.TrimSpace(input.Size)
	if size == "" {
		return nil, ErrInvalidInput
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	sku := strings.TrimSpace(input.SKU)
	if sku != "" {
		count, err := s.repo.CountBySKU(sku, nil)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrVariantSKUExists
		}
	}

	variant := models.ProductVariant{
		ProductID:     productID,
		Size:          size,
		Color:         strings.TrimSpace(input.Color),
		SKU:           sku,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		IsAvailable:   input.IsAvailable,
	}
	if err := s.repo.Create(&variant); err != nil {
		return nil, err
	}
	return &variant, nil
}

// UpdateVariant 更新规格，规格必须属于指定商品
func (s *ProductVariantService) UpdateVariant(productID, variantID uint, input ProductVariantInput) (*models.ProductVariant, error) {
	variant, err := s.getOwnedVariant(productID, variantID)
	if err != nil {
		return nil, err
	}
	size := strings.TrimSpace(input.Size)
	if size == "" {
		return nil, ErrInvalidInput
	}
	sku := strings.TrimSpace(input.SKU)
	if sku != "" {
		count, err := s.repo.CountBySKU(sku, &variantID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrVariantSKUExists
		}
	}

	variant.Size = size
	variant.Color = strings.TrimSpace(input.Color)
	variant.SKU = sku
	variant.Price = input.Price
	variant.StockQuantity = input.StockQuantity
	variant.IsAvailable = input.IsAvailable

	if err := s.repo.Update(variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// DeleteVariant 删除规格（连同尺寸明细）
func (s *ProductVariantService) DeleteVariant(productID, variantID uint) error {
	if _, err := s.getOwnedVariant(productID, variantID); err != nil {
		return err
	}
	return s.repo.Delete(variantID)
}

// ListMeasurements 获取规格的尺寸明细
func (s *ProductVariantService) ListMeasurements(variantID uint) ([]models.ProductSizeMeasurement, error) {
	variant, err := s.repo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	return s.repo.ListMeasurements(variantID)
}

// CreateMeasurement 为规格创建尺寸明细
func (s *ProductVariantService) CreateMeasurement(variantID uint, input SizeMeasurementInput) (*models.ProductSizeMeasurement, error) {
	variant, err := s.repo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}

	measurement := models.ProductSizeMeasurement{
		ProductVariantID: variantID,
		TotalLength:      input.TotalLength,
		ShoulderWidth:    input.ShoulderWidth,
		ChestSection:     input.ChestSection,
		SleeveLength:     input.SleeveLength,
		WaistSection:     input.WaistSection,
		HipSection:       input.HipSection,
		ThighSection:     input.ThighSection,
		DisplayOrder:     input.DisplayOrder,
	}
	if err := s.repo.CreateMeasurement(&measurement); err != nil {
		return nil, err
	}
	return &measurement, nil
}

// UpdateMeasurement 更新尺寸明细
func (s *ProductVariantService) UpdateMeasurement(measurementID uint, input SizeMeasurementInput) (*models.ProductSizeMeasurement, error) {
	measurement, err := s.repo.GetMeasurementByID(measurementID)
	if err != nil {
		return nil, err
	}
	if measurement == nil {
		return nil, ErrMeasurementNotFound
	}

	measurement.TotalLength = input.TotalLength
	measurement.ShoulderWidth = input.ShoulderWidth
	measurement.ChestSection = input.ChestSection
	measurement.SleeveLength = input.SleeveLength
	measurement.WaistSection = input.WaistSection
	measurement.HipSection = input.HipSection
	measurement.ThighSection = input.ThighSection
	measurement.DisplayOrder = input.DisplayOrder

	if err := s.repo.UpdateMeasurement(measurement); err != nil {
		return nil, err
	}
	return measurement, nil
}

// DeleteMeasurement 删除尺寸明细
func (s *ProductVariantService) DeleteMeasurement(measurementID uint) error {
	measurement, err := s.repo.GetMeasurementByID(measurementID)
	if err != nil {
		return err
	}
	if measurement == nil {
		return ErrMeasurementNotFound
	}
	return s.repo.DeleteMeasurement(measurementID)
}

func (s *ProductVariantService) getOwnedVariant(productID, variantID uint) (*models.ProductVariant, error) {
	variant, err := s.repo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil || variant.ProductID != productID {
		return nil, ErrVariantNotFound
	}
	return variant, nil
}
