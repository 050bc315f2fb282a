package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/atelier-shop/internal/http/response"
	"github.com/atelier-shop/internal/models"
	"github.com/atelier-shop/internal/service"
)

// AdminVariantRequest 管理端商品规格请求
type AdminVariantRequest struct {
	Size          string `json:"size" binding:"required"`
	Color         string `json:"color"`
	SKU           string `json:"sku"`
	Price         string `json:"price"`
	StockQuantity int    `json:"stock_quantity"`
	IsAvailable   bool   `json:"is_available"`
}

func (req AdminVariantRequest) toInput() (service.ProductVariantInput, error) {
	input := service.ProductVariantInput{
		Size:          req.Size,
		Color:         req.Color,
		SKU:           req.SKU,
		StockQuantity: req.StockQuantity,
		IsAvailable:   req.IsAvailable,
	}
	if strings.TrimSpace(req.Price) != "" {
		price, err := models.NewMoneyFromString(req.Price)
		if err != nil {
			return service.ProductVariantInput{}, err
		}
		input.Price = &price
	}
	return input, nil
}

// AdminMeasurementRequest 管理端尺寸明细请求，数值字段为空表示该部位不适用
type AdminMeasurementRequest struct {
	TotalLength   *string `json:"total_length"`
	ShoulderWidth *string `json:"shoulder_width"`
	ChestSection  *string `json:"chest_section"`
	SleeveLength  *string `json:"sleeve_length"`
	WaistSection  *string `json:"waist_section"`
	HipSection    *string `json:"hip_section"`
	ThighSection  *string `json:"thigh_section"`
	DisplayOrder  int     `json:"display_order"`
}

func parseMeasurementValue(raw *string) (*decimal.Decimal, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*raw))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (req AdminMeasurementRequest) toInput() (service.SizeMeasurementInput, error) {
	input := service.SizeMeasurementInput{DisplayOrder: req.DisplayOrder}
	fields := []struct {
		raw  *string
		dest **decimal.Decimal
	}{
		{req.TotalLength, &input.TotalLength},
		{req.ShoulderWidth, &input.ShoulderWidth},
		{req.ChestSection, &input.ChestSection},
		{req.SleeveLength, &input.SleeveLength},
		{req.WaistSection, &input.WaistSection},
		{req.HipSection, &input.HipSection},
		{req.ThighSection, &input.ThighSection},
	}
	for _, f := range fields {
		value, err := parseMeasurementValue(f.raw)
		if err != nil {
			return service.SizeMeasurementInput{}, err
		}
		*f.dest = value
	}
	return input, nil
}

func respondVariantWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid variant", nil)
	case errors.Is(err, service.ErrVariantSKUExists):
		respondError(c, response.CodeBadRequest, "sku already exists", nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	case errors.Is(err, service.ErrVariantNotFound):
		respondError(c, response.CodeNotFound, "variant not found", nil)
	case errors.Is(err, service.ErrMeasurementNotFound):
		respondError(c, response.CodeNotFound, "measurement not found", nil)
	default:
		respondError(c, response.CodeInternal, "variant update failed", err)
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}

// AdminListVariants 管理端商品规格列表
func (h *Handler) AdminListVariants(c *gin.Context) {
	if _, ok := getAdminIdentity(c); !ok {
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	variants, err := h.ProductVariantService.ListByProduct(productID)
	if err != nil {
		respondVariantWriteError(c, err)
		return
	}
	response.Success(c, variants)
}

// AdminCreateVariant 管理端创建商品规格
func (h *Handler) AdminCreateVariant(c *gin.Context) {
	if _, ok := getAdminIdentity(c); !ok {
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AdminVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid price", err)
		return
	}

	variant, err := h.ProductVariantService.CreateVariant(productID, input)
	if err != nil {
		respondVariantWriteError(c, err)
		return
	}
	response.Success(c, variant)
}

// AdminUpdateVariant 管理端更新商品规格
func (h *Handler) AdminUpdateVariant(c *gin.Context) {
	if _, ok := getAdminIdentity(c); !ok {
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variantID, ok := parseIDParam(c, "variant_id")
	if !ok {
		return
	}

	var req AdminVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid price", err)
		return
	}

	variant, err := h.ProductVariantService.UpdateVariant(productID, variantID, input)
	if err != nil {
		respondVariantWriteError(c, err)
		return
	}
	response.Success(c, variant)
}

// AdminDeleteVariant 管理端删除商品规格
func (h *Handler) AdminDeleteVariant(c *gin.Context) {
	if _, ok := getAdminIdentity(c); !ok {
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variantID, ok := parseIDParam(c, "variant_id")
	if !ok {
		return
	}

	if err := h.ProductVariantService.DeleteVariant(productID, variantID); err != nil {
		respondVariantWriteError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// AdminListMeasurements 管理端尺寸明细列表
func (h *Handler) AdminListMeasurements(c *gin.Context) {
	if _, ok := getAdminIdentity(c); !ok {
		return
	}
	variantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	measurements, err := h.ProductVariantService.ListMeasurements(variantID)
	if err != nil {
		respondVariantWriteError(c, err)
		return
	}
	response.Success(c, measurements)
}

// AdminCreateMeasurement 管理端创建尺寸明细
func (h *Handler) AdminCreateMeasurement(c *gin.Context) {
	if _, ok := getAdminIdentity(c); !ok {
		return
	}
	variantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AdminMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid measurement", err)
		return
	}

	measurement, err := h.ProductVariantService.CreateMeasurement(variantID, input)
	if err != nil {
		respondVariantWriteError(c, err)
		return
	}
	response.Success(c, measurement)
}

// AdminUpdateMeasurement 管理端更新尺寸明细
func (h *Handler) AdminUpdateMeasurement(c *gin.Context) {
	if _, ok := getAdminIdentity(c); !ok {
		return
	}
	measurementID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AdminMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid measurement", err)
		return
	}

	measurement, err := h.ProductVariantService.UpdateMeasurement(measurementID, input)
	if err != nil {
		respondVariantWriteError(c, err)
		return
	}
	response.Success(c, measurement)
}

// AdminDeleteMeasurement 管理端删除尺寸明细
func (h *Handler) AdminDeleteMeasurement(c *gin.Context) {
	if _, ok := getAdminIdentity(c); !ok {
		return
	}
	measurementID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ProductVariantService.DeleteMeasurement(measurementID); err != nil {
		respondVariantWriteError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
