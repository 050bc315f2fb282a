package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atelier-shop/internal/http/response"
	"github.com/atelier-shop/internal/repository"
	"github.com/atelier-shop/internal/service"
)

// GetProducts 获取上架商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID := strings.TrimSpace(c.Query("category_id"))
	search := strings.TrimSpace(c.Query("search"))

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:          page,
		PageSize:      pageSize,
		CategoryID:    categoryID,
		Search:        search,
		OnlyAvailable: true,
		WithCategory:  true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, products, pagination)
}

// GetProductBySlug 根据 slug 获取商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "invalid product slug", nil)
		return
	}

	product, err := h.ProductService.GetBySlug(slug, true)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}

	response.Success(c, product)
}

// GetProductVariants 获取商品规格列表（尺码/颜色）
func (h *Handler) GetProductVariants(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "invalid product slug", nil)
		return
	}

	product, err := h.ProductService.GetBySlug(slug, true)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}

	variants, err := h.ProductVariantService.ListByProduct(product.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "variant fetch failed", err)
		return
	}
	response.Success(c, variants)
}

// GetVariantMeasurements 获取规格的尺寸明细
func (h *Handler) GetVariantMeasurements(c *gin.Context) {
	variantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || variantID == 0 {
		respondError(c, response.CodeBadRequest, "invalid variant id", nil)
		return
	}

	measurements, err := h.ProductVariantService.ListMeasurements(uint(variantID))
	if err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			respondError(c, response.CodeNotFound, "variant not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "measurement fetch failed", err)
		return
	}
	response.Success(c, measurements)
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "category fetch failed", err)
		return
	}
	response.Success(c, categories)
}
