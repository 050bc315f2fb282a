package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atelier-shop/internal/http/response"
	"github.com/atelier-shop/internal/models"
	"github.com/atelier-shop/internal/repository"
	"github.com/atelier-shop/internal/service"
)

// AdminProductRequest 管理端商品请求
type AdminProductRequest struct {
	CategoryID    uint     `json:"category_id" binding:"required"`
	Slug          string   `json:"slug" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Price         string   `json:"price" binding:"required"`
	OriginalPrice string   `json:"original_price"`
	ImageURL      string   `json:"image_url"`
	Images        []string `json:"images"`
	DetailImages  []string `json:"detail_images"`
	StockQuantity int      `json:"stock_quantity"`
	IsAvailable   bool     `json:"is_available"`
	SortOrder     int      `json:"sort_order"`
}

func (req AdminProductRequest) toInput() (service.ProductInput, error) {
	price, err := models.NewMoneyFromString(req.Price)
	if err != nil {
		return service.ProductInput{}, err
	}
	input := service.ProductInput{
		CategoryID:    req.CategoryID,
		Slug:          req.Slug,
		Name:          req.Name,
		Description:   req.Description,
		Price:         price,
		ImageURL:      req.ImageURL,
		Images:        req.Images,
		DetailImages:  req.DetailImages,
		StockQuantity: req.StockQuantity,
		IsAvailable:   req.IsAvailable,
		SortOrder:     req.SortOrder,
	}
	if strings.TrimSpace(req.OriginalPrice) != "" {
		original, err := models.NewMoneyFromString(req.OriginalPrice)
		if err != nil {
			return service.ProductInput{}, err
		}
		input.OriginalPrice = &original
	}
	return input, nil
}

func respondProductWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid product", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeBadRequest, "slug already exists", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "category not found", nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	default:
		respondError(c, response.CodeInternal, "product update failed", err)
	}
}

// AdminListProducts 管理端商品列表，含未上架商品
func (h *Handler) AdminListProducts(c *gin.Context) {
	if _, ok := getAdminIdentity(c); !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   strings.TrimSpace(c.Query("category_id")),
		Search:       strings.TrimSpace(c.Query("search")),
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, products, pagination)
}

// AdminCreateProduct 管理端创建商品
func (h *Handler) AdminCreateProduct(c *gin.Context) {
	if _, ok := getAdminIdentity(c); !ok {
		return
	}

	var req AdminProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid price", err)
		return
	}

	product, err := h.ProductService.Create(input)
	if err != nil {
		respondProductWriteError(c, err)
		return
	}
	response.Success(c, product)
}

// AdminUpdateProduct 管理端更新商品
func (h *Handler) AdminUpdateProduct(c *gin.Context) {
	if _, ok := getAdminIdentity(c); !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}

	var req AdminProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid price", err)
		return
	}

	product, err := h.ProductService.Update(uint(productID), input)
	if err != nil {
		respondProductWriteError(c, err)
		return
	}
	response.Success(c, product)
}

// AdminDeleteProduct 管理端删除商品
func (h *Handler) AdminDeleteProduct(c *gin.Context) {
	if _, ok := getAdminIdentity(c); !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}

	if err := h.ProductService.Delete(uint(productID)); err != nil {
		respondProductWriteError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
