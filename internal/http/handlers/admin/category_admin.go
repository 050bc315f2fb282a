package admin

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/atelier-shop/internal/http/response"
	"github.com/atelier-shop/internal/service"
)

// AdminCategoryRequest 管理端分类请求
type AdminCategoryRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	SortOrder   int    `json:"sort_order"`
}

func respondCategoryWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid category", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeBadRequest, "slug already exists", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeNotFound, "category not found", nil)
	case errors.Is(err, service.ErrCategoryHasProducts):
		respondError(c, response.CodeBadRequest, "category still has products", nil)
	default:
		respondError(c, response.CodeInternal, "category update failed", err)
	}
}

// AdminCreateCategory 管理端创建分类
func (h *Handler) AdminCreateCategory(c *gin.Context) {
	if _, ok := getAdminIdentity(c); !ok {
		return
	}

	var req AdminCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category, err := h.CategoryService.Create(service.CreateCategoryInput{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondCategoryWriteError(c, err)
		return
	}
	response.Success(c, category)
}

// AdminUpdateCategory 管理端更新分类
func (h *Handler) AdminUpdateCategory(c *gin.Context) {
	if _, ok := getAdminIdentity(c); !ok {
		return
	}

	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || categoryID == 0 {
		respondError(c, response.CodeBadRequest, "invalid category id", nil)
		return
	}

	var req AdminCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category, err := h.CategoryService.Update(uint(categoryID), service.CreateCategoryInput{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondCategoryWriteError(c, err)
		return
	}
	response.Success(c, category)
}

// AdminDeleteCategory 管理端删除分类
func (h *Handler) AdminDeleteCategory(c *gin.Context) {
	if _, ok := getAdminIdentity(c); !ok {
		return
	}

	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || categoryID == 0 {
		respondError(c, response.CodeBadRequest, "invalid category id", nil)
		return
	}

	if err := h.CategoryService.Delete(uint(categoryID)); err != nil {
		respondCategoryWriteError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
