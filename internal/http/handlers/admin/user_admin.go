package admin

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atelier-shop/internal/cache"
	"github.com/atelier-shop/internal/constants"
	"github.com/atelier-shop/internal/http/response"
	"github.com/atelier-shop/internal/models"
	"github.com/atelier-shop/internal/repository"
)

// AdminUserListItem 管理端用户列表返回，不含密码散列
type AdminUserListItem struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	UserName   string `json:"user_name"`
	Phone      string `json:"phone"`
	Status     string `json:"status"`
	IsAdmin    bool   `json:"is_admin"`
	EmailOptIn bool   `json:"email_opt_in"`
	CreatedAt  string `json:"created_at"`
}

// AdminBatchUserStatusRequest 批量更新用户状态请求
type AdminBatchUserStatusRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

func buildAdminUserListItem(user models.User) AdminUserListItem {
	return AdminUserListItem{
		ID:         user.ID,
		Email:      user.Email,
		UserName:   user.UserName,
		Phone:      user.Phone,
		Status:     user.Status,
		IsAdmin:    user.IsAdmin,
		EmailOptIn: user.EmailOptIn,
		CreatedAt:  user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// AdminListUsers 管理端用户列表
func (h *Handler) AdminListUsers(c *gin.Context) {
	if _, ok := getAdminIdentity(c); !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	users, total, err := h.UserRepo.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "user fetch failed", err)
		return
	}

	items := make([]AdminUserListItem, 0, len(users))
	for _, user := range users {
		items = append(items, buildAdminUserListItem(user))
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, items, pagination)
}

// AdminBatchUpdateUserStatus 批量启用/禁用用户
func (h *Handler) AdminBatchUpdateUserStatus(c *gin.Context) {
	if _, ok := getAdminIdentity(c); !ok {
		return
	}

	var req AdminBatchUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		respondError(c, response.CodeBadRequest, "invalid user status", nil)
		return
	}
	if len(req.UserIDs) == 0 {
		respondError(c, response.CodeBadRequest, "user_ids required", nil)
		return
	}

	if err := h.UserRepo.BatchUpdateStatus(req.UserIDs, status); err != nil {
		respondError(c, response.CodeInternal, "user update failed", err)
		return
	}
	for _, userID := range req.UserIDs {
		_ = cache.DelUserAuthState(c.Request.Context(), userID)
	}
	response.Success(c, gin.H{"updated": len(req.UserIDs)})
}
