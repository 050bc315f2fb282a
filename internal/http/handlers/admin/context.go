package admin

import (
	"time"

	"github.com/gin-gonic/gin"

	handlershared "github.com/atelier-shop/internal/http/handlers/shared"
	"github.com/atelier-shop/internal/http/response"
	"github.com/atelier-shop/internal/service"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

// getAdminIdentity 组装管理端访问者身份，要求管理员标记。
func getAdminIdentity(c *gin.Context) (service.Identity, bool) {
	uid, ok := handlershared.GetContextUint(c, "user_id")
	if !ok {
		return service.Identity{}, false
	}
	if !handlershared.GetContextBool(c, "is_admin") {
		respondError(c, response.CodeForbidden, "admin required", nil)
		return service.Identity{}, false
	}
	return service.Identity{UserID: uid, IsAdmin: true}, true
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
