package public

import (
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

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

// getIdentity 组装当前请求的访问者身份。
func getIdentity(c *gin.Context) (service.Identity, bool) {
	uid, ok := getUserID(c)
	if !ok {
		return service.Identity{}, false
	}
	identity := service.Identity{
		UserID:  uid,
		IsAdmin: handlershared.GetContextBool(c, "is_admin"),
	}
	if !identity.Valid() {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return service.Identity{}, false
	}
	return identity, true
}
