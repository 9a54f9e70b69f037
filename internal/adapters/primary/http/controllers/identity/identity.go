package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderUserID заголовок, в котором шлюз авторизации передаёт пользователя
const HeaderUserID = "X-User-ID"

// UserID достаёт идентификатор пользователя из заголовка запроса.
// При отсутствии или невалидном значении пишет 401 и возвращает false.
func UserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw := ctx.GetHeader(HeaderUserID)
	if raw == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid X-User-ID header"})
		return uuid.Nil, false
	}

	return userID, true
}
