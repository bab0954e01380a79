package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"baibebalo-system/internal/utils"
)

const (
	ContextUserID   = "userId"
	ContextUsername = "username"
	ContextRole     = "role"
)

func JWTAuth(jwt *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Missing or invalid authorization header",
			})
			return
		}

		claims, err := jwt.ParseToken(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(ContextUserID, claims.UserId)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}
