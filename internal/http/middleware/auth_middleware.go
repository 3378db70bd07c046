package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/morsalin101/chat-app/domain"
)

// AuthMiddleware resolves the Authorization header to an account and stores
// it in the request context under "account".
func AuthMiddleware(authSvc domain.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		account, err := authSvc.ResolveBearer(c.Request.Context(), authHeader)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			case errors.Is(err, domain.ErrAccountNotFound):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set("account", account)
		c.Next()
	}
}
