package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS libera o front hospedado separado. Origem vazia libera tudo
// (desenvolvimento).
func CORS(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			allow := allowedOrigin
			if allow == "" {
				allow = origin
			}
			if origin == allow || allowedOrigin == "" {
				c.Header("Access-Control-Allow-Origin", allow)
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
				c.Header("Vary", "Origin")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
