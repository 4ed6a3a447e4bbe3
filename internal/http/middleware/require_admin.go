package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Inovatum/site-vendas/internal/modules/auth"
)

const CtxKeyAdmin = "admin_identity"

// RequireAdmin exige um Bearer token válido e uma sessão viva.
func RequireAdmin(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "Autenticação necessária.",
				"request_id": GetRequestID(c),
			})
			return
		}

		ident, err := sessions.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "Sessão inválida ou expirada.",
				"request_id": GetRequestID(c),
			})
			return
		}

		c.Set(CtxKeyAdmin, ident)
		c.Next()
	}
}

func CurrentAdmin(c *gin.Context) (auth.Identity, bool) {
	if v, ok := c.Get(CtxKeyAdmin); ok {
		if id, ok := v.(auth.Identity); ok {
			return id, true
		}
	}
	return auth.Identity{}, false
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
