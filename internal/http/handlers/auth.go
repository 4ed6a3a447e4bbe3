package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Inovatum/site-vendas/internal/http/middleware"
	"github.com/Inovatum/site-vendas/internal/http/validation"
	"github.com/Inovatum/site-vendas/internal/modules/auth"
	"github.com/Inovatum/site-vendas/internal/shared/apperr"
)

type AuthHandler struct {
	Driver   *auth.Driver
	Sessions *auth.Sessions
}

func NewAuthHandler(driver *auth.Driver, sessions *auth.Sessions) *AuthHandler {
	return &AuthHandler{Driver: driver, Sessions: sessions}
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login: POST /api/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Informe usuário e senha.", validation.FromBindError(err, &req)))
		return
	}

	ident, err := h.Driver.Authenticate(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	token, expiresAt, err := h.Sessions.Issue(ident)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"admin":      ident,
	})
}

// Logout: POST /api/admin/logout (Bearer)
func (h *AuthHandler) Logout(c *gin.Context) {
	hd := c.GetHeader("Authorization")
	if strings.HasPrefix(hd, "Bearer ") {
		h.Sessions.Revoke(strings.TrimSpace(strings.TrimPrefix(hd, "Bearer ")))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
