package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Inovatum/site-vendas/internal/http/middleware"
	"github.com/Inovatum/site-vendas/internal/http/validation"
	"github.com/Inovatum/site-vendas/internal/modules/settings"
	"github.com/Inovatum/site-vendas/internal/shared/apperr"
)

type SettingsHandler struct {
	Settings *settings.Service
}

func NewSettingsHandler(st *settings.Service) *SettingsHandler {
	return &SettingsHandler{Settings: st}
}

// Get: GET /api/admin/settings — visão completa, cupons incluídos.
func (h *SettingsHandler) Get(c *gin.Context) {
	st, err := h.Settings.Fetch(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

type couponReq struct {
	Code       string     `json:"code"`
	Type       string     `json:"type" binding:"omitempty,oneof=percentage fixed"`
	Value      *float64   `json:"value" binding:"omitempty,gte=0"`
	Expiration *time.Time `json:"expiration"`
	UsageLimit *int       `json:"usage_limit"`
}

type settingsReq struct {
	StoreName         string      `json:"store_name" binding:"required"`
	WhatsAppNumber    string      `json:"whatsapp_number" binding:"required"`
	MonthlySales      int         `json:"monthly_sales" binding:"gte=0"`
	FooterText        string      `json:"footer_text"`
	FooterCompanyName string      `json:"footer_company_name"`
	BrowserTabTitle   string      `json:"browser_tab_title"`
	FaviconURL        string      `json:"favicon_url"`
	PixCopyPaste      string      `json:"pix_copy_paste"`
	Coupons           []couponReq `json:"coupons" binding:"max=3,dive"`
}

// Update: PUT /api/admin/settings — a linha inteira de uma vez, como o
// formulário do painel grava.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req settingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Dados das configurações inválidos.", validation.FromBindError(err, &req)))
		return
	}

	st, err := h.Settings.Fetch(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.UnavailableErr("Sem conexão com o servidor. Tente novamente."))
		return
	}

	coupons := make([]settings.Coupon, 0, len(req.Coupons))
	for _, cr := range req.Coupons {
		coupons = append(coupons, settings.Coupon{
			Code:       cr.Code,
			Type:       settings.CouponType(cr.Type),
			Value:      cr.Value,
			Expiration: cr.Expiration,
			UsageLimit: cr.UsageLimit,
		})
	}

	next := settings.Settings{
		ID:                st.ID,
		StoreName:         req.StoreName,
		WhatsAppNumber:    req.WhatsAppNumber,
		MonthlySales:      req.MonthlySales,
		FooterText:        req.FooterText,
		FooterCompanyName: req.FooterCompanyName,
		BrowserTabTitle:   req.BrowserTabTitle,
		FaviconURL:        req.FaviconURL,
		PixCopyPaste:      req.PixCopyPaste,
		Coupons:           coupons,
	}

	if err := h.Settings.Update(c.Request.Context(), next); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, next)
}
