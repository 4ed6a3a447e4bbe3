package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Inovatum/site-vendas/internal/http/middleware"
	"github.com/Inovatum/site-vendas/internal/http/validation"
	"github.com/Inovatum/site-vendas/internal/modules/theme"
	"github.com/Inovatum/site-vendas/internal/shared/apperr"
)

type CustomizationHandler struct {
	Theme *theme.Service
}

func NewCustomizationHandler(th *theme.Service) *CustomizationHandler {
	return &CustomizationHandler{Theme: th}
}

// Get: GET /api/admin/customization
func (h *CustomizationHandler) Get(c *gin.Context) {
	cz, err := h.Theme.Fetch(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cz)
}

type colorsReq struct {
	Primary        string `json:"primary_color" binding:"required,hexcolor"`
	Secondary      string `json:"secondary_color" binding:"required,hexcolor"`
	Accent         string `json:"accent_color" binding:"required,hexcolor"`
	Background     string `json:"background_color" binding:"required,hexcolor"`
	Text           string `json:"text_color" binding:"required,hexcolor"`
	Button         string `json:"button_color" binding:"required,hexcolor"`
	ButtonText     string `json:"button_text_color" binding:"required,hexcolor"`
	SiteBackground string `json:"site_background_color" binding:"required,hexcolor"`
	CardBackground string `json:"card_background_color" binding:"required,hexcolor"`
	CardBorder     string `json:"card_border_color" binding:"required,hexcolor"`
	Header         string `json:"header_color" binding:"required,hexcolor"`
	Footer         string `json:"footer_color" binding:"required,hexcolor"`
	Cart           string `json:"cart_color" binding:"required,hexcolor"`
	Menu           string `json:"menu_color" binding:"required,hexcolor"`
}

type customizationReq struct {
	Colors        colorsReq `json:"colors" binding:"required"`
	LogoURL       string    `json:"logo_url"`
	LogoSize      string    `json:"logo_size" binding:"omitempty,oneof=small medium large"`
	ShowLogo      bool      `json:"show_logo"`
	ShowStoreName bool      `json:"show_store_name"`
	Style         string    `json:"theme_style" binding:"omitempty,oneof=modern classic minimal"`
	CustomCSS     string    `json:"custom_css" binding:"max=20000"`
}

// Update: PUT /api/admin/customization
func (h *CustomizationHandler) Update(c *gin.Context) {
	var req customizationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Dados de personalização inválidos.", validation.FromBindError(err, &req)))
		return
	}

	current, err := h.Theme.Fetch(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.UnavailableErr("Sem conexão com o servidor. Tente novamente."))
		return
	}

	next := theme.Customization{
		ID: current.ID,
		Colors: theme.Colors{
			Primary:        req.Colors.Primary,
			Secondary:      req.Colors.Secondary,
			Accent:         req.Colors.Accent,
			Background:     req.Colors.Background,
			Text:           req.Colors.Text,
			Button:         req.Colors.Button,
			ButtonText:     req.Colors.ButtonText,
			SiteBackground: req.Colors.SiteBackground,
			CardBackground: req.Colors.CardBackground,
			CardBorder:     req.Colors.CardBorder,
			Header:         req.Colors.Header,
			Footer:         req.Colors.Footer,
			Cart:           req.Colors.Cart,
			Menu:           req.Colors.Menu,
		},
		LogoURL:       req.LogoURL,
		LogoSize:      theme.LogoSize(req.LogoSize),
		ShowLogo:      req.ShowLogo,
		ShowStoreName: req.ShowStoreName,
		Style:         theme.ThemeStyle(req.Style),
		CustomCSS:     req.CustomCSS,
	}
	if next.LogoSize == "" {
		next.LogoSize = theme.LogoMedium
	}
	if next.Style == "" {
		next.Style = theme.StyleModern
	}

	if err := h.Theme.Update(c.Request.Context(), next); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, next)
}
