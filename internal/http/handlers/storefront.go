// Package handlers tem os handlers HTTP da vitrine e da sessão de
// compra. Os handlers do painel admin ficam em handlers/admin.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Inovatum/site-vendas/internal/gateway"
	"github.com/Inovatum/site-vendas/internal/http/middleware"
	"github.com/Inovatum/site-vendas/internal/modules/catalog"
	"github.com/Inovatum/site-vendas/internal/modules/settings"
	"github.com/Inovatum/site-vendas/internal/modules/theme"
	"github.com/Inovatum/site-vendas/pkg/view"
)

type StorefrontHandler struct {
	Catalog  *catalog.Service
	Settings *settings.Service
	Theme    *theme.Service
	GW       gateway.Client
}

func NewStorefrontHandler(cat *catalog.Service, st *settings.Service, th *theme.Service, gw gateway.Client) *StorefrontHandler {
	return &StorefrontHandler{Catalog: cat, Settings: st, Theme: th, GW: gw}
}

// Products: GET /api/products?search=&category=
func (h *StorefrontHandler) Products(c *gin.Context) {
	products, err := h.Catalog.ActiveProducts(c.Request.Context(), c.Query("search"), c.Query("category"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	out := make([]view.Product, 0, len(products))
	for _, p := range products {
		out = append(out, toViewProduct(p))
	}
	c.JSON(http.StatusOK, gin.H{
		"products":  out,
		"connected": h.Catalog.Connected(),
	})
}

// Categories: GET /api/categories — a barra de filtro da vitrine.
func (h *StorefrontHandler) Categories(c *gin.Context) {
	names, err := h.Catalog.CategoryNames(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": names})
}

// publicSettings é a projeção sem os cupons; seus códigos não vazam
// para a vitrine.
type publicSettings struct {
	StoreName         string `json:"store_name"`
	MonthlySales      int    `json:"monthly_sales"`
	FooterText        string `json:"footer_text"`
	FooterCompanyName string `json:"footer_company_name,omitempty"`
	BrowserTabTitle   string `json:"browser_tab_title,omitempty"`
	FaviconURL        string `json:"favicon_url,omitempty"`
}

// PublicSettings: GET /api/settings
func (h *StorefrontHandler) PublicSettings(c *gin.Context) {
	st, err := h.Settings.Fetch(c.Request.Context())
	if err != nil {
		// offline, serve o último snapshot bom se houver
		var ok bool
		if st, ok = h.Settings.Current(); !ok {
			middleware.Fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, publicSettings{
		StoreName:         st.StoreName,
		MonthlySales:      st.MonthlySales,
		FooterText:        st.FooterText,
		FooterCompanyName: st.FooterCompanyName,
		BrowserTabTitle:   st.BrowserTabTitle,
		FaviconURL:        st.FaviconURL,
	})
}

// ThemeCSS: GET /theme.css
func (h *StorefrontHandler) ThemeCSS(c *gin.Context) {
	css := h.Theme.CSS(c.Request.Context())
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(css))
}

// Customization: GET /api/customization — a forma tipada, para clientes
// que preferem aplicar o tema por JSON em vez da folha pronta.
func (h *StorefrontHandler) Customization(c *gin.Context) {
	cz, err := h.Theme.Fetch(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cz)
}

// Health: GET /healthz — pinga o backend e reporta a flag de conexão.
func (h *StorefrontHandler) Health(c *gin.Context) {
	status := http.StatusOK
	if err := h.GW.Ping(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"connected": h.GW.Connected()})
}

func toViewProduct(p gateway.Product) view.Product {
	return view.Product{
		ID:         p.ID,
		Name:       p.Name,
		PriceCents: p.PriceCents,
		Price:      view.FormatBRL(p.PriceCents),
		Image:      p.Image,
		Image2:     p.Image2,
		Category:   p.Category,
		Sizes:      p.Sizes,
		Stock:      p.Stock,
		Status:     p.Status,
	}
}
