// Package http monta o roteador gin da loja: vitrine e carrinho
// públicos, painel admin atrás de sessão JWT.
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/Inovatum/site-vendas/internal/gateway"
	"github.com/Inovatum/site-vendas/internal/http/cartid"
	"github.com/Inovatum/site-vendas/internal/http/handlers"
	adminh "github.com/Inovatum/site-vendas/internal/http/handlers/admin"
	"github.com/Inovatum/site-vendas/internal/http/middleware"
	"github.com/Inovatum/site-vendas/internal/modules/auth"
	"github.com/Inovatum/site-vendas/internal/modules/cart"
	"github.com/Inovatum/site-vendas/internal/modules/catalog"
	"github.com/Inovatum/site-vendas/internal/modules/checkout"
	"github.com/Inovatum/site-vendas/internal/modules/coupon"
	"github.com/Inovatum/site-vendas/internal/modules/settings"
	"github.com/Inovatum/site-vendas/internal/modules/theme"
	"github.com/Inovatum/site-vendas/internal/storage"
)

type Deps struct {
	GW       gateway.Client
	Catalog  *catalog.Service
	Settings *settings.Service
	Theme    *theme.Service
	Carts    *cart.Service
	Coupons  *coupon.Engine
	Checkout *checkout.Service
	Auth     *auth.Driver
	Sessions *auth.Sessions
	Uploads  storage.Storage

	CartCookie    *cartid.Codec
	AllowedOrigin string
}

func NewRouter(logger *slog.Logger, d Deps) *gin.Engine {
	r := gin.New()
	// ErrorHandler precisa envolver o Recovery: o erro registrado no
	// recover de um panic só vira o envelope JSON de 500 se o pós-Next
	// do ErrorHandler ainda estiver na pilha.
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(d.AllowedOrigin),
		middleware.ErrorHandler(logger),
		middleware.Recovery(logger),
	)

	store := handlers.NewStorefrontHandler(d.Catalog, d.Settings, d.Theme, d.GW)
	cartH := handlers.NewCartHandler(d.CartCookie, d.Carts, d.Settings, d.Coupons, d.Checkout)
	checkoutH := handlers.NewCheckoutHandler(d.CartCookie, d.Checkout)
	authH := handlers.NewAuthHandler(d.Auth, d.Sessions)

	r.GET("/healthz", store.Health)
	r.GET("/theme.css", store.ThemeCSS)

	api := r.Group("/api")
	{
		api.GET("/products", store.Products)
		api.GET("/categories", store.Categories)
		api.GET("/settings", store.PublicSettings)
		api.GET("/customization", store.Customization)

		api.GET("/cart", cartH.Show)
		api.POST("/cart/items", cartH.AddItem)
		api.PATCH("/cart/items/:id", cartH.UpdateItem)
		api.DELETE("/cart/items/:id", cartH.RemoveItem)
		api.DELETE("/cart", cartH.Clear)
		api.POST("/cart/coupon", cartH.ApplyCoupon)
		api.DELETE("/cart/coupon", cartH.RemoveCoupon)

		api.POST("/checkout", checkoutH.Finalize)

		api.POST("/admin/login", authH.Login)
		api.POST("/admin/logout", authH.Logout)
	}

	adm := api.Group("/admin", middleware.RequireAdmin(d.Sessions))
	{
		products := adminh.NewProductsHandler(d.Catalog, d.Uploads)
		adm.GET("/products", products.List)
		adm.POST("/products", products.Create)
		adm.PUT("/products/:id", products.Update)
		adm.DELETE("/products/:id", products.Delete)
		adm.POST("/products/:id/toggle", products.Toggle)
		adm.POST("/products/images", products.UploadImage)

		categories := adminh.NewCategoriesHandler(d.Catalog)
		adm.GET("/categories", categories.List)
		adm.POST("/categories", categories.Create)
		adm.PUT("/categories/:id", categories.Update)
		adm.DELETE("/categories/:id", categories.Delete)

		settingsH := adminh.NewSettingsHandler(d.Settings)
		adm.GET("/settings", settingsH.Get)
		adm.PUT("/settings", settingsH.Update)

		customizationH := adminh.NewCustomizationHandler(d.Theme)
		adm.GET("/customization", customizationH.Get)
		adm.PUT("/customization", customizationH.Update)

		uploads := adminh.NewUploadsHandler(d.Uploads)
		adm.POST("/uploads/logo", uploads.Logo)
		adm.POST("/uploads/favicon", uploads.Favicon)
	}

	return r
}
