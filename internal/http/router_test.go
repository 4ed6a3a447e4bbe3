package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Inovatum/site-vendas/internal/cache"
	"github.com/Inovatum/site-vendas/internal/gateway"
	"github.com/Inovatum/site-vendas/internal/http/cartid"
	"github.com/Inovatum/site-vendas/internal/modules/auth"
	"github.com/Inovatum/site-vendas/internal/modules/cart"
	"github.com/Inovatum/site-vendas/internal/modules/catalog"
	"github.com/Inovatum/site-vendas/internal/modules/checkout"
	"github.com/Inovatum/site-vendas/internal/modules/coupon"
	"github.com/Inovatum/site-vendas/internal/modules/payments"
	"github.com/Inovatum/site-vendas/internal/modules/settings"
	"github.com/Inovatum/site-vendas/internal/modules/theme"
	"github.com/Inovatum/site-vendas/internal/storage"
)

func pf(v float64) *float64 { return &v }

type testApp struct {
	gw     *gateway.Memory
	router *gin.Engine
	// cookie do carrinho, preenchido na primeira resposta
	cartCookie *nethttp.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	gw := gateway.NewMemorySeeded()
	gw.SeedSettings(gateway.SettingsRow{
		StoreName:      "Minha Loja",
		WhatsAppNumber: "5511999999999",
		CouponCode1:    "DEZ",
		CouponType1:    "percentage",
		CouponValue1:   pf(0.10),
	})
	gw.SeedAdmin(gateway.AdminUser{Username: "admin", FullName: "Dona", IsActive: true}, "segredo")

	catalogSvc := catalog.NewService(gw, cache.Noop{}, time.Minute, logger)
	settingsSvc := settings.NewService(gw, cache.Noop{}, time.Minute, logger)
	themeSvc := theme.NewService(gw, cache.Noop{}, time.Minute, logger)
	carts := cart.NewStore(time.Hour)
	cartSvc := cart.NewService(carts, catalogSvc, logger)
	engine := coupon.NewEngine(gw, logger)
	checkoutSvc := checkout.NewService(carts, settingsSvc, engine,
		payments.StaticProvider{Code: "pix-de-teste"}, catalogSvc, logger)
	sessions := auth.NewSessions("segredo-de-teste-bem-comprido", time.Hour, auth.NewMemorySessionStore())

	router := NewRouter(logger, Deps{
		GW:            gw,
		Catalog:       catalogSvc,
		Settings:      settingsSvc,
		Theme:         themeSvc,
		Carts:         cartSvc,
		Coupons:       engine,
		Checkout:      checkoutSvc,
		Auth:          auth.NewDriver(gw, "", "", logger),
		Sessions:      sessions,
		Uploads:       storage.NewLocal(t.TempDir(), "/uploads"),
		CartCookie:    cartid.New([]byte("segredo-do-cookie"), "cart_id", false),
		AllowedOrigin: "*",
	})
	return &testApp{gw: gw, router: router}
}

func (a *testApp) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.cartCookie != nil {
		req.AddCookie(a.cartCookie)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "cart_id" && ck.Value != "" {
			a.cartCookie = ck
		}
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestStorefrontEndpoints(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, "GET", "/api/products", "", nil)
	require.Equal(t, 200, rec.Code)
	body := decode(t, rec)
	require.Len(t, body["products"], 2)
	require.Equal(t, true, body["connected"])

	rec = app.do(t, "GET", "/api/categories", "", nil)
	require.Equal(t, 200, rec.Code)
	require.Equal(t, []any{"Todos", "Roupas", "Perfumes"}, decode(t, rec)["categories"])

	// a projeção pública não vaza os cupons
	rec = app.do(t, "GET", "/api/settings", "", nil)
	require.Equal(t, 200, rec.Code)
	require.NotContains(t, rec.Body.String(), "DEZ")
	require.Equal(t, "Minha Loja", decode(t, rec)["store_name"])

	rec = app.do(t, "GET", "/theme.css", "", nil)
	require.Equal(t, 200, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	require.Contains(t, rec.Body.String(), ":root {")

	rec = app.do(t, "GET", "/healthz", "", nil)
	require.Equal(t, 200, rec.Code)
}

func TestCartAndCheckoutFlow(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, "POST", "/api/cart/items", `{"product_id":1,"size":"M","quantity":2}`, nil)
	require.Equal(t, 200, rec.Code)
	require.NotNil(t, app.cartCookie)

	rec = app.do(t, "POST", "/api/cart/items", `{"product_id":2}`, nil)
	require.Equal(t, 200, rec.Code)
	body := decode(t, rec)
	require.Equal(t, float64(3), body["items_count"])
	require.Equal(t, float64(13000), body["subtotal_cents"])

	// cupom normalizado e congelado
	rec = app.do(t, "POST", "/api/cart/coupon", `{"code":" dez "}`, nil)
	require.Equal(t, 200, rec.Code)
	body = decode(t, rec)
	require.Equal(t, "DEZ", body["coupon_code"])
	require.Equal(t, float64(1300), body["discount_cents"])
	require.Equal(t, float64(11700), body["total_cents"])

	// código que não casa devolve 400 e derruba o cupom anterior
	rec = app.do(t, "POST", "/api/cart/coupon", `{"code":"NADA"}`, nil)
	require.Equal(t, 400, rec.Code)
	require.Equal(t, "O cupom digitado não é válido.", decode(t, rec)["error"])

	rec = app.do(t, "GET", "/api/cart", "", nil)
	require.Empty(t, decode(t, rec)["coupon_code"])

	rec = app.do(t, "POST", "/api/cart/coupon", `{"code":"DEZ"}`, nil)
	require.Equal(t, 200, rec.Code)

	// whatsapp: deep link com total com desconto; o carrinho fica
	rec = app.do(t, "POST", "/api/checkout", `{"method":"whatsapp"}`, nil)
	require.Equal(t, 200, rec.Code)
	body = decode(t, rec)
	require.Equal(t, "whatsapp", body["method"])
	require.Equal(t, float64(11700), body["total_cents"])
	require.Contains(t, body["whatsapp_url"], "https://wa.me/5511999999999?text=")

	rec = app.do(t, "GET", "/api/cart", "", nil)
	require.Equal(t, float64(3), decode(t, rec)["items_count"])

	// pix: código do provider e contador de exibição
	rec = app.do(t, "POST", "/api/checkout", `{"method":"pix"}`, nil)
	require.Equal(t, 200, rec.Code)
	body = decode(t, rec)
	require.Equal(t, "pix-de-teste", body["pix_code"])
	require.Equal(t, float64(1800), body["pix_expires_in_seconds"])

	// método desconhecido nem chega ao serviço
	rec = app.do(t, "POST", "/api/checkout", `{"method":"boleto"}`, nil)
	require.Equal(t, 400, rec.Code)

	// esvazia tudo
	rec = app.do(t, "DELETE", "/api/cart", "", nil)
	require.Equal(t, float64(0), decode(t, rec)["items_count"])
}

func TestAdminRequiresSession(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, "GET", "/api/admin/products", "", nil)
	require.Equal(t, 401, rec.Code)

	rec = app.do(t, "POST", "/api/admin/login", `{"username":"admin","password":"errada"}`, nil)
	require.Equal(t, 401, rec.Code)

	rec = app.do(t, "POST", "/api/admin/login", `{"username":"admin","password":"segredo"}`, nil)
	require.Equal(t, 200, rec.Code)
	token, _ := decode(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	bearer := map[string]string{"Authorization": "Bearer " + token}
	rec = app.do(t, "GET", "/api/admin/products", "", bearer)
	require.Equal(t, 200, rec.Code)

	// logout derruba a sessão na hora
	rec = app.do(t, "POST", "/api/admin/logout", "", bearer)
	require.Equal(t, 200, rec.Code)
	rec = app.do(t, "GET", "/api/admin/products", "", bearer)
	require.Equal(t, 401, rec.Code)
}

func TestAdminSettingsRoundTrip(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, "POST", "/api/admin/login", `{"username":"admin","password":"segredo"}`, nil)
	require.Equal(t, 200, rec.Code)
	token, _ := decode(t, rec)["token"].(string)
	bearer := map[string]string{"Authorization": "Bearer " + token}

	rec = app.do(t, "GET", "/api/admin/settings", "", bearer)
	require.Equal(t, 200, rec.Code)
	// a visão do admin inclui os cupons
	require.Contains(t, rec.Body.String(), "DEZ")

	rec = app.do(t, "PUT", "/api/admin/settings",
		`{"store_name":"Loja Nova","whatsapp_number":"5511888888888","coupons":[{"code":"VINTE","type":"percentage","value":0.20}]}`,
		bearer)
	require.Equal(t, 200, rec.Code)

	rec = app.do(t, "GET", "/api/settings", "", nil)
	require.Equal(t, "Loja Nova", decode(t, rec)["store_name"])

	// mais de três cupons é recusado na validação
	rec = app.do(t, "PUT", "/api/admin/settings",
		`{"store_name":"Loja","whatsapp_number":"55","coupons":[{"code":"A"},{"code":"B"},{"code":"C"},{"code":"D"}]}`,
		bearer)
	require.Equal(t, 400, rec.Code)
}

func TestPanicBecomesJSON500(t *testing.T) {
	app := newTestApp(t)
	app.router.GET("/explode", func(*gin.Context) {
		panic("estourou")
	})

	rec := app.do(t, "GET", "/explode", "", nil)
	require.Equal(t, 500, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "Ocorreu um erro inesperado.", body["error"])
	require.NotEmpty(t, body["request_id"])
}

func TestValidationErrorsCarryFields(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, "POST", "/api/cart/items", `{"quantity":2}`, nil)
	require.Equal(t, 400, rec.Code)
	body := decode(t, rec)
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, fields, "product_id")
	require.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
}
