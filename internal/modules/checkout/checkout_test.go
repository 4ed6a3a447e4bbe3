package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Inovatum/site-vendas/internal/cache"
	"github.com/Inovatum/site-vendas/internal/gateway"
	"github.com/Inovatum/site-vendas/internal/modules/cart"
	"github.com/Inovatum/site-vendas/internal/modules/catalog"
	"github.com/Inovatum/site-vendas/internal/modules/coupon"
	"github.com/Inovatum/site-vendas/internal/modules/payments"
	"github.com/Inovatum/site-vendas/internal/modules/settings"
	"github.com/Inovatum/site-vendas/internal/shared/apperr"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

type fakeProvider struct {
	charge payments.PixCharge
	err    error
	calls  int
}

func (p *fakeProvider) GeneratePix(_ context.Context, _ int) (payments.PixCharge, error) {
	p.calls++
	return p.charge, p.err
}

type countingDecrementer struct {
	inner coupon.Decrementer
	calls int
}

func (d *countingDecrementer) DecrementCouponUsage(ctx context.Context, code string) (bool, error) {
	d.calls++
	return d.inner.DecrementCouponUsage(ctx, code)
}

type env struct {
	gw       *gateway.Memory
	carts    *cart.Store
	settings *settings.Service
	dec      *countingDecrementer
	provider *fakeProvider
	svc      *Service
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	gw := gateway.NewMemorySeeded()
	gw.SeedSettings(gateway.SettingsRow{
		StoreName:      "Minha Loja",
		WhatsAppNumber: "5511888888888",
		CouponCode1:    "DEZ",
		CouponType1:    "percentage",
		CouponValue1:   f(0.10),
		CouponCode2:    "CINCO",
		CouponType2:    "fixed",
		CouponValue2:   f(5),
		// dois usos restantes
		CouponUsageLimit2: i(2),
	})

	dec := &countingDecrementer{inner: gw}
	provider := &fakeProvider{charge: payments.PixCharge{Code: "copia-e-cola", ExpiresInSeconds: 1800}}

	carts := cart.NewStore(time.Hour)
	st := settings.NewService(gw, cache.Noop{}, time.Minute, logger)
	cat := catalog.NewService(gw, cache.Noop{}, time.Minute, logger)
	eng := coupon.NewEngine(dec, logger)

	return &env{
		gw:       gw,
		carts:    carts,
		settings: st,
		dec:      dec,
		provider: provider,
		svc:      NewService(carts, st, eng, provider, cat, logger),
	}
}

func (e *env) fillCart(t *testing.T, id string, couponCode string) {
	t.Helper()
	err := e.carts.Mutate(id, func(c *cart.Cart) error {
		c.Items = []cart.Item{
			{ProductID: 1, Name: "Camiseta Básica", PriceCents: 5000, Size: "M", Quantity: 2},
			{ProductID: 2, Name: "Perfume Floral", PriceCents: 3000, Quantity: 1},
		}
		if couponCode != "" {
			st, err := e.settings.Fetch(context.Background())
			require.NoError(t, err)
			cp, ok := st.FindCoupon(couponCode)
			require.True(t, ok)
			c.Coupon = &cp
		}
		return nil
	})
	require.NoError(t, err)
}

func TestComposeWhatsAppMessage(t *testing.T) {
	items := []cart.Item{
		{Name: "Camiseta Básica", PriceCents: 5000, Size: "M", Quantity: 2},
		{Name: "Perfume Floral", PriceCents: 3000, Quantity: 1},
	}
	cp := &settings.Coupon{Code: "DEZ", Type: settings.Percentage, Value: f(0.10)}

	got := ComposeWhatsAppMessage(items, "Minha Loja", cp, 1300)
	want := "🛍️ *Pedido Minha Loja*\n\n" +
		"• Camiseta Básica\n" +
		"  Tamanho: M\n" +
		"  Quantidade: 2\n" +
		"  Preço unitário: R$ 50.00\n" +
		"  Subtotal: R$ 100.00\n" +
		"\n" +
		"• Perfume Floral\n" +
		"  Quantidade: 1\n" +
		"  Preço unitário: R$ 30.00\n" +
		"  Subtotal: R$ 30.00\n" +
		"\n💰 *Total: R$ 130.00*\n" +
		"Desconto (DEZ): -R$ 13.00\n" +
		"*Total Final: R$ 117.00*\n\n" +
		"Gostaria de finalizar este pedido!"
	require.Equal(t, want, got)

	// sem cupom não há linha de desconto
	got = ComposeWhatsAppMessage(items[1:], "Minha Loja", nil, 0)
	require.NotContains(t, got, "Desconto")
	require.Contains(t, got, "*Total Final: R$ 30.00*")
	require.NotContains(t, got, "Tamanho:")
}

func TestWhatsAppURLEncodesSpacesAsPercent20(t *testing.T) {
	u := WhatsAppURL("5511888888888", "Olá mundo")
	require.Equal(t, "https://wa.me/5511888888888?text=Ol%C3%A1%20mundo", u)
	require.NotContains(t, u, "+")
}

func TestFinalizeWhatsAppKeepsCart(t *testing.T) {
	e := newEnv(t)
	e.fillCart(t, "c1", "DEZ")

	res, err := e.svc.Finalize(context.Background(), "c1", MethodWhatsApp)
	require.NoError(t, err)
	require.Equal(t, MethodWhatsApp, res.Method)
	require.Equal(t, 11700, res.TotalCents)
	require.Contains(t, res.WhatsAppURL, "https://wa.me/5511888888888?text=")

	// cupom percentual sem limite nunca chama o decremento
	require.Equal(t, 0, e.dec.calls)

	// o carrinho fica intacto; o cliente limpa depois de enviar
	var snap cart.Cart
	e.carts.View("c1", func(c cart.Cart) { snap = c })
	require.Len(t, snap.Items, 2)
	require.NotNil(t, snap.Coupon)
}

func TestFinalizeRedeemsLimitedCoupon(t *testing.T) {
	e := newEnv(t)
	e.fillCart(t, "c1", "CINCO")

	res, err := e.svc.Finalize(context.Background(), "c1", MethodWhatsApp)
	require.NoError(t, err)
	require.Equal(t, 12500, res.TotalCents)
	require.Equal(t, 1, e.dec.calls)

	// o backend decrementou o slot
	row, err := e.gw.GetSettings(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, *row.CouponUsageLimit2)
}

func TestFinalizeDropsStaleCoupon(t *testing.T) {
	e := newEnv(t)
	e.fillCart(t, "c1", "DEZ")

	// o admin apagou o cupom entre o apply e o checkout
	row, err := e.gw.GetSettings(context.Background())
	require.NoError(t, err)
	row.CouponCode1 = ""
	require.NoError(t, e.gw.UpdateSettings(context.Background(), row))

	_, err = e.svc.Finalize(context.Background(), "c1", MethodWhatsApp)
	require.Equal(t, 400, apperr.HTTPStatus(err))

	var snap cart.Cart
	e.carts.View("c1", func(c cart.Cart) { snap = c })
	require.Nil(t, snap.Coupon)
	require.Len(t, snap.Items, 2)
}

func TestFinalizeExhaustedLimitAborts(t *testing.T) {
	e := newEnv(t)
	e.fillCart(t, "c1", "CINCO")

	row, err := e.gw.GetSettings(context.Background())
	require.NoError(t, err)
	row.CouponUsageLimit2 = i(0)
	require.NoError(t, e.gw.UpdateSettings(context.Background(), row))

	_, err = e.svc.Finalize(context.Background(), "c1", MethodWhatsApp)
	require.Equal(t, 409, apperr.HTTPStatus(err))

	var snap cart.Cart
	e.carts.View("c1", func(c cart.Cart) { snap = c })
	require.Nil(t, snap.Coupon)
}

func TestFinalizePix(t *testing.T) {
	e := newEnv(t)
	e.fillCart(t, "c1", "")

	res, err := e.svc.Finalize(context.Background(), "c1", MethodPix)
	require.NoError(t, err)
	require.Equal(t, MethodPix, res.Method)
	require.Equal(t, "copia-e-cola", res.Pix.Code)
	require.Equal(t, 1800, res.Pix.ExpiresInSeconds)

	// a trava de geração foi liberada
	var snap cart.Cart
	e.carts.View("c1", func(c cart.Cart) { snap = c })
	require.False(t, snap.GeneratingPix)
}

func TestFinalizePixSingleFlight(t *testing.T) {
	e := newEnv(t)
	e.fillCart(t, "c1", "")
	require.NoError(t, e.carts.Mutate("c1", func(c *cart.Cart) error {
		c.GeneratingPix = true
		return nil
	}))

	_, err := e.svc.Finalize(context.Background(), "c1", MethodPix)
	require.Equal(t, 409, apperr.HTTPStatus(err))
	require.Equal(t, 0, e.provider.calls)
}

func TestFinalizePixFallsBackToStaticCode(t *testing.T) {
	e := newEnv(t)
	e.fillCart(t, "c1", "")
	e.provider.err = errors.New("function down")

	row, err := e.gw.GetSettings(context.Background())
	require.NoError(t, err)
	row.PixCopyPaste = "chave-fixa"
	require.NoError(t, e.gw.UpdateSettings(context.Background(), row))

	res, err := e.svc.Finalize(context.Background(), "c1", MethodPix)
	require.NoError(t, err)
	require.Equal(t, "chave-fixa", res.Pix.Code)

	// sem código fixo configurado a falha vira indisponibilidade
	row.PixCopyPaste = ""
	require.NoError(t, e.gw.UpdateSettings(context.Background(), row))
	_, err = e.svc.Finalize(context.Background(), "c1", MethodPix)
	require.Equal(t, 503, apperr.HTTPStatus(err))
}

func TestFinalizeGuards(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Finalize(context.Background(), "c1", "boleto")
	require.Equal(t, 400, apperr.HTTPStatus(err))

	_, err = e.svc.Finalize(context.Background(), "c1", MethodWhatsApp)
	require.Equal(t, 400, apperr.HTTPStatus(err)) // carrinho vazio

	e.fillCart(t, "c1", "")
	e.gw.Offline = true
	_, err = e.svc.Finalize(context.Background(), "c1", MethodWhatsApp)
	require.Equal(t, 503, apperr.HTTPStatus(err))
}

func TestDisabled(t *testing.T) {
	e := newEnv(t)

	// carrinho vazio trava
	require.True(t, e.svc.Disabled("c1"))

	e.fillCart(t, "c1", "DEZ")
	_, err := e.settings.Fetch(context.Background())
	require.NoError(t, err)
	require.False(t, e.svc.Disabled("c1"))

	// geração de PIX em voo trava
	require.NoError(t, e.carts.Mutate("c1", func(c *cart.Cart) error {
		c.GeneratingPix = true
		return nil
	}))
	require.True(t, e.svc.Disabled("c1"))
	require.NoError(t, e.carts.Mutate("c1", func(c *cart.Cart) error {
		c.GeneratingPix = false
		return nil
	}))

	// cupom que não vale mais contra o último snapshot trava
	row, err := e.gw.GetSettings(context.Background())
	require.NoError(t, err)
	row.CouponCode1 = ""
	require.NoError(t, e.gw.UpdateSettings(context.Background(), row))
	_, err = e.settings.Refetch(context.Background())
	require.NoError(t, err)
	require.True(t, e.svc.Disabled("c1"))

	// offline trava
	e.gw.Offline = true
	require.True(t, e.svc.Disabled("c1"))
}
