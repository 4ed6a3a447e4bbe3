package cart

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Inovatum/site-vendas/internal/cache"
	"github.com/Inovatum/site-vendas/internal/gateway"
	"github.com/Inovatum/site-vendas/internal/modules/catalog"
	"github.com/Inovatum/site-vendas/internal/shared/apperr"
)

func newService(t *testing.T, gw gateway.Client) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat := catalog.NewService(gw, cache.Noop{}, time.Minute, logger)
	return NewService(NewStore(time.Hour), cat, logger)
}

func TestAddToCartValidatesProduct(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, gateway.NewMemorySeeded())

	// produto 1 tem tamanhos, exige um
	err := svc.AddToCart(ctx, "c1", 1, "", 1)
	var ae *apperr.AppError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, 400, apperr.HTTPStatus(err))

	require.Error(t, svc.AddToCart(ctx, "c1", 1, "XG", 1))

	require.NoError(t, svc.AddToCart(ctx, "c1", 1, "M", 2))

	// produto 2 não tem tamanhos; tamanho enviado é descartado
	require.NoError(t, svc.AddToCart(ctx, "c1", 2, "M", 1))

	c := svc.Get("c1")
	require.Len(t, c.Items, 2)
	require.Equal(t, "M", c.Items[0].Size)
	require.Equal(t, "", c.Items[1].Size)
	require.Equal(t, 13000, c.SubtotalCents())
}

func TestAddToCartRejectsInactiveAndMissing(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, gateway.NewMemorySeeded())

	err := svc.AddToCart(ctx, "c1", 3, "", 1)
	require.Equal(t, 400, apperr.HTTPStatus(err))

	err = svc.AddToCart(ctx, "c1", 99, "", 1)
	require.Equal(t, 404, apperr.HTTPStatus(err))

	emptyCart := svc.Get("c1")
	require.True(t, emptyCart.Empty())
}

func TestAddToCartOffline(t *testing.T) {
	gw := gateway.NewMemorySeeded()
	svc := newService(t, gw)

	// derruba a conexão depois de um refresh bem sucedido
	require.NoError(t, svc.catalog.Refresh(context.Background()))
	gw.Offline = true

	err := svc.AddToCart(context.Background(), "c1", 1, "M", 1)
	require.Equal(t, 503, apperr.HTTPStatus(err))
}

func TestUpdateAndRemoveUnknownItem(t *testing.T) {
	svc := newService(t, gateway.NewMemorySeeded())
	require.Equal(t, 404, apperr.HTTPStatus(svc.UpdateQuantity("c1", 1, 2)))
	require.Equal(t, 404, apperr.HTTPStatus(svc.Remove("c1", 1)))
}

func TestQuantityDefaultsToOne(t *testing.T) {
	svc := newService(t, gateway.NewMemorySeeded())
	require.NoError(t, svc.AddToCart(context.Background(), "c1", 2, "", 0))
	got := svc.Get("c1")
	require.Equal(t, 1, got.ItemsCount())
}
