package settings

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Inovatum/site-vendas/internal/cache"
	"github.com/Inovatum/site-vendas/internal/gateway"
)

func newSettingsService(gw gateway.Client) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(gw, cache.Noop{}, time.Minute, logger)
}

func TestRefetchCreatesDefaultRowOnFirstBoot(t *testing.T) {
	gw := gateway.NewMemory() // sem linha de configurações
	svc := newSettingsService(gw)

	st, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Minha Loja", st.StoreName)
	require.Equal(t, "5511999999999", st.WhatsAppNumber)

	// a linha ficou gravada no backend
	row, err := gw.GetSettings(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Minha Loja", row.StoreName)
}

func TestCurrentHoldsLastGoodSnapshot(t *testing.T) {
	gw := gateway.NewMemorySeeded()
	svc := newSettingsService(gw)

	_, ok := svc.Current()
	require.False(t, ok)

	want, err := svc.Fetch(context.Background())
	require.NoError(t, err)

	// offline o snapshot continua disponível
	gw.Offline = true
	got, ok := svc.Current()
	require.True(t, ok)
	require.Equal(t, want, got)

	_, err = svc.Refetch(context.Background())
	require.Error(t, err)
}

type mapCache map[string][]byte

func (m mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	raw, ok := m[key]
	return raw, ok, nil
}

func (m mapCache) Set(_ context.Context, key string, raw []byte, _ time.Duration) error {
	m[key] = raw
	return nil
}

func (m mapCache) Delete(_ context.Context, key string) error {
	delete(m, key)
	return nil
}

func TestFetchFromWarmCachePopulatesCurrent(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gw := gateway.NewMemorySeeded()

	// um processo anterior deixou o cache quente
	warm := mapCache{}
	first := NewService(gw, warm, time.Minute, logger)
	want, err := first.Fetch(context.Background())
	require.NoError(t, err)

	// processo novo: o primeiro Fetch acerta o cache e, mesmo sem
	// nenhum Refetch, Current já devolve o snapshot
	gw.Offline = true
	fresh := NewService(gw, warm, time.Minute, logger)
	got, err := fresh.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)

	cur, ok := fresh.Current()
	require.True(t, ok)
	require.Equal(t, want, cur)
}

func TestUpdateWritesThrough(t *testing.T) {
	gw := gateway.NewMemorySeeded()
	svc := newSettingsService(gw)

	st, err := svc.Fetch(context.Background())
	require.NoError(t, err)

	st.StoreName = "Loja Nova"
	require.NoError(t, svc.Update(context.Background(), st))

	row, err := gw.GetSettings(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Loja Nova", row.StoreName)

	got, ok := svc.Current()
	require.True(t, ok)
	require.Equal(t, "Loja Nova", got.StoreName)
}
