package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Inovatum/site-vendas/internal/gateway"
	"github.com/Inovatum/site-vendas/internal/shared/apperr"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func fallbackHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthenticateViaRPC(t *testing.T) {
	gw := gateway.NewMemory()
	gw.SeedAdmin(gateway.AdminUser{Username: "admin", FullName: "Dona da Loja", IsActive: true}, "segredo")

	d := NewDriver(gw, "", "", discard())
	ident, err := d.Authenticate(context.Background(), "admin", "segredo")
	require.NoError(t, err)
	require.Equal(t, "rpc", ident.Source)
	require.Equal(t, "Dona da Loja", ident.FullName)
}

func TestAuthenticateFallsThroughToTable(t *testing.T) {
	gw := gateway.NewMemory()
	gw.SeedAdmin(gateway.AdminUser{Username: "admin", IsActive: true}, "segredo")
	// a função de login está fora do ar, a tabela responde
	gw.LoginRPCErr = true

	d := NewDriver(gw, "", "", discard())
	ident, err := d.Authenticate(context.Background(), "admin", "segredo")
	require.NoError(t, err)
	require.Equal(t, "table", ident.Source)
}

func TestAuthenticateFallsThroughToFallback(t *testing.T) {
	gw := gateway.NewMemory() // sem admins

	d := NewDriver(gw, "resgate", fallbackHash(t, "chave-mestra"), discard())
	ident, err := d.Authenticate(context.Background(), "resgate", "chave-mestra")
	require.NoError(t, err)
	require.Equal(t, "fallback", ident.Source)

	_, err = d.Authenticate(context.Background(), "resgate", "errada")
	require.Equal(t, 401, apperr.HTTPStatus(err))
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	gw := gateway.NewMemory()
	gw.SeedAdmin(gateway.AdminUser{Username: "admin", IsActive: true}, "segredo")

	d := NewDriver(gw, "", "", discard())
	_, err := d.Authenticate(context.Background(), "admin", "errada")
	require.Equal(t, 401, apperr.HTTPStatus(err))
	require.Equal(t, "Usuário ou senha inválidos.", apperr.PublicMessage(err))
}

func TestAuthenticateIgnoresInactiveUser(t *testing.T) {
	gw := gateway.NewMemory()
	gw.SeedAdmin(gateway.AdminUser{Username: "admin", IsActive: false}, "segredo")

	d := NewDriver(gw, "", "", discard())
	_, err := d.Authenticate(context.Background(), "admin", "segredo")
	require.Equal(t, 401, apperr.HTTPStatus(err))
}

type stubStrategy struct {
	name   string
	result Result
	calls  *int
}

func (s stubStrategy) Name() string { return s.name }
func (s stubStrategy) Authenticate(context.Context, string, string) Result {
	*s.calls++
	return s.result
}

func TestRejectedStopsTheChain(t *testing.T) {
	first, second := 0, 0
	d := NewDriverWith(discard(),
		stubStrategy{name: "a", result: Result{Status: StatusRejected}, calls: &first},
		stubStrategy{name: "b", result: Result{Status: StatusSuccess}, calls: &second},
	)
	_, err := d.Authenticate(context.Background(), "x", "y")
	require.Equal(t, 401, apperr.HTTPStatus(err))
	require.Equal(t, 1, first)
	require.Equal(t, 0, second)
}
