package auth

import (
	"context"
	"log/slog"

	"github.com/Inovatum/site-vendas/internal/gateway"
	"github.com/Inovatum/site-vendas/internal/shared/apperr"
)

// Driver percorre a cadeia em ordem. Sucesso para a cadeia; recusa
// definitiva também; not-found e falha de transporte caem para a
// próxima autoridade.
type Driver struct {
	strategies []Strategy
	logger     *slog.Logger
}

func NewDriver(gw gateway.Client, fallbackUser, fallbackHash string, logger *slog.Logger) *Driver {
	return &Driver{
		strategies: []Strategy{
			rpcStrategy{gw: gw},
			tableStrategy{gw: gw},
			fallbackStrategy{username: fallbackUser, hash: fallbackHash},
		},
		logger: logger,
	}
}

// NewDriverWith monta a cadeia explicitamente (testes).
func NewDriverWith(logger *slog.Logger, strategies ...Strategy) *Driver {
	return &Driver{strategies: strategies, logger: logger}
}

func (d *Driver) Authenticate(ctx context.Context, username, password string) (Identity, error) {
	for _, s := range d.strategies {
		r := s.Authenticate(ctx, username, password)
		switch r.Status {
		case StatusSuccess:
			d.logger.Info("admin login", "user", r.Identity.Username, "source", s.Name())
			return r.Identity, nil
		case StatusRejected:
			d.logger.Info("admin login rejected", "user", username, "source", s.Name())
			return Identity{}, apperr.UnauthorizedErr("Usuário ou senha inválidos.")
		case StatusTransportError:
			d.logger.Warn("auth strategy unreachable", "source", s.Name(), "err", r.Err)
		case StatusNotFound:
			// próxima autoridade
		}
	}
	return Identity{}, apperr.UnauthorizedErr("Usuário ou senha inválidos.")
}
