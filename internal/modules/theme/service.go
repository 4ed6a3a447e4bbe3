package theme

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/Inovatum/site-vendas/internal/cache"
	"github.com/Inovatum/site-vendas/internal/gateway"
)

const cacheKey = "store:customization"

type Service struct {
	gw     gateway.Client
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewService(gw gateway.Client, c cache.Cache, ttl time.Duration, logger *slog.Logger) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{gw: gw, cache: c, ttl: ttl, logger: logger}
}

// Fetch devolve a customização atual; sem linha no backend, a paleta
// padrão da loja.
func (s *Service) Fetch(ctx context.Context) (Customization, error) {
	if raw, ok, err := s.cache.Get(ctx, cacheKey); err == nil && ok {
		var cached Customization
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	row, err := s.gw.GetCustomization(ctx)
	if errors.Is(err, gateway.ErrNotFound) {
		return FromRow(gateway.DefaultCustomization()), nil
	}
	if err != nil {
		return Customization{}, err
	}

	got := FromRow(row)
	if raw, err := json.Marshal(got); err == nil {
		if err := s.cache.Set(ctx, cacheKey, raw, s.ttl); err != nil {
			s.logger.Warn("customization cache set failed", "err", err)
		}
	}
	return got, nil
}

func (s *Service) Update(ctx context.Context, c Customization) error {
	if err := s.gw.UpdateCustomization(ctx, c.Row()); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, cacheKey)
	return nil
}

// CSS devolve a folha de estilo renderizada para a customização atual.
// Offline, serve a paleta padrão em vez de quebrar a vitrine.
func (s *Service) CSS(ctx context.Context) string {
	c, err := s.Fetch(ctx)
	if err != nil {
		s.logger.Warn("customization fetch failed, serving defaults", "err", err)
		c = FromRow(gateway.DefaultCustomization())
	}
	return Render(c)
}
