package settings

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Inovatum/site-vendas/internal/cache"
	"github.com/Inovatum/site-vendas/internal/gateway"
)

const cacheKey = "store:settings"

type Service struct {
	gw     gateway.Client
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger

	mu      sync.RWMutex
	current *Settings // último fetch bem-sucedido
}

func NewService(gw gateway.Client, c cache.Cache, ttl time.Duration, logger *slog.Logger) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{gw: gw, cache: c, ttl: ttl, logger: logger}
}

// Fetch devolve as configurações, usando o cache quando possível. Se a
// linha ainda não existe no backend, cria a linha padrão (primeiro boot
// da loja).
func (s *Service) Fetch(ctx context.Context) (Settings, error) {
	if raw, ok, err := s.cache.Get(ctx, cacheKey); err == nil && ok {
		var cached Settings
		if err := json.Unmarshal(raw, &cached); err == nil {
			// o acerto de cache também vira o snapshot Current; um
			// processo novo com redis quente nunca fez Refetch
			s.mu.Lock()
			cp := cached
			s.current = &cp
			s.mu.Unlock()
			return cached, nil
		}
	}
	return s.Refetch(ctx)
}

// Refetch ignora o cache — usado depois do decremento de cupom, para o
// novo limite aparecer imediatamente.
func (s *Service) Refetch(ctx context.Context) (Settings, error) {
	row, err := s.gw.GetSettings(ctx)
	if errors.Is(err, gateway.ErrNotFound) {
		s.logger.Info("store_settings missing, creating defaults")
		row, err = s.gw.InsertSettings(ctx, defaultRow())
	}
	if err != nil {
		return Settings{}, err
	}

	got := FromRow(row)
	s.store(ctx, got)
	return got, nil
}

// Update grava via admin e invalida o cache.
func (s *Service) Update(ctx context.Context, in Settings) error {
	if err := s.gw.UpdateSettings(ctx, in.Row()); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, cacheKey)
	s.store(ctx, in)
	return nil
}

// Current devolve o último snapshot bom sem ir à rede (banner offline
// ainda consegue mostrar o nome da loja).
func (s *Service) Current() (Settings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Settings{}, false
	}
	return *s.current, true
}

func (s *Service) store(ctx context.Context, got Settings) {
	s.mu.Lock()
	cp := got
	s.current = &cp
	s.mu.Unlock()

	if raw, err := json.Marshal(got); err == nil {
		if err := s.cache.Set(ctx, cacheKey, raw, s.ttl); err != nil {
			s.logger.Warn("settings cache set failed", "err", err)
		}
	}
}

func defaultRow() gateway.SettingsRow {
	return gateway.SettingsRow{
		StoreName:       "Minha Loja",
		WhatsAppNumber:  "5511999999999",
		BrowserTabTitle: "Minha Loja",
		FooterText:      "© 2024 Minha Loja. Todos os direitos reservados.",
	}
}
