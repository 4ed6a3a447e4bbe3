// Package cache guarda respostas do backend hospedado por alguns segundos,
// para a vitrine não martelar a rows API a cada página.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Noop desliga o cache (desenvolvimento sem redis).
type Noop struct{}

func (Noop) Get(_ context.Context, _ string) ([]byte, bool, error) { return nil, false, nil }

func (Noop) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error { return nil }

func (Noop) Delete(_ context.Context, _ string) error { return nil }
