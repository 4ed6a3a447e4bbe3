// Package storage recebe os uploads do painel (fotos de produto, logo,
// favicon) e devolve a URL pública gravada nas linhas do backend.
package storage

import (
	"context"
	"io"
)

// Kind separa os uploads por pasta e restringe as extensões aceitas.
type Kind string

const (
	KindProduct Kind = "products"
	KindLogo    Kind = "logo"
	KindFavicon Kind = "favicon"
)

type PutInput struct {
	Kind        Kind
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}
