package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Local struct {
	BaseDir   string
	URLPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: urlPrefix}
}

func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	_ = ctx

	dir := filepath.Join(l.BaseDir, string(in.Kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return PutResult{}, err
	}

	ext, err := allowedExt(in)
	if err != nil {
		return PutResult{}, err
	}
	name := uuid.NewString() + ext
	key := string(in.Kind) + "/" + name

	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return PutResult{}, err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return PutResult{}, err
	}

	url := strings.TrimRight(l.URLPrefix, "/") + "/" + key
	return PutResult{Key: key, URL: url}, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	_ = ctx
	key = filepath.Clean("/" + key) // barra inicial bloqueia ../
	return os.Remove(filepath.Join(l.BaseDir, key))
}

// allowedExt valida a extensão por tipo de upload. Favicon aceita .ico
// e .svg além das imagens comuns.
func allowedExt(in PutInput) (string, error) {
	ext := strings.ToLower(filepath.Ext(in.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return ext, nil
	case ".ico", ".svg":
		if in.Kind == KindFavicon {
			return ext, nil
		}
	}
	return "", fmt.Errorf("storage: extension %q not allowed for %s", ext, in.Kind)
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
