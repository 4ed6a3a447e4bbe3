package storage

import (
	"context"
	"fmt"
	"os"
)

// FromEnv escolhe o driver de upload pela variável STORAGE_DRIVER:
// "local" (padrão) grava em disco para desenvolvimento, "s3" publica
// num bucket. Devolve também o nome do driver escolhido, para o log de
// boot.
func FromEnv(ctx context.Context) (Storage, string, error) {
	driver := envOr("STORAGE_DRIVER", "local")

	switch driver {
	case "local":
		return NewLocal(
			envOr("LOCAL_UPLOAD_DIR", "./data/uploads"),
			envOr("LOCAL_UPLOAD_URL_PREFIX", "/uploads"),
		), driver, nil

	case "s3":
		cfg := S3Config{
			Region:        os.Getenv("S3_REGION"),
			Bucket:        os.Getenv("S3_BUCKET"),
			Prefix:        envOr("S3_PREFIX", "uploads"),
			PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		}
		if cfg.Region == "" || cfg.Bucket == "" || cfg.PublicBaseURL == "" {
			return nil, "", fmt.Errorf("storage: s3 exige S3_REGION, S3_BUCKET e S3_PUBLIC_BASE_URL")
		}
		s, err := NewS3(ctx, cfg)
		if err != nil {
			return nil, "", err
		}
		return s, driver, nil

	default:
		return nil, "", fmt.Errorf("storage: STORAGE_DRIVER desconhecido: %s", driver)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
