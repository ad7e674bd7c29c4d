package blob

import (
	"context"
	"fmt"

	"github.com/portfolio-space/core/internal/config"
)

// Open builds the store selected by cfg.Storage.
func Open(ctx context.Context, cfg *config.AppConfig) (Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return NewMemory(), nil
	case config.StorageS3:
		s3cfg := cfg.Storage.S3
		return NewS3(ctx, S3Config{
			Region:          s3cfg.Region,
			Bucket:          s3cfg.Bucket,
			Endpoint:        s3cfg.Endpoint,
			AccessKeyID:     s3cfg.AccessKeyID,
			SecretAccessKey: s3cfg.SecretAccessKey,
			PathStyle:       s3cfg.PathStyle,
		})
	case config.StorageFS, "":
		return NewFS(cfg.MediaDir())
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
