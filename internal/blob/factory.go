// Package blob opens the configured blob store.
package blob

import (
	"context"
	"fmt"

	"groupcore/internal/blob/core"
	"groupcore/internal/config"
	"groupcore/internal/infra/blob/fs"
	"groupcore/internal/infra/blob/memory"
	"groupcore/internal/infra/blob/s3"
)

// Open selects a core.Store implementation from configuration.
func Open(ctx context.Context, cfg config.BlobConfig) (core.Store, error) {
	switch cfg.Driver {
	case "", config.BlobFilesystem:
		return fs.New(cfg.FSRoot)
	case config.BlobS3:
		return s3.New(ctx, s3.Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
		})
	case config.BlobMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", cfg.Driver)
	}
}
