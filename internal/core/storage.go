package core

import (
	"context"
	"fmt"

	"groupcore/internal/blob"
	"groupcore/internal/config"
	"groupcore/internal/infra/persistence/bundle"
	"groupcore/internal/infra/persistence/memory"
	"groupcore/internal/infra/persistence/postgres"
	"groupcore/internal/infra/persistence/sqlite"
	"groupcore/pkg/domain"
)

// OpenStore selects the repository backend named by cfg.Storage.Driver. The
// returned close function releases database handles.
//
//	memory:   process memory, empty at start
//	sqlite:   embedded database file at cfg.Storage.SQLitePath
//	postgres: server at cfg.Storage.PostgresDSN
//	blob:     bundle documents in the configured blob store
func OpenStore(ctx context.Context, cfg *config.Config) (domain.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return memory.NewStore(), noop, nil
	case "", config.StorageSQLite:
		s, err := sqlite.NewStore(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.StoragePostgres:
		s, err := postgres.NewStore(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.StorageBlob:
		blobs, err := blob.Open(ctx, cfg.Blob)
		if err != nil {
			return nil, nil, err
		}
		return bundle.NewStore(blobs), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %s", cfg.Storage.Driver)
	}
}
