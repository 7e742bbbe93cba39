// Package sqlite provides the embedded sqlite groups repository.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"groupcore/internal/infra/persistence/memory"
	"groupcore/internal/infra/persistence/sqlbundle"
	"groupcore/pkg/domain"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// DefaultPath is used when no database path is configured.
const DefaultPath = "groupcore.db"

var _ domain.Store = (*Store)(nil)

// Store persists bundles to sqlite tables and serves reads from an in-memory
// copy hydrated at open.
type Store struct {
	*memory.Store
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (creating if needed) the database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	ctx := context.Background()
	if err := sqlbundle.ApplyDDL(ctx, db, sqlbundle.SQLite); err != nil {
		_ = db.Close()
		return nil, err
	}
	bundles, err := sqlbundle.LoadBundles(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	mem := memory.NewStore()
	if err := mem.ImportBundles(ctx, bundles...); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("hydrate: %w", err)
	}
	return &Store{Store: mem, db: db, path: path}, nil
}

// ImportBundles writes the bundles in one transaction, then makes them
// visible to readers.
func (s *Store) ImportBundles(ctx context.Context, bundles ...domain.Bundle) (retErr error) {
	for _, b := range bundles {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if err := sqlbundle.WriteBundles(ctx, tx, sqlbundle.SQLite, bundles...); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return s.Store.ImportBundles(ctx, bundles...)
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
