// Package postgres provides the Postgres groups repository. Bundles are
// stored as JSONB rows and served from an in-memory copy.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"groupcore/internal/infra/persistence/memory"
	"groupcore/internal/infra/persistence/sqlbundle"
	"groupcore/pkg/domain"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

var _ domain.Store = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/groupcore?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Store persists bundles to Postgres while reusing the in-memory reads.
type Store struct {
	*memory.Store
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens a Postgres-backed store using the provided DSN (falls back to defaultDSN).
// It applies the schema and hydrates the in-memory copy from the existing rows.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := sqlbundle.ApplyDDL(ctx, db, sqlbundle.Postgres); err != nil {
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
	return &Store{Store: mem, db: db}, nil
}

// ImportBundles writes the bundles in one transaction, then makes them
// visible to readers.
func (s *Store) ImportBundles(ctx context.Context, bundles ...domain.Bundle) error {
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
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := sqlbundle.WriteBundles(ctx, tx, sqlbundle.Postgres, bundles...); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return s.Store.ImportBundles(ctx, bundles...)
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
