// Package sqlbundle holds the relational schema of the groups database and
// the row mapping shared by the sqlite and postgres stores.
package sqlbundle

import (
	"bufio"
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"groupcore/pkg/domain"
)

//go:embed schema/sqlite.sql
var sqliteDDL string

//go:embed schema/postgres.sql
var postgresDDL string

// Dialect captures the differences between the supported SQL engines.
type Dialect struct {
	Name string
	DDL  string
	bind func(n int) string
}

// SQLite is the dialect of modernc.org/sqlite.
var SQLite = Dialect{Name: "sqlite", DDL: sqliteDDL, bind: func(int) string { return "?" }}

// Postgres is the dialect of pgx.
var Postgres = Dialect{Name: "postgres", DDL: postgresDDL, bind: func(n int) string { return fmt.Sprintf("$%d", n) }}

func (d Dialect) params(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = d.bind(i + 1)
	}
	return strings.Join(out, ",")
}

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// SplitStatements splits a semicolon-terminated DDL script into executable statements.
// It drops blank lines and single-line comments that start with "--".
func SplitStatements(ddl string) []string {
	scanner := bufio.NewScanner(strings.NewReader(ddl))
	var stmts []string
	var current strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteByte('\n')
		if strings.HasSuffix(trimmed, ";") {
			if stmt := strings.TrimSpace(current.String()); stmt != "" {
				stmts = append(stmts, stmt)
			}
			current.Reset()
		}
	}
	if tail := strings.TrimSpace(current.String()); tail != "" {
		stmts = append(stmts, tail)
	}
	return stmts
}

// ApplyDDL creates the tables and indexes of the dialect.
func ApplyDDL(ctx context.Context, db Execer, d Dialect) error {
	for _, stmt := range SplitStatements(d.DDL) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute %s ddl: %w", d.Name, err)
		}
	}
	return nil
}

// WriteBundles replaces the rows of every bundle's group. Callers own the
// transaction.
func WriteBundles(ctx context.Context, tx Execer, d Dialect, bundles ...domain.Bundle) error {
	upsertGroup := fmt.Sprintf(`INSERT INTO groups(label, ord, payload) VALUES(%s) ON CONFLICT(label) DO UPDATE SET ord=excluded.ord, payload=excluded.payload`, d.params(3))
	deleteSubgroups := fmt.Sprintf(`DELETE FROM subgroups WHERE ambient = %s`, d.bind(1))
	insertSubgroup := fmt.Sprintf(`INSERT INTO subgroups(label, ambient, subgroup, quotient, payload) VALUES(%s)`, d.params(5))
	upsertClasses := fmt.Sprintf(`INSERT INTO conjugacy_classes(grp, payload) VALUES(%s) ON CONFLICT(grp) DO UPDATE SET payload=excluded.payload`, d.params(2))
	upsertChars := fmt.Sprintf(`INSERT INTO characters(grp, payload) VALUES(%s) ON CONFLICT(grp) DO UPDATE SET payload=excluded.payload`, d.params(2))

	for _, b := range bundles {
		label := b.Group.Label
		data, err := json.Marshal(b.Group)
		if err != nil {
			return fmt.Errorf("encode group %s: %w", label, err)
		}
		if _, err := tx.ExecContext(ctx, upsertGroup, label, b.Group.Order, data); err != nil {
			return fmt.Errorf("upsert group %s: %w", label, err)
		}
		if _, err := tx.ExecContext(ctx, deleteSubgroups, label); err != nil {
			return fmt.Errorf("clear subgroups of %s: %w", label, err)
		}
		for _, rec := range b.Subgroups {
			data, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("encode subgroup %s: %w", rec.Label, err)
			}
			if _, err := tx.ExecContext(ctx, insertSubgroup, rec.Label, rec.Ambient, rec.Subgroup, rec.Quotient, data); err != nil {
				return fmt.Errorf("insert subgroup %s: %w", rec.Label, err)
			}
		}
		classes, err := marshalList(b.ConjugacyClasses)
		if err != nil {
			return fmt.Errorf("encode classes of %s: %w", label, err)
		}
		if _, err := tx.ExecContext(ctx, upsertClasses, label, classes); err != nil {
			return fmt.Errorf("upsert classes of %s: %w", label, err)
		}
		chars, err := marshalList(b.Characters)
		if err != nil {
			return fmt.Errorf("encode characters of %s: %w", label, err)
		}
		if _, err := tx.ExecContext(ctx, upsertChars, label, chars); err != nil {
			return fmt.Errorf("upsert characters of %s: %w", label, err)
		}
	}
	return nil
}

func marshalList[T any](v []T) ([]byte, error) {
	if v == nil {
		v = []T{}
	}
	return json.Marshal(v)
}

// LoadBundles reads every stored bundle back, in label order. Rows that
// reference a missing group are reported as data corruption.
func LoadBundles(ctx context.Context, db Querier) ([]domain.Bundle, error) {
	bundles := make(map[string]*domain.Bundle)

	err := scanPayloads(ctx, db, `SELECT label, payload FROM groups`, func(_ string, payload []byte) error {
		rec, err := domain.DecodeGroupRecord(payload)
		if err != nil {
			return err
		}
		bundles[rec.Label] = &domain.Bundle{Group: rec, Subgroups: []domain.SubgroupRecord{}}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load groups: %w", err)
	}

	err = scanPayloads(ctx, db, `SELECT label, payload FROM subgroups`, func(_ string, payload []byte) error {
		rec, err := domain.DecodeSubgroupRecord(payload)
		if err != nil {
			return err
		}
		b, ok := bundles[rec.Ambient]
		if !ok {
			return domain.Errorf(domain.ErrDataCorruption, "load subgroups", "%s has no group row for %s", rec.Label, rec.Ambient)
		}
		b.Subgroups = append(b.Subgroups, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load subgroups: %w", err)
	}

	err = scanPayloads(ctx, db, `SELECT grp, payload FROM conjugacy_classes`, func(grp string, payload []byte) error {
		b, ok := bundles[grp]
		if !ok {
			return domain.Errorf(domain.ErrDataCorruption, "load classes", "no group row for %s", grp)
		}
		return json.Unmarshal(payload, &b.ConjugacyClasses)
	})
	if err != nil {
		return nil, fmt.Errorf("load conjugacy classes: %w", err)
	}

	err = scanPayloads(ctx, db, `SELECT grp, payload FROM characters`, func(grp string, payload []byte) error {
		b, ok := bundles[grp]
		if !ok {
			return domain.Errorf(domain.ErrDataCorruption, "load characters", "no group row for %s", grp)
		}
		return json.Unmarshal(payload, &b.Characters)
	})
	if err != nil {
		return nil, fmt.Errorf("load characters: %w", err)
	}

	out := make([]domain.Bundle, 0, len(bundles))
	for _, b := range bundles {
		if len(b.ConjugacyClasses) == 0 {
			b.ConjugacyClasses = nil
		}
		if len(b.Characters) == 0 {
			b.Characters = nil
		}
		domain.SortSubgroups(b.Subgroups)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return domain.CompareLabels(out[i].Group.Label, out[j].Group.Label) < 0 })
	return out, nil
}

func scanPayloads(ctx context.Context, db Querier, query string, fn func(key string, payload []byte) error) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var key string
		var payload []byte
		if err := rows.Scan(&key, &payload); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		if err := fn(key, payload); err != nil {
			return err
		}
	}
	return rows.Err()
}
