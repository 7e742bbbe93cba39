package testutil

import (
	"context"
	"database/sql/driver"
	"testing"
)

func TestStubDBStoresAndQueriesRows(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()

	insert := "INSERT INTO groups(label, payload) VALUES($1,$2) ON CONFLICT(label) DO UPDATE SET payload=excluded.payload"
	for _, payload := range []string{"old", "new"} {
		if _, err := conn.ExecContext(ctx, insert, []driver.NamedValue{{Value: "6.1"}, {Value: payload}}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if rows := conn.Tables["groups"]; len(rows) != 1 || rows[0]["payload"] != "new" {
		t.Fatalf("expected upserted row, got %v", rows)
	}

	rows, err := conn.QueryContext(ctx, "SELECT label, payload FROM groups", nil)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	dest := make([]driver.Value, 2)
	if err := rows.Next(dest); err != nil {
		t.Fatalf("next: %v", err)
	}
	if dest[0] != "6.1" || dest[1] != "new" {
		t.Fatalf("unexpected row values: %v", dest)
	}

	if _, err := conn.ExecContext(ctx, "DELETE FROM groups WHERE label = $1", []driver.NamedValue{{Value: "6.1"}}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(conn.Tables["groups"]) != 0 {
		t.Fatalf("expected row deleted, got %v", conn.Tables["groups"])
	}
}

func TestStubDBFailures(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()
	conn.FailPing = true
	if err := conn.Ping(ctx); err == nil {
		t.Fatal("expected ping failure")
	}
	conn.FailTables["groups"] = true
	if _, err := conn.QueryContext(ctx, "SELECT label FROM groups", nil); err == nil {
		t.Fatal("expected query failure")
	}
	if _, err := conn.ExecContext(ctx, "DELETE FROM groups", nil); err == nil {
		t.Fatal("expected unparsable delete to fail")
	}
}
