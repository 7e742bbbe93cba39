package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"groupcore/pkg/domain"
	"groupcore/testutil"
)

func seeded(t *testing.T) *Store {
	t.Helper()
	store := NewStore()
	if err := store.ImportBundles(context.Background(), testutil.Bundles()...); err != nil {
		t.Fatalf("import: %v", err)
	}
	return store
}

func TestLookupGroup(t *testing.T) {
	store := seeded(t)
	ctx := context.Background()
	rec, err := store.LookupGroup(ctx, "6.1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if diff := cmp.Diff(testutil.GroupS3(), rec); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	rec.GensUsed[0] = 99
	again, _ := store.LookupGroup(ctx, "6.1")
	if again.GensUsed[0] != 1 {
		t.Fatalf("lookup returned shared slice")
	}
	if _, err := store.LookupGroup(ctx, "7.1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchSubgroupsOrdersByAmbient(t *testing.T) {
	store := seeded(t)
	ctx := context.Background()
	got, err := store.SearchSubgroups(ctx, domain.SubgroupFilter{Subgroup: "3.1", Maximal: domain.Bool(true)})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	var ambients []string
	for _, rec := range got {
		ambients = append(ambients, rec.Ambient)
	}
	if diff := cmp.Diff([]string{"6.1", "6.2", "12.3"}, ambients); diff != "" {
		t.Fatalf("ambients mismatch (-want +got):\n%s", diff)
	}

	limited, _ := store.SearchSubgroups(ctx, domain.SubgroupFilter{Subgroup: "3.1", Limit: 1})
	if len(limited) != 1 || limited[0].Label != "6.1.3" {
		t.Fatalf("unexpected limited result %+v", limited)
	}

	own, _ := store.SearchSubgroups(ctx, domain.SubgroupFilter{Ambient: "8.4"})
	if len(own) != 4 || own[0].Label != "8.4.1" || own[3].Label != "8.4.4" {
		t.Fatalf("unexpected ambient search %+v", own)
	}
}

func TestImportIsAllOrNothing(t *testing.T) {
	store := NewStore()
	bad := testutil.C6Bundle()
	bad.Subgroups[0].Ambient = "6.1"
	err := store.ImportBundles(context.Background(), testutil.S3Bundle(), bad)
	if !errors.Is(err, domain.ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
	if len(store.Labels()) != 0 {
		t.Fatalf("expected nothing imported, got %v", store.Labels())
	}
}

func TestImportReplacesGroupRecords(t *testing.T) {
	store := seeded(t)
	ctx := context.Background()
	b := testutil.S3Bundle()
	b.Subgroups = b.Subgroups[:1]
	b.Characters = nil
	if err := store.ImportBundles(ctx, b); err != nil {
		t.Fatalf("reimport: %v", err)
	}
	subs, _ := store.SearchSubgroups(ctx, domain.SubgroupFilter{Ambient: "6.1"})
	if len(subs) != 1 {
		t.Fatalf("expected replaced subgroups, got %d", len(subs))
	}
	chars, _ := store.ListCharacters(ctx, "6.1")
	if len(chars) != 0 {
		t.Fatalf("expected characters cleared, got %d", len(chars))
	}
}

func TestBundleExport(t *testing.T) {
	store := seeded(t)
	b, err := store.Bundle("6.1")
	if err != nil {
		t.Fatalf("bundle: %v", err)
	}
	if diff := cmp.Diff(testutil.S3Bundle(), b); diff != "" {
		t.Fatalf("bundle mismatch (-want +got):\n%s", diff)
	}
	if _, err := store.Bundle("2.1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if diff := cmp.Diff([]string{"6.1", "6.2", "8.4", "12.3"}, store.Labels()); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if got := len(store.ExportBundles()); got != 4 {
		t.Fatalf("expected 4 bundles, got %d", got)
	}
}

func TestCanceledContext(t *testing.T) {
	store := seeded(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.LookupGroup(ctx, "6.1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
