package bundle

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"groupcore/internal/blob/core"
	"groupcore/internal/infra/blob/memory"
	memrepo "groupcore/internal/infra/persistence/memory"
	"groupcore/pkg/domain"
	"groupcore/testutil"
)

func seeded(t *testing.T) (*Store, *memory.Store) {
	t.Helper()
	blobs := memory.New()
	s := NewStore(blobs)
	if err := s.ImportBundles(context.Background(), testutil.Bundles()...); err != nil {
		t.Fatalf("import: %v", err)
	}
	return s, blobs
}

func TestBundleRoundTrip(t *testing.T) {
	s, blobs := seeded(t)
	ctx := context.Background()
	got, err := s.Load(ctx, "6.1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(testutil.S3Bundle(), got); diff != "" {
		t.Fatalf("bundle mismatch (-want +got):\n%s", diff)
	}
	info, err := blobs.Head(ctx, Key("6.1"))
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if info.ContentType != "application/json" || info.Metadata["order"] != "6" {
		t.Fatalf("unexpected blob info %+v", info)
	}
	labels, err := s.Labels(ctx)
	if err != nil {
		t.Fatalf("labels: %v", err)
	}
	if len(labels) != 4 {
		t.Fatalf("expected 4 labels, got %v", labels)
	}
}

func TestRepositoryContract(t *testing.T) {
	s, _ := seeded(t)
	ctx := context.Background()
	if _, err := s.LookupGroup(ctx, "5.1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	subs, err := s.SearchSubgroups(ctx, domain.SubgroupFilter{Ambient: "12.3", Maximal: domain.Bool(true)})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(subs) != 2 || subs[0].Label != "12.3.3" || subs[1].Label != "12.3.4" {
		t.Fatalf("unexpected maximal subgroups %+v", subs)
	}
	across, err := s.SearchSubgroups(ctx, domain.SubgroupFilter{Subgroup: "2.1", Limit: 2})
	if err != nil {
		t.Fatalf("search across: %v", err)
	}
	if len(across) != 2 || across[0].Ambient != "6.1" || across[1].Ambient != "6.2" {
		t.Fatalf("unexpected cross-group search %+v", across)
	}
	classes, err := s.ListConjugacyClasses(ctx, "6.1")
	if err != nil || len(classes) != 3 {
		t.Fatalf("unexpected classes %v %v", classes, err)
	}
	chars, err := s.ListCharacters(ctx, "9.9")
	if err != nil || len(chars) != 0 {
		t.Fatalf("unexpected characters for missing group %v %v", chars, err)
	}
}

func TestLoadRejectsMisplacedDocument(t *testing.T) {
	s, blobs := seeded(t)
	ctx := context.Background()
	_, rc, err := blobs.Get(ctx, Key("6.2"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := blobs.Put(ctx, Key("6.1"), rc, core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Load(ctx, "6.1"); !errors.Is(err, domain.ErrDataCorruption) {
		t.Fatalf("expected ErrDataCorruption, got %v", err)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	s, blobs := seeded(t)
	ctx := context.Background()
	if _, err := blobs.Put(ctx, Key("2.1"), strings.NewReader(`{"group":{},"subgroups":[],"extra":1}`), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Load(ctx, "2.1"); !errors.Is(err, domain.ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestCollectFromRepository(t *testing.T) {
	repo := memrepo.NewStore()
	ctx := context.Background()
	if err := repo.ImportBundles(ctx, testutil.Bundles()...); err != nil {
		t.Fatalf("import: %v", err)
	}
	got, err := Collect(ctx, repo, "6.1")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff(testutil.S3Bundle(), got); diff != "" {
		t.Fatalf("bundle mismatch (-want +got):\n%s", diff)
	}
	a4, err := Collect(ctx, repo, "12.3")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if a4.ConjugacyClasses != nil || a4.Characters != nil || len(a4.Subgroups) != 5 {
		t.Fatalf("unexpected A4 bundle %+v", a4)
	}
	if _, err := Collect(ctx, repo, "2.1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLabelsInNaturalOrder(t *testing.T) {
	s, _ := seeded(t)
	labels, err := s.Labels(context.Background())
	if err != nil {
		t.Fatalf("labels: %v", err)
	}
	if diff := cmp.Diff([]string{"6.1", "6.2", "8.4", "12.3"}, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}
