package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"groupcore/internal/blob/core"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()
	if s.Driver() != core.DriverMemory {
		t.Fatalf("unexpected driver %s", s.Driver())
	}
	info, err := s.Put(ctx, "groups/6.1.json", strings.NewReader(`{"a":1}`), core.PutOptions{ContentType: "application/json", Metadata: map[string]string{"label": "6.1"}})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 7 || info.ETag == "" {
		t.Fatalf("unexpected info %+v", info)
	}
	info.Metadata["label"] = "mutated"

	got, rc, err := s.Get(ctx, "groups/6.1.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != `{"a":1}` || got.Metadata["label"] != "6.1" {
		t.Fatalf("unexpected blob %q %+v", body, got)
	}

	replaced, err := s.Put(ctx, "groups/6.1.json", strings.NewReader(`{}`), core.PutOptions{})
	if err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if replaced.ETag == info.ETag {
		t.Fatalf("expected new etag after overwrite")
	}

	if _, err := s.Put(ctx, "other/x", strings.NewReader("x"), core.PutOptions{}); err != nil {
		t.Fatalf("put other: %v", err)
	}
	list, _ := s.List(ctx, "groups/")
	if len(list) != 1 || list[0].Key != "groups/6.1.json" {
		t.Fatalf("unexpected list %+v", list)
	}

	ok, _ := s.Delete(ctx, "groups/6.1.json")
	if !ok {
		t.Fatal("expected delete to report existing blob")
	}
	if _, err := s.Head(ctx, "groups/6.1.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if ok, _ := s.Delete(ctx, "groups/6.1.json"); ok {
		t.Fatal("expected second delete to report missing blob")
	}
	if _, err := s.Put(ctx, " ", strings.NewReader("x"), core.PutOptions{}); err == nil {
		t.Fatal("expected empty key rejection")
	}
}
