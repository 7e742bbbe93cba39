package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"groupcore/internal/blob/core"
)

func TestFilesystemStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := New(root)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	info, err := s.Put(ctx, "groups/8.4.json", strings.NewReader("q8"), core.PutOptions{ContentType: "application/json"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 2 || info.ETag == "" {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := os.Stat(filepath.Join(root, "groups", "8.4.json.meta")); err != nil {
		t.Fatalf("expected sidecar: %v", err)
	}

	if _, err := s.Put(ctx, "groups/8.4.json", strings.NewReader("quaternion"), core.PutOptions{}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, rc, err := s.Get(ctx, "groups/8.4.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "quaternion" || got.Size != int64(len(body)) {
		t.Fatalf("unexpected blob %q %+v", body, got)
	}

	if _, err := s.Put(ctx, "notes.txt", strings.NewReader("n"), core.PutOptions{}); err != nil {
		t.Fatalf("put notes: %v", err)
	}
	list, err := s.List(ctx, "groups/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Key != "groups/8.4.json" {
		t.Fatalf("unexpected list %+v", list)
	}

	if ok, err := s.Delete(ctx, "groups/8.4.json"); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if _, _, err := s.Get(ctx, "groups/8.4.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if ok, err := s.Delete(ctx, "groups/8.4.json"); err != nil || ok {
		t.Fatalf("expected missing delete, got %v %v", ok, err)
	}
}

func TestFilesystemStoreRejectsEscapingKeys(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, key := range []string{"", "/etc/passwd", "../x", "a/../../x", "x.meta"} {
		if _, err := s.Put(context.Background(), key, strings.NewReader("x"), core.PutOptions{}); err == nil {
			t.Fatalf("expected key %q to be rejected", key)
		}
	}
}
