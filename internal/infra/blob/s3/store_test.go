package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"groupcore/internal/blob/core"
)

func TestS3StoreWithMockTransport(t *testing.T) {
	ctx := context.Background()
	s, rt := NewMockForTests()
	if s.Driver() != core.DriverS3 || s.Bucket() != "mock-bucket" {
		t.Fatalf("unexpected store identity %s %s", s.Driver(), s.Bucket())
	}
	info, err := s.Put(ctx, "groups/6.1.json", strings.NewReader(`{"group":{}}`), core.PutOptions{ContentType: "application/json"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 12 || info.ContentType != "application/json" {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := s.Put(ctx, "groups/8.4.json", strings.NewReader(`{}`), core.PutOptions{}); err != nil {
		t.Fatalf("put second: %v", err)
	}

	_, rc, err := s.Get(ctx, "groups/6.1.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != `{"group":{}}` {
		t.Fatalf("unexpected body %q", body)
	}

	list, err := s.List(ctx, "groups/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var keys []string
	for _, inf := range list {
		keys = append(keys, inf.Key)
	}
	if diff := cmp.Diff([]string{"groups/6.1.json", "groups/8.4.json"}, keys); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	if ok, err := s.Delete(ctx, "groups/8.4.json"); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if ok, err := s.Delete(ctx, "groups/8.4.json"); err != nil || ok {
		t.Fatalf("expected missing delete, got %v %v", ok, err)
	}
	if _, err := s.Head(ctx, "groups/8.4.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if diff := cmp.Diff([]string{"groups/6.1.json"}, rt.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatal("expected missing bucket error")
	}
}
