package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "groupcore.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeFile(t, `
storage:
  driver: postgres
  postgres_dsn: postgres://db/groups
blob:
  driver: s3
  s3:
    bucket: bundles
cache:
  size: 32
`)
	t.Setenv("GROUPCORE_CACHE_SIZE", "64")
	t.Setenv("GROUPCORE_BLOB_S3_PATH_STYLE", "true")
	t.Setenv("GROUPCORE_LOG_LEVEL", "debug")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := DefaultConfig()
	want.Storage.Driver = StoragePostgres
	want.Storage.PostgresDSN = "postgres://db/groups"
	want.Blob.Driver = BlobS3
	want.Blob.S3.Bucket = "bundles"
	want.Blob.S3.PathStyle = true
	want.Cache.Size = 64
	want.Log.Level = "debug"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "storage:\n  drvier: memory\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "drvier") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	if _, err := Load(writeFile(t, "")); err != nil {
		t.Fatalf("expected empty file to load, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"storage driver": func(c *Config) { c.Storage.Driver = "mongo" },
		"blob driver":    func(c *Config) { c.Blob.Driver = "gcs" },
		"s3 bucket":      func(c *Config) { c.Blob.Driver = BlobS3 },
		"metrics":        func(c *Config) { c.Metrics.Exporter = "statsd" },
		"log level":      func(c *Config) { c.Log.Level = "trace" },
		"cache size":     func(c *Config) { c.Cache.Size = 0 },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestEnvParseErrors(t *testing.T) {
	t.Setenv("GROUPCORE_CACHE_SIZE", "many")
	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "GROUPCORE_CACHE_SIZE") {
		t.Fatalf("expected cache size parse error, got %v", err)
	}
}
