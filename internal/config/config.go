// Package config loads groupcore settings from an optional YAML file and
// GROUPCORE_* environment variables, in that order of precedence (env wins).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageBlob     = "blob"
)

// Blob drivers.
const (
	BlobFilesystem = "fs"
	BlobS3         = "s3"
	BlobMemory     = "memory"
)

// Metrics exporters.
const (
	MetricsNone       = "none"
	MetricsExpvar     = "expvar"
	MetricsPrometheus = "prometheus"
)

var (
	storageDrivers   = []string{StorageMemory, StorageSQLite, StoragePostgres, StorageBlob}
	blobDrivers      = []string{BlobFilesystem, BlobS3, BlobMemory}
	metricsExporters = []string{MetricsNone, MetricsExpvar, MetricsPrometheus}
	logLevels        = []string{"debug", "info", "warn", "error"}
)

// Config is the complete groupcore configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Blob    BlobConfig    `yaml:"blob"`
	Log     LogConfig     `yaml:"log"`
	Cache   CacheConfig   `yaml:"cache"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// StorageConfig selects the repository backend.
type StorageConfig struct {
	// Driver is one of memory, sqlite, postgres, blob.
	Driver      string `yaml:"driver"`
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

// BlobConfig selects where bundle documents live.
type BlobConfig struct {
	// Driver is one of fs, s3, memory.
	Driver string   `yaml:"driver"`
	FSRoot string   `yaml:"fs_root"`
	S3     S3Config `yaml:"s3"`
}

// S3Config addresses an S3 or MinIO bucket.
type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level string `yaml:"level"`
}

// CacheConfig bounds the group view cache.
type CacheConfig struct {
	Size int `yaml:"size"`
}

// MetricsConfig selects the metrics exporter.
type MetricsConfig struct {
	Exporter string `yaml:"exporter"`
}

// DefaultConfig returns a Config with defaults for every field.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{Driver: StorageSQLite, SQLitePath: "groupcore.db"},
		Blob:    BlobConfig{Driver: BlobFilesystem, FSRoot: "./blobdata", S3: S3Config{Region: "us-east-1"}},
		Log:     LogConfig{Level: "info"},
		Cache:   CacheConfig{Size: 256},
		Metrics: MetricsConfig{Exporter: MetricsNone},
	}
}

// Load reads path (when non-empty and present), applies environment
// overrides and validates the result. Unknown YAML keys are rejected.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := cfg.decode(data); err != nil {
				return nil, err
			}
		}
	}
	if err := cfg.applyEnvOverrides(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides(getenv func(string) string) error {
	str := map[string]*string{
		"GROUPCORE_STORAGE_DRIVER":   &c.Storage.Driver,
		"GROUPCORE_SQLITE_PATH":      &c.Storage.SQLitePath,
		"GROUPCORE_POSTGRES_DSN":     &c.Storage.PostgresDSN,
		"GROUPCORE_BLOB_DRIVER":      &c.Blob.Driver,
		"GROUPCORE_BLOB_FS_ROOT":     &c.Blob.FSRoot,
		"GROUPCORE_BLOB_S3_BUCKET":   &c.Blob.S3.Bucket,
		"GROUPCORE_BLOB_S3_REGION":   &c.Blob.S3.Region,
		"GROUPCORE_BLOB_S3_ENDPOINT": &c.Blob.S3.Endpoint,
		"GROUPCORE_LOG_LEVEL":        &c.Log.Level,
		"GROUPCORE_METRICS":          &c.Metrics.Exporter,
	}
	for key, dst := range str {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	if v := getenv("GROUPCORE_BLOB_S3_PATH_STYLE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GROUPCORE_BLOB_S3_PATH_STYLE: %w", err)
		}
		c.Blob.S3.PathStyle = b
	}
	if v := getenv("GROUPCORE_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GROUPCORE_CACHE_SIZE: %w", err)
		}
		c.Cache.Size = n
	}
	return nil
}

// Validate rejects unknown drivers, levels and non-positive cache sizes.
func (c *Config) Validate() error {
	if !slices.Contains(storageDrivers, c.Storage.Driver) {
		return fmt.Errorf("invalid storage driver %q (valid: %v)", c.Storage.Driver, storageDrivers)
	}
	if !slices.Contains(blobDrivers, c.Blob.Driver) {
		return fmt.Errorf("invalid blob driver %q (valid: %v)", c.Blob.Driver, blobDrivers)
	}
	if c.Blob.Driver == BlobS3 && c.Blob.S3.Bucket == "" {
		return fmt.Errorf("blob.s3.bucket is required for the s3 driver")
	}
	if !slices.Contains(metricsExporters, c.Metrics.Exporter) {
		return fmt.Errorf("invalid metrics exporter %q (valid: %v)", c.Metrics.Exporter, metricsExporters)
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("invalid log level %q (valid: %v)", c.Log.Level, logLevels)
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache.size must be positive, got %d", c.Cache.Size)
	}
	return nil
}
