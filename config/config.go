// Package config loads sqpack command-line configuration from YAML files
// and environment variables.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/meigma/sqpack"
	"github.com/meigma/sqpack/cache/disk"
)

// Config is the complete command-line configuration.
type Config struct {
	// Root is the archive tree root, the directory holding one
	// subdirectory per repository.
	Root string `yaml:"root"`

	// Platform is the platform token in archive file names.
	// Default: "win32"
	Platform string `yaml:"platform"`

	// Language is the preferred table page language code.
	// Default: "en"
	Language string `yaml:"language"`

	// MaxFileSize limits the declared uncompressed size of one asset.
	// Use 0 to disable the limit.
	// Default: 256 MiB
	MaxFileSize uint64 `yaml:"max_file_size"`

	// Workers is the number of workers reading table pages. Use a
	// negative value for serial reads.
	// Default: 0 (GOMAXPROCS)
	Workers int `yaml:"workers"`

	// Cache configures the decoded-asset cache.
	Cache CacheConfig `yaml:"cache"`

	// Log configures diagnostic logging.
	Log LogConfig `yaml:"log"`
}

// CacheConfig configures the disk cache. The cache is disabled when Dir
// is empty.
type CacheConfig struct {
	Dir string `yaml:"dir"`

	// MaxBytes limits the cache size. Use 0 for no limit.
	MaxBytes int64 `yaml:"max_bytes"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "warn"
	Level string `yaml:"level"`

	// Format is "text" or "json".
	// Default: "text"
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Platform:    sqpack.PlatformWin32.String(),
		Language:    sqpack.LanguageEnglish.Code(),
		MaxFileSize: 256 << 20,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads a YAML configuration file. Fields missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML bytes over the default configuration.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from SQPACK_* environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("SQPACK_ROOT"); ok {
		c.Root = v
	}
	if v, ok := lookup("SQPACK_PLATFORM"); ok {
		c.Platform = v
	}
	if v, ok := lookup("SQPACK_LANGUAGE"); ok {
		c.Language = v
	}
	if v, ok := lookup("SQPACK_MAX_FILE_SIZE"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SQPACK_MAX_FILE_SIZE: %w", err)
		}
		c.MaxFileSize = n
	}
	if v, ok := lookup("SQPACK_CACHE_DIR"); ok {
		c.Cache.Dir = v
	}
	if v, ok := lookup("SQPACK_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	return nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	if c.Root == "" {
		return fmt.Errorf("root is required")
	}
	if _, err := sqpack.ParsePlatform(c.Platform); err != nil {
		return fmt.Errorf("platform must be win32, ps3, or ps4")
	}
	if _, err := sqpack.ParseLanguage(c.Language); err != nil {
		return fmt.Errorf("language %q is not a known language code", c.Language)
	}
	if c.Cache.MaxBytes < 0 {
		return fmt.Errorf("cache.max_bytes must be >= 0")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json")
	}
	return nil
}

// Logger builds the configured slog logger writing to w.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// CatalogOptions converts the configuration into Catalog options. The
// configuration must be valid.
func (c *Config) CatalogOptions(logger *slog.Logger) ([]sqpack.Option, error) {
	platform, err := sqpack.ParsePlatform(c.Platform)
	if err != nil {
		return nil, err
	}
	lang, err := sqpack.ParseLanguage(c.Language)
	if err != nil {
		return nil, err
	}
	opts := []sqpack.Option{
		sqpack.WithLogger(logger),
		sqpack.WithPlatform(platform),
		sqpack.WithLanguage(lang),
		sqpack.WithMaxFileSize(c.MaxFileSize),
		sqpack.WithWorkers(c.Workers),
	}
	if c.Cache.Dir != "" {
		dc, err := disk.New(c.Cache.Dir, disk.WithMaxBytes(c.Cache.MaxBytes))
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		opts = append(opts, sqpack.WithCache(dc))
	}
	return opts, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level must be debug, info, warn, or error")
	}
	return level, nil
}
