package sqpack

import (
	"log/slog"

	"github.com/meigma/sqpack/cache"
)

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger for catalog operations.
// Index loads, data file opens, and cache traffic are logged at debug
// level. Skipped table pages are logged at warn level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// WithPlatform selects the platform token used in archive file names.
// Defaults to PlatformWin32.
func WithPlatform(p Platform) Option {
	return func(c *Catalog) {
		c.platform = p
	}
}

// WithLanguage sets the preferred language for table data pages.
// Tables that do not store the preferred language fall back to their
// language-neutral pages. Defaults to LanguageEnglish.
func WithLanguage(l Language) Option {
	return func(c *Catalog) {
		c.language = l
	}
}

// WithMaxFileSize limits the declared uncompressed size of a single asset.
// Set limit to 0 to disable the limit. Defaults to 256 MiB.
func WithMaxFileSize(limit uint64) Option {
	return func(c *Catalog) {
		c.maxFileSize = limit
	}
}

// WithWorkers sets the number of workers reading table pages in Rows.
// Values < 0 force serial reads. Zero uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *Catalog) {
		c.workers = n
	}
}

// WithCache enables caching of reassembled asset content.
func WithCache(cc cache.Cache) Option {
	return func(c *Catalog) {
		c.cache = cc
	}
}
