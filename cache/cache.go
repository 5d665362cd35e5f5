// Package cache provides optional caching of reassembled archive assets.
//
// Decompressing an asset means reading and inflating every one of its
// blocks. A Cache lets a Catalog keep the reassembled bytes so repeated
// reads of the same asset skip that work, including across processes when
// the cache is disk-backed.
//
// Keys are opaque digests chosen by the Catalog. They identify the data
// file (path, size, modification time) and the entry offset, so a cached
// value is never served after its data file changes on disk.
package cache

// Cache stores reassembled asset bytes by key.
//
// Implementations should handle their own size limits and eviction policies
// and must be safe for concurrent use.
type Cache interface {
	// Get returns the content stored under key.
	// Returns nil, false if the content is not cached.
	Get(key []byte) ([]byte, bool)

	// Put stores content under key.
	Put(key []byte, content []byte) error

	// Delete removes content stored under key.
	// Implementations should treat missing entries as a no-op.
	Delete(key []byte) error

	// MaxBytes returns the configured cache size limit (0 = unlimited).
	MaxBytes() int64

	// SizeBytes returns the current cache size in bytes.
	SizeBytes() int64

	// Prune removes cached entries until the cache is at or below targetBytes.
	// Returns the number of bytes freed.
	Prune(targetBytes int64) (int64, error)
}
