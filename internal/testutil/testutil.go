// Package testutil builds synthetic archives for tests.
package testutil

import (
	"io"
	"sync"
	"sync/atomic"
)

// MockByteSource implements io.ReaderAt over a byte slice and counts reads.
type MockByteSource struct {
	data  []byte
	reads atomic.Int64
}

// NewMockByteSource returns a byte source backed by the provided data.
func NewMockByteSource(data []byte) *MockByteSource {
	return &MockByteSource{data: data}
}

// ReadAt implements io.ReaderAt semantics over the backing slice.
func (m *MockByteSource) ReadAt(p []byte, off int64) (int, error) {
	m.reads.Add(1)
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Reads returns the number of ReadAt calls served.
func (m *MockByteSource) Reads() int64 {
	return m.reads.Load()
}

// Bytes returns the backing slice for tests that need to mutate data.
func (m *MockByteSource) Bytes() []byte {
	return m.data
}

// MockCache implements an in-memory, concurrency-safe asset cache.
type MockCache struct {
	mu     sync.RWMutex
	data   map[string][]byte
	hits   int
	misses int
}

// NewMockCache constructs an empty in-memory cache.
func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string][]byte)}
}

// Get returns a copy of the cached content.
func (c *MockCache) Get(key []byte) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.data[string(key)]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	return append([]byte(nil), data...), true
}

// Put stores a copy of data.
func (c *MockCache) Put(key, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[string(key)] = append([]byte(nil), data...)
	return nil
}

// Delete removes cached content.
func (c *MockCache) Delete(key []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, string(key))
	return nil
}

// MaxBytes returns 0 (unlimited).
func (c *MockCache) MaxBytes() int64 {
	return 0
}

// SizeBytes returns the total size of cached content.
func (c *MockCache) SizeBytes() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var n int64
	for _, v := range c.data {
		n += int64(len(v))
	}
	return n
}

// Prune is a no-op.
func (c *MockCache) Prune(int64) (int64, error) {
	return 0, nil
}

// Len returns the number of cached entries.
func (c *MockCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Stats returns the number of hits and misses observed by Get.
func (c *MockCache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
