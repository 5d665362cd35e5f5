package disk

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) []byte {
	sum := sha256.Sum256([]byte(s))
	return sum[:]
}

func TestCachePutGet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := New(dir)
	require.NoError(t, err)

	content := []byte("hello")
	k := key("hello")
	require.NoError(t, c.Put(k, content))

	got, ok := c.Get(k)
	require.True(t, ok)
	assert.Equal(t, content, got)
	assert.Equal(t, int64(len(content)), c.SizeBytes())

	hexKey := hex.EncodeToString(k)
	_, err = os.Stat(filepath.Join(dir, hexKey[:defaultShardPrefixLen], hexKey))
	require.NoError(t, err)
}

func TestCachePutExisting(t *testing.T) {
	t.Parallel()

	c, err := New(t.TempDir())
	require.NoError(t, err)

	k := key("a")
	require.NoError(t, c.Put(k, []byte("first")))
	require.NoError(t, c.Put(k, []byte("second")))

	got, ok := c.Get(k)
	require.True(t, ok)
	assert.Equal(t, []byte("first"), got)
	assert.Equal(t, int64(5), c.SizeBytes())
}

func TestCacheGetMissing(t *testing.T) {
	t.Parallel()

	c, err := New(t.TempDir())
	require.NoError(t, err)

	_, ok := c.Get(key("missing"))
	assert.False(t, ok)
	_, ok = c.Get(nil)
	assert.False(t, ok)
}

func TestCacheDelete(t *testing.T) {
	t.Parallel()

	c, err := New(t.TempDir())
	require.NoError(t, err)

	k := key("a")
	require.NoError(t, c.Put(k, []byte("abc")))
	require.NoError(t, c.Delete(k))

	_, ok := c.Get(k)
	assert.False(t, ok)
	assert.Zero(t, c.SizeBytes())

	require.NoError(t, c.Delete(k), "deleting a missing entry is a no-op")
}

func TestCacheShardDisable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := New(dir, WithShardPrefixLen(0))
	require.NoError(t, err)

	k := key("flat")
	require.NoError(t, c.Put(k, []byte("flat")))

	_, err = os.Stat(filepath.Join(dir, hex.EncodeToString(k)))
	require.NoError(t, err)
}

func TestCacheMaxBytesEvictsOldest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := New(dir, WithMaxBytes(10))
	require.NoError(t, err)

	k1, k2 := key("one"), key("two")
	require.NoError(t, c.Put(k1, []byte("123456")))

	// Age the first entry so eviction order is deterministic.
	hexKey := hex.EncodeToString(k1)
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, hexKey[:2], hexKey), old, old))

	require.NoError(t, c.Put(k2, []byte("abcdef")))

	_, ok := c.Get(k1)
	assert.False(t, ok)
	got, ok := c.Get(k2)
	require.True(t, ok)
	assert.Equal(t, []byte("abcdef"), got)
	assert.LessOrEqual(t, c.SizeBytes(), c.MaxBytes())
}

func TestCacheSkipsOversized(t *testing.T) {
	t.Parallel()

	c, err := New(t.TempDir(), WithMaxBytes(4))
	require.NoError(t, err)

	k := key("big")
	require.NoError(t, c.Put(k, []byte("too large")))
	_, ok := c.Get(k)
	assert.False(t, ok)
	assert.Zero(t, c.SizeBytes())
}

func TestCachePrune(t *testing.T) {
	t.Parallel()

	c, err := New(t.TempDir())
	require.NoError(t, err)

	for _, s := range []string{"a", "b", "c"} {
		require.NoError(t, c.Put(key(s), []byte("1234")))
	}
	require.Equal(t, int64(12), c.SizeBytes())

	freed, err := c.Prune(4)
	require.NoError(t, err)
	assert.Equal(t, int64(8), freed)
	assert.Equal(t, int64(4), c.SizeBytes())
}

func TestNewCountsExistingEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, c.Put(key("x"), []byte("12345")))

	reopened, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(5), reopened.SizeBytes())
}

func TestNewInvalid(t *testing.T) {
	t.Parallel()

	_, err := New("")
	require.Error(t, err)
	_, err = New(t.TempDir(), WithShardPrefixLen(-1))
	require.Error(t, err)
	_, err = New(t.TempDir(), WithMaxBytes(-1))
	require.Error(t, err)
}
