package sqpack

import (
	"encoding/binary"

	"github.com/zeebo/blake3"

	"github.com/meigma/sqpack/internal/packtype"
)

// cacheKey identifies the content of entry within df. The data file's
// size and modification time are part of the key, so rewriting the file
// invalidates every key derived from it.
func cacheKey(df *dataFile, entry packtype.Entry) []byte {
	h := blake3.New()
	_, _ = h.Write([]byte(df.path)) //nolint:errcheck // hash writes never fail

	var buf [8 * 4]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(df.size))               //nolint:gosec // size is non-negative
	binary.LittleEndian.PutUint64(buf[8:], uint64(df.modTime.UnixNano())) //nolint:gosec // bit reinterpretation
	binary.LittleEndian.PutUint64(buf[16:], entry.Offset)
	binary.LittleEndian.PutUint64(buf[24:], entry.Hash)
	_, _ = h.Write(buf[:]) //nolint:errcheck // hash writes never fail
	return h.Sum(nil)
}

// readCached returns the content of entry, serving it from the cache when
// one is configured.
func (c *Catalog) readCached(path string, df *dataFile, entry packtype.Entry) ([]byte, error) {
	if c.cache == nil {
		return c.reader.ReadAll(df.file, path, entry)
	}

	key := cacheKey(df, entry)
	if data, ok := c.cache.Get(key); ok {
		c.log().Debug("asset cache hit", "path", path)
		return data, nil
	}
	c.log().Debug("asset cache miss", "path", path)

	result, err, _ := c.readGroup.Do(string(key), func() (any, error) {
		if data, ok := c.cache.Get(key); ok {
			return data, nil
		}
		data, err := c.reader.ReadAll(df.file, path, entry)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Put(key, data); err != nil {
			c.log().Debug("asset cache put failed", "path", path, "error", err)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil //nolint:errcheck // type assertion always succeeds when err is nil
}
