package file

import (
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
)

// InflatePool manages reusable raw-deflate readers to reduce allocation
// overhead across blocks.
type InflatePool struct {
	pool sync.Pool
}

// NewInflatePool creates an empty pool.
func NewInflatePool() *InflatePool {
	return &InflatePool{}
}

// Get returns a decompressor reading from r.
// The caller must call the returned release function when done.
func (p *InflatePool) Get(r io.Reader) (io.ReadCloser, func()) {
	if p == nil {
		dec := flate.NewReader(r)
		return dec, func() { _ = dec.Close() }
	}

	if v, ok := p.pool.Get().(io.ReadCloser); ok {
		if resetter, ok := v.(flate.Resetter); ok && resetter.Reset(r, nil) == nil {
			return v, func() { p.pool.Put(v) }
		}
		_ = v.Close()
	}

	dec := flate.NewReader(r)
	return dec, func() { p.pool.Put(dec) }
}
