// Package file reassembles archived files from their compressed blocks.
package file

import (
	"bytes"
	"fmt"
	"io"

	"github.com/meigma/sqpack/internal/packtype"
	"github.com/meigma/sqpack/internal/sizing"
)

// DefaultMaxFileSize is the default maximum uncompressed file size (256MB).
const DefaultMaxFileSize = 256 << 20

// Reader reassembles standard archived files from a data file.
//
// Reader holds no per-file state and is safe for concurrent use as long as
// the sources passed to it are.
type Reader struct {
	maxFileSize uint64
	pool        *InflatePool
}

// Option configures a Reader.
type Option func(*Reader)

// WithMaxFileSize sets the maximum declared and assembled file size.
// Set to 0 to disable the limit.
func WithMaxFileSize(limit uint64) Option {
	return func(r *Reader) {
		r.maxFileSize = limit
	}
}

// NewReader creates a Reader.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		maxFileSize: DefaultMaxFileSize,
		pool:        NewInflatePool(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Header reads the container header of the file at entry.
func (r *Reader) Header(src io.ReaderAt, path string, entry packtype.Entry) (Header, error) {
	off, err := sizing.ToInt64(entry.Offset, packtype.ErrSizeOverflow)
	if err != nil {
		return Header{}, fmt.Errorf("read %s: %w", path, err)
	}
	h, err := readHeader(src, off)
	if err != nil {
		return h, fmt.Errorf("read %s: %w", path, err)
	}
	return h, nil
}

// ReadAll reads the file at entry and returns the concatenation of its
// decompressed blocks in block-table order.
//
// Only standard files are supported; other kinds return
// packtype.ErrUnsupportedFileType.
func (r *Reader) ReadAll(src io.ReaderAt, path string, entry packtype.Entry) ([]byte, error) {
	h, err := r.Header(src, path, entry)
	if err != nil {
		return nil, err
	}
	if !sizing.Within(uint64(h.FileSize), r.maxFileSize) {
		return nil, fmt.Errorf("read %s: declared size %d: %w", path, h.FileSize, packtype.ErrSizeOverflow)
	}

	base, ok := sizing.AddUint64(entry.Offset, uint64(h.Size))
	if !ok {
		return nil, fmt.Errorf("read %s: %w", path, packtype.ErrSizeOverflow)
	}

	out := bytes.NewBuffer(make([]byte, 0, h.FileSize))
	for i, blockOff := range h.Blocks {
		off, err := sizing.ToInt64(base+uint64(blockOff), packtype.ErrSizeOverflow)
		if err != nil {
			return nil, fmt.Errorf("read %s: block %d: %w", path, i, err)
		}
		if err := r.readBlock(src, off, out); err != nil {
			return nil, fmt.Errorf("read %s: block %d: %w", path, i, err)
		}
	}
	return out.Bytes(), nil
}

// readBlock inflates the block at off and appends it to out.
func (r *Reader) readBlock(src io.ReaderAt, off int64, out *bytes.Buffer) error {
	bh, err := readBlockHeader(src, off)
	if err != nil {
		return err
	}

	total := uint64(out.Len()) + uint64(bh.UncompressedSize)
	if !sizing.Within(total, r.maxFileSize) || !sizing.Within(uint64(bh.CompressedSize), r.maxFileSize) {
		return packtype.ErrSizeOverflow
	}

	payload := make([]byte, bh.CompressedSize)
	if err := readFullAt(src, payload, off+blockHeaderSize); err != nil {
		return err
	}

	dec, release := r.pool.Get(bytes.NewReader(payload))
	defer release()

	if _, err := out.ReadFrom(io.LimitReader(dec, int64(bh.UncompressedSize))); err != nil {
		return fmt.Errorf("%w: %v", packtype.ErrDecompression, err)
	}
	return nil
}
