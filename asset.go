package sqpack

import (
	"bytes"
	"fmt"
	"io"
)

// Asset is the reassembled content of one archived file.
//
// The content is owned by the Asset and never modified. Accessors that
// return byte slices return copies.
type Asset struct {
	path string
	data []byte
}

func newAsset(path string, data []byte) *Asset {
	return &Asset{path: path, data: data}
}

// Path returns the virtual path the asset was read from.
func (a *Asset) Path() string {
	return a.path
}

// Len returns the content length in bytes.
func (a *Asset) Len() int {
	return len(a.data)
}

// Bytes returns a copy of the content.
func (a *Asset) Bytes() []byte {
	return bytes.Clone(a.data)
}

// Slice returns a copy of n bytes starting at off.
func (a *Asset) Slice(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off > len(a.data) || n > len(a.data)-off {
		return nil, fmt.Errorf("slice %s [%d:+%d]: %w", a.path, off, n, io.ErrUnexpectedEOF)
	}
	return bytes.Clone(a.data[off : off+n]), nil
}

// Reader returns a reader over the content.
func (a *Asset) Reader() *bytes.Reader {
	return bytes.NewReader(a.data)
}

// WriteTo implements io.WriterTo.
func (a *Asset) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(a.data)
	return int64(n), err
}
