package excel

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/meigma/sqpack/internal/packtype"
)

// buffer gives bounds-checked big-endian reads at absolute offsets of a
// decoded asset.
type buffer []byte

func (b buffer) slice(off uint64, n int) ([]byte, error) {
	if off > uint64(len(b)) || uint64(len(b))-off < uint64(n) {
		return nil, fmt.Errorf("%w: read %d bytes at %d of %d: %w", packtype.ErrDecode, n, off, len(b), io.ErrUnexpectedEOF)
	}
	return b[off : off+uint64(n)], nil
}

func (b buffer) u8(off uint64) (uint8, error) {
	p, err := b.slice(off, 1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (b buffer) u16(off uint64) (uint16, error) {
	p, err := b.slice(off, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(p), nil
}

func (b buffer) u32(off uint64) (uint32, error) {
	p, err := b.slice(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p), nil
}

func (b buffer) u64(off uint64) (uint64, error) {
	p, err := b.slice(off, 8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(p), nil
}

// cstring returns the bytes from off up to, not including, the next zero.
func (b buffer) cstring(off uint64) ([]byte, error) {
	if off > uint64(len(b)) {
		return nil, fmt.Errorf("%w: string at %d of %d: %w", packtype.ErrDecode, off, len(b), io.ErrUnexpectedEOF)
	}
	rest := b[off:]
	for i, c := range rest {
		if c == 0 {
			return rest[:i], nil
		}
	}
	return nil, fmt.Errorf("%w: unterminated string at %d: %w", packtype.ErrDecode, off, io.ErrUnexpectedEOF)
}
