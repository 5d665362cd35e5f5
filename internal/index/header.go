package index

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/meigma/sqpack/internal/packtype"
)

const (
	packHeaderSize  = 24
	indexHeaderSize = 16
)

// packMagic opens every pack file.
var packMagic = [8]byte{'S', 'q', 'P', 'a', 'c', 'k', 0, 0}

// packHeader is the common header of index and data files.
type packHeader struct {
	Platform packtype.Platform
	Size     uint32
	Version  uint32
	Type     uint32
}

// indexHeader locates the record table of an index file.
type indexHeader struct {
	Size        uint32
	Type        uint32
	TableOffset uint32
	TableSize   uint32
}

func readPackHeader(r io.ReaderAt) (packHeader, error) {
	var buf [packHeaderSize]byte
	if err := readFullAt(r, buf[:], 0); err != nil {
		return packHeader{}, fmt.Errorf("read pack header: %w", err)
	}
	if !bytes.Equal(buf[:8], packMagic[:]) {
		return packHeader{}, fmt.Errorf("pack header: %w", packtype.ErrInvalidMagic)
	}
	platform, err := packtype.ParsePlatform(binary.LittleEndian.Uint32(buf[8:12]))
	if err != nil {
		return packHeader{}, fmt.Errorf("pack header: %w", err)
	}
	return packHeader{
		Platform: platform,
		Size:     binary.LittleEndian.Uint32(buf[12:16]),
		Version:  binary.LittleEndian.Uint32(buf[16:20]),
		Type:     binary.LittleEndian.Uint32(buf[20:24]),
	}, nil
}

func readIndexHeader(r io.ReaderAt, off int64) (indexHeader, error) {
	var buf [indexHeaderSize]byte
	if err := readFullAt(r, buf[:], off); err != nil {
		return indexHeader{}, fmt.Errorf("read index header: %w", err)
	}
	return indexHeader{
		Size:        binary.LittleEndian.Uint32(buf[0:4]),
		Type:        binary.LittleEndian.Uint32(buf[4:8]),
		TableOffset: binary.LittleEndian.Uint32(buf[8:12]),
		TableSize:   binary.LittleEndian.Uint32(buf[12:16]),
	}, nil
}

// readFullAt fills p from r at off, reporting short reads as
// io.ErrUnexpectedEOF.
func readFullAt(r io.ReaderAt, p []byte, off int64) error {
	n, err := r.ReadAt(p, off)
	if n == len(p) {
		return nil
	}
	if err == nil || err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
