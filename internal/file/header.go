package file

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/meigma/sqpack/internal/packtype"
)

const (
	commonHeaderSize    = 24
	blockDescriptorSize = 8
	blockHeaderSize     = 16
)

// Header is the container header that precedes every archived file.
type Header struct {
	// Size is the byte length of the header including its block table.
	// Block offsets are relative to the end of the header.
	Size uint32

	// Type is the container kind.
	Type packtype.FileType

	// FileSize is the declared uncompressed size of the whole file.
	FileSize uint32

	// Blocks lists block offsets in assembly order.
	Blocks []uint32
}

// blockHeader precedes each compressed block payload.
type blockHeader struct {
	CompressedSize   uint32
	UncompressedSize uint32
}

// readHeader reads the container header and block table at off. A file-type
// tag outside the known set is reported through the returned error while
// the raw tag is kept in Type.
func readHeader(src io.ReaderAt, off int64) (Header, error) {
	var buf [commonHeaderSize]byte
	if err := readFullAt(src, buf[:], off); err != nil {
		return Header{}, fmt.Errorf("read header: %w", err)
	}

	tag := binary.LittleEndian.Uint32(buf[4:8])
	h := Header{
		Size:     binary.LittleEndian.Uint32(buf[0:4]),
		Type:     packtype.FileType(tag),
		FileSize: binary.LittleEndian.Uint32(buf[8:12]),
	}
	if _, err := packtype.ParseFileType(tag); err != nil {
		return h, fmt.Errorf("%w: %w", packtype.ErrUnsupportedFileType, err)
	}
	if h.Type != packtype.FileTypeStandard {
		return h, fmt.Errorf("%w: %s", packtype.ErrUnsupportedFileType, h.Type)
	}

	count := uint64(binary.LittleEndian.Uint32(buf[20:24]))
	if commonHeaderSize+count*blockDescriptorSize > uint64(h.Size) {
		return h, fmt.Errorf("%w: %d blocks do not fit in a %d byte header", packtype.ErrFormat, count, h.Size)
	}

	table := make([]byte, count*blockDescriptorSize)
	if err := readFullAt(src, table, off+commonHeaderSize); err != nil {
		return h, fmt.Errorf("read block table: %w", err)
	}
	h.Blocks = make([]uint32, count)
	for i := range h.Blocks {
		h.Blocks[i] = binary.LittleEndian.Uint32(table[i*blockDescriptorSize:])
	}
	return h, nil
}

func readBlockHeader(src io.ReaderAt, off int64) (blockHeader, error) {
	var buf [blockHeaderSize]byte
	if err := readFullAt(src, buf[:], off); err != nil {
		return blockHeader{}, err
	}
	return blockHeader{
		CompressedSize:   binary.LittleEndian.Uint32(buf[8:12]),
		UncompressedSize: binary.LittleEndian.Uint32(buf[12:16]),
	}, nil
}

// readFullAt fills p from src at off, reporting short reads as
// io.ErrUnexpectedEOF.
func readFullAt(src io.ReaderAt, p []byte, off int64) error {
	n, err := src.ReadAt(p, off)
	if n == len(p) {
		return nil
	}
	if err == nil || err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
