package testutil

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/flate"
)

// Platform tags written into pack headers.
const (
	PlatformWin32 uint32 = 0
	PlatformPS3   uint32 = 1
	PlatformPS4   uint32 = 2
)

// Archived file type tags.
const (
	FileTypeEmpty    uint32 = 1
	FileTypeStandard uint32 = 2
	FileTypeModel    uint32 = 3
	FileTypeTexture  uint32 = 4
)

// FileAlign is the alignment of archived files within a data file.
// Index records can only address multiples of this value.
const FileAlign = 128

// Format2Align is the alignment needed for a format 2 record to address
// data file 0.
const Format2Align = 256

const (
	packHeaderSize  = 1024
	indexHeaderSize = 1024
)

// PackHeader returns a pack header with the given platform tag, padded to
// its declared size.
func PackHeader(platform uint32) []byte {
	buf := make([]byte, packHeaderSize)
	copy(buf, "SqPack")
	binary.LittleEndian.PutUint32(buf[8:], platform)
	binary.LittleEndian.PutUint32(buf[12:], packHeaderSize)
	binary.LittleEndian.PutUint32(buf[16:], 1)
	binary.LittleEndian.PutUint32(buf[20:], 2)
	return buf
}

// IndexFile returns an index file holding the concatenated records.
func IndexFile(platform uint32, records ...[]byte) []byte {
	var table []byte
	for _, r := range records {
		table = append(table, r...)
	}
	buf := PackHeader(platform)
	ih := make([]byte, indexHeaderSize)
	binary.LittleEndian.PutUint32(ih[0:], indexHeaderSize)
	binary.LittleEndian.PutUint32(ih[4:], 1)
	binary.LittleEndian.PutUint32(ih[8:], packHeaderSize+indexHeaderSize)
	binary.LittleEndian.PutUint32(ih[12:], uint32(len(table))) //nolint:gosec // test tables are small
	buf = append(buf, ih...)
	return append(buf, table...)
}

// Format1Record encodes a 16-byte format 1 record. offset must be a
// multiple of FileAlign and dataFileID below 8.
func Format1Record(hash uint64, dataFileID uint32, offset uint64) []byte {
	rec := make([]byte, 16)
	binary.LittleEndian.PutUint64(rec[0:], hash)
	binary.LittleEndian.PutUint64(rec[8:], (offset>>4|uint64(dataFileID))<<1)
	return rec
}

// Format2Record encodes an 8-byte format 2 record with a raw packed field.
func Format2Record(hash, packed uint32) []byte {
	rec := make([]byte, 8)
	binary.LittleEndian.PutUint32(rec[0:], hash)
	binary.LittleEndian.PutUint32(rec[4:], packed)
	return rec
}

// Format2Packed returns the packed field that decodes to offset in data
// file 0. offset must be a multiple of Format2Align: format 2 reads bit 3
// of the shifted field as part of the data file id.
func Format2Packed(offset uint64) uint32 {
	return uint32(offset>>4) << 1 //nolint:gosec // test offsets are small
}

// Deflate compresses data as a raw deflate stream.
func Deflate(tb testing.TB, data []byte) []byte {
	tb.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		tb.Fatalf("flate writer: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		tb.Fatalf("deflate: %v", err)
	}
	if err := w.Close(); err != nil {
		tb.Fatalf("deflate close: %v", err)
	}
	return buf.Bytes()
}

// Block is one stored block of an archived file.
type Block struct {
	// Plain is the decompressed content.
	Plain []byte

	// Compressed overrides the deflated payload when non-nil, for
	// corruption tests.
	Compressed []byte
}

// StandardFile encodes a standard archived file whose block table lists
// blocks in the given order. Block payloads are laid out in the blocks
// region in placement order, so a placement other than 0..n-1 produces
// non-monotonic descriptor offsets.
func StandardFile(tb testing.TB, blocks []Block, placement []int) []byte {
	tb.Helper()
	return containerFile(tb, FileTypeStandard, blocks, placement)
}

// ContainerFile is StandardFile with an arbitrary file-type tag.
func ContainerFile(tb testing.TB, fileType uint32, blocks []Block) []byte {
	tb.Helper()
	return containerFile(tb, fileType, blocks, nil)
}

func containerFile(tb testing.TB, fileType uint32, blocks []Block, placement []int) []byte {
	tb.Helper()
	if placement == nil {
		placement = make([]int, len(blocks))
		for i := range placement {
			placement[i] = i
		}
	}

	encoded := make([][]byte, len(blocks))
	var total uint32
	for i, b := range blocks {
		payload := b.Compressed
		if payload == nil {
			payload = Deflate(tb, b.Plain)
		}
		bh := make([]byte, 16)
		binary.LittleEndian.PutUint32(bh[0:], 16)
		binary.LittleEndian.PutUint32(bh[8:], uint32(len(payload)))  //nolint:gosec // test sizes are small
		binary.LittleEndian.PutUint32(bh[12:], uint32(len(b.Plain))) //nolint:gosec // test sizes are small
		encoded[i] = pad(append(bh, payload...), FileAlign)
		total += uint32(len(b.Plain)) //nolint:gosec // test sizes are small
	}

	offsets := make([]uint32, len(blocks))
	var region []byte
	for _, i := range placement {
		offsets[i] = uint32(len(region)) //nolint:gosec // test sizes are small
		region = append(region, encoded[i]...)
	}

	header := make([]byte, 24+8*len(blocks))
	binary.LittleEndian.PutUint32(header[4:], fileType)
	binary.LittleEndian.PutUint32(header[8:], total)
	binary.LittleEndian.PutUint32(header[20:], uint32(len(blocks))) //nolint:gosec // test sizes are small
	for i, off := range offsets {
		binary.LittleEndian.PutUint32(header[24+8*i:], off)
		binary.LittleEndian.PutUint16(header[30+8*i:], uint16(len(encoded[i]))) //nolint:gosec // test sizes are small
	}
	header = pad(header, FileAlign)
	binary.LittleEndian.PutUint32(header[0:], uint32(len(header))) //nolint:gosec // test sizes are small

	return append(header, region...)
}

// SplitBlocks cuts data into blocks of at most size bytes.
func SplitBlocks(data []byte, size int) []Block {
	if len(data) == 0 {
		return []Block{{Plain: []byte{}}}
	}
	var blocks []Block
	for len(data) > 0 {
		n := min(size, len(data))
		blocks = append(blocks, Block{Plain: data[:n]})
		data = data[n:]
	}
	return blocks
}

// DataFile accumulates archived files into one .datN image.
type DataFile struct {
	buf []byte
}

// NewDataFile starts a data file with a pack header.
func NewDataFile() *DataFile {
	return &DataFile{buf: PackHeader(PlatformWin32)}
}

// Append adds an archived file at the next aligned offset and returns it.
func (d *DataFile) Append(file []byte) uint64 {
	return d.AppendAligned(file, FileAlign)
}

// AppendAligned is Append with an explicit alignment.
func (d *DataFile) AppendAligned(file []byte, align int) uint64 {
	d.buf = pad(d.buf, align)
	off := uint64(len(d.buf))
	d.buf = append(d.buf, file...)
	return off
}

// Bytes returns the data file image.
func (d *DataFile) Bytes() []byte {
	return pad(d.buf, FileAlign)
}

func pad(b []byte, align int) []byte {
	if rem := len(b) % align; rem != 0 {
		b = append(b, make([]byte, align-rem)...)
	}
	return b
}
