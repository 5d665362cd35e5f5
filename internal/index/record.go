package index

import (
	"encoding/binary"
	"fmt"

	"github.com/meigma/sqpack/internal/packtype"
)

// Format selects one of the two on-disk index record layouts.
type Format uint8

const (
	// Format1 records are 16 bytes: a 64-bit composite hash and a 64-bit
	// packed location.
	Format1 Format = 1

	// Format2 records are 8 bytes: a 32-bit full-path hash and a 32-bit
	// packed location.
	Format2 Format = 2
)

// RecordSize returns the width of one record in bytes.
func (f Format) RecordSize() int {
	if f == Format1 {
		return 16
	}
	return 8
}

// String returns the index file suffix for the format.
func (f Format) String() string {
	switch f {
	case Format1:
		return "index"
	case Format2:
		return "index2"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// decodeRecord unpacks one little-endian record.
//
// The two layouts mask the data file id differently: format 1 takes the low
// three bits of the shifted value, format 2 takes bits 1-3. Both are kept
// as stored archives expect them.
func decodeRecord(f Format, rec []byte) packtype.Entry {
	if f == Format1 {
		hash := binary.LittleEndian.Uint64(rec[0:8])
		data := binary.LittleEndian.Uint64(rec[8:16]) >> 1
		return packtype.Entry{
			Hash:       hash,
			DataFileID: uint32(data & 0b111),
			Offset:     (data &^ 0b111) << 4,
		}
	}
	hash := binary.LittleEndian.Uint32(rec[0:4])
	data := binary.LittleEndian.Uint32(rec[4:8]) >> 1
	return packtype.Entry{
		Hash:       uint64(hash),
		DataFileID: data & 0b1110,
		Offset:     uint64(data&^0b111) << 4,
	}
}
