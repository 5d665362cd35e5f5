package packtype

import "fmt"

// Entry locates one archived file inside a data file.
type Entry struct {
	// Hash is the index key the entry was stored under. Format 1 records
	// carry a composite directory/file hash; format 2 records carry a
	// full-path hash widened to 64 bits.
	Hash uint64

	// DataFileID selects the .datN file holding the content.
	DataFileID uint32

	// Offset is the byte offset of the file's container header within the
	// data file. Offsets are always multiples of 8.
	Offset uint64
}

// String returns a compact debug representation of the entry.
func (e Entry) String() string {
	return fmt.Sprintf("hash=%016X dat=%d offset=%08X", e.Hash, e.DataFileID, e.Offset)
}
