package pathkey

import (
	"strings"

	"github.com/klauspost/crc32"
)

// Hashes holds the three lookup hashes derived from a virtual path.
type Hashes struct {
	Directory uint32
	File      uint32
	FullPath  uint32
}

// Checksum returns the JAMCRC of the lowercased string: a reflected CRC-32
// with polynomial 0xEDB88320, initial value 0xFFFFFFFF and no final XOR.
func Checksum(s string) uint32 {
	return ^crc32.ChecksumIEEE([]byte(strings.ToLower(s)))
}

// Hash splits path at its last "/" and hashes the directory, the file name
// and the whole path. It reports false when the path has no directory part.
func Hash(path string) (Hashes, bool) {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return Hashes{}, false
	}
	return Hashes{
		Directory: Checksum(path[:i]),
		File:      Checksum(path[i+1:]),
		FullPath:  Checksum(path),
	}, true
}

// Composite returns the format 1 index key: directory hash in the high
// 32 bits, file hash in the low 32 bits.
func (h Hashes) Composite() uint64 {
	return uint64(h.Directory)<<32 | uint64(h.File)
}

// Full returns the format 2 index key.
func (h Hashes) Full() uint64 {
	return uint64(h.FullPath)
}
