package packtype

import (
	"errors"
	"fmt"
)

// Sentinel errors for archive operations.
var (
	// ErrFormat is returned when on-disk data carries an unrecognized tag,
	// type code, variant, or language.
	ErrFormat = errors.New("sqpack: invalid format")

	// ErrInvalidMagic is returned when a table asset does not start with the
	// expected magic tag. It wraps ErrFormat.
	ErrInvalidMagic = fmt.Errorf("%w: invalid magic", ErrFormat)

	// ErrNotFound is returned when a path has no entry in its index.
	ErrNotFound = errors.New("sqpack: not found")

	// ErrUnsupportedFileType is returned for archived file kinds other than
	// standard files.
	ErrUnsupportedFileType = errors.New("sqpack: unsupported file type")

	// ErrDecode is returned when stored bytes cannot be decoded.
	ErrDecode = errors.New("sqpack: decode failed")

	// ErrDecompression is returned when a block fails to inflate. It wraps
	// ErrDecode.
	ErrDecompression = fmt.Errorf("%w: decompression failed", ErrDecode)

	// ErrSizeOverflow is returned when byte counts exceed supported limits.
	ErrSizeOverflow = errors.New("sqpack: size overflow")
)
