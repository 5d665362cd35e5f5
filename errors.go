package sqpack

import (
	"errors"

	"github.com/meigma/sqpack/internal/packtype"
)

// Sentinel errors re-exported from internal/packtype.
var (
	// ErrFormat is returned when on-disk data carries an unrecognized tag,
	// type code, variant, or language.
	ErrFormat = packtype.ErrFormat

	// ErrInvalidMagic is returned when a table asset has the wrong magic.
	// It wraps ErrFormat.
	ErrInvalidMagic = packtype.ErrInvalidMagic

	// ErrNotFound is returned when a path has no entry in its pack index.
	ErrNotFound = packtype.ErrNotFound

	// ErrUnsupportedFileType is returned for archived files that are not
	// standard files (models, textures, empty placeholders).
	ErrUnsupportedFileType = packtype.ErrUnsupportedFileType

	// ErrDecode is returned when stored bytes cannot be decoded.
	ErrDecode = packtype.ErrDecode

	// ErrDecompression is returned when a block fails to inflate.
	// It wraps ErrDecode.
	ErrDecompression = packtype.ErrDecompression

	// ErrSizeOverflow is returned when byte counts exceed supported limits.
	ErrSizeOverflow = packtype.ErrSizeOverflow
)

// Sentinel errors specific to the sqpack package.
var (
	// ErrClosed is returned by a Catalog after Close.
	ErrClosed = errors.New("sqpack: catalog closed")
)
