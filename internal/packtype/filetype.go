package packtype

import "fmt"

// FileType identifies the container kind of an archived file.
type FileType uint32

const (
	FileTypeEmpty FileType = iota + 1
	FileTypeStandard
	FileTypeModel
	FileTypeTexture
)

// ParseFileType maps a stored file-type tag to a FileType.
func ParseFileType(v uint32) (FileType, error) {
	switch t := FileType(v); t {
	case FileTypeEmpty, FileTypeStandard, FileTypeModel, FileTypeTexture:
		return t, nil
	default:
		return 0, fmt.Errorf("%w: file type %d", ErrFormat, v)
	}
}

// String returns the human-readable name of the file type.
func (t FileType) String() string {
	switch t {
	case FileTypeEmpty:
		return "empty"
	case FileTypeStandard:
		return "standard"
	case FileTypeModel:
		return "model"
	case FileTypeTexture:
		return "texture"
	default:
		return "unknown"
	}
}
