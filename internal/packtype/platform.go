package packtype

import "fmt"

// Platform identifies the target platform recorded in a pack header.
type Platform uint32

const (
	PlatformWin32 Platform = iota
	PlatformPS3
	PlatformPS4
)

// ParsePlatform maps a stored platform tag to a Platform.
func ParsePlatform(v uint32) (Platform, error) {
	switch p := Platform(v); p {
	case PlatformWin32, PlatformPS3, PlatformPS4:
		return p, nil
	default:
		return 0, fmt.Errorf("%w: platform tag %d", ErrFormat, v)
	}
}

// PlatformFromName maps a file-name platform token ("win32", "ps3", "ps4").
func PlatformFromName(name string) (Platform, error) {
	switch name {
	case "win32":
		return PlatformWin32, nil
	case "ps3":
		return PlatformPS3, nil
	case "ps4":
		return PlatformPS4, nil
	default:
		return 0, fmt.Errorf("%w: platform %q", ErrFormat, name)
	}
}

// String returns the token used in archive file names.
func (p Platform) String() string {
	switch p {
	case PlatformWin32:
		return "win32"
	case PlatformPS3:
		return "ps3"
	case PlatformPS4:
		return "ps4"
	default:
		return "unknown"
	}
}
