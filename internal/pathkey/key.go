// Package pathkey classifies virtual asset paths and derives their index hashes.
package pathkey

import (
	"fmt"
	"strings"

	"github.com/meigma/sqpack/internal/packtype"
)

// Repository selects the base game (0) or one of the expansions (1-9).
type Repository uint8

// DefaultRepository is used when a path names no known repository.
const DefaultRepository Repository = 0

// MaxRepository is the highest repository number.
const MaxRepository Repository = 9

// ParseRepository maps a repository path segment ("ffxiv", "ex1".."ex9").
// Unknown names report false. Matching ignores case.
func ParseRepository(name string) (Repository, bool) {
	name = strings.ToLower(name)
	if name == "ffxiv" {
		return DefaultRepository, true
	}
	if len(name) == 3 && strings.HasPrefix(name, "ex") && name[2] >= '1' && name[2] <= '9' {
		return Repository(name[2] - '0'), true
	}
	return DefaultRepository, false
}

// String returns the directory name holding the repository's archives.
func (r Repository) String() string {
	if r == DefaultRepository {
		return "ffxiv"
	}
	return fmt.Sprintf("ex%d", uint8(r))
}

// Key identifies the (category, repository) archive pack holding a path.
// Key is comparable and used as a map key.
type Key struct {
	Category   Category
	Repository Repository
}

// Parse classifies a virtual path of the form "<category>[/<repository>]/<rest>".
//
// An unknown category is an error. A second segment that is not a known
// repository name selects DefaultRepository.
func Parse(path string) (Key, error) {
	category, rest, ok := strings.Cut(path, "/")
	if !ok {
		return Key{}, fmt.Errorf("%w: path %q has no category segment", packtype.ErrFormat, path)
	}
	c, err := ParseCategory(category)
	if err != nil {
		return Key{}, err
	}

	repo := DefaultRepository
	if segment, _, ok := strings.Cut(rest, "/"); ok {
		if r, known := ParseRepository(segment); known {
			repo = r
		}
	}
	return Key{Category: c, Repository: repo}, nil
}

// PackName returns the archive base name without platform or extension,
// e.g. "0a0000" for exd in the base repository.
func (k Key) PackName() string {
	return fmt.Sprintf("%02x%02x00", uint8(k.Category), uint8(k.Repository))
}

// String returns "<category>/<repository>".
func (k Key) String() string {
	return k.Category.String() + "/" + k.Repository.String()
}
