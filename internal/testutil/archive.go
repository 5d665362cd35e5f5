package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/meigma/sqpack/internal/pathkey"
)

// DefaultBlockSize is the block size used by Archive.Add.
const DefaultBlockSize = 64

type archiveFile struct {
	path       string
	container  []byte
	dataFileID uint32
	fullOnly   bool
}

// Archive builds an on-disk archive tree ("<repo>/<pack>.win32.index",
// ".index2" and ".datN" files) from virtual paths.
type Archive struct {
	tb    testing.TB
	files []archiveFile
}

// NewArchive returns an empty archive builder.
func NewArchive(tb testing.TB) *Archive {
	tb.Helper()
	return &Archive{tb: tb}
}

// Add stores content as a standard file in data file 0, indexed by its
// composite hash in the format 1 table.
func (a *Archive) Add(path string, content []byte) *Archive {
	return a.AddToDataFile(path, 0, content)
}

// AddToDataFile is Add for an explicit data file id (0-7).
func (a *Archive) AddToDataFile(path string, dataFileID uint32, content []byte) *Archive {
	a.tb.Helper()
	container := StandardFile(a.tb, SplitBlocks(content, DefaultBlockSize), nil)
	a.files = append(a.files, archiveFile{path: path, container: container, dataFileID: dataFileID})
	return a
}

// AddFullPathOnly stores content in data file 0, indexed only by its
// full-path hash in the format 2 table.
func (a *Archive) AddFullPathOnly(path string, content []byte) *Archive {
	a.tb.Helper()
	container := StandardFile(a.tb, SplitBlocks(content, DefaultBlockSize), nil)
	a.files = append(a.files, archiveFile{path: path, container: container, fullOnly: true})
	return a
}

// AddContainer stores a pre-built container in data file 0.
func (a *Archive) AddContainer(path string, container []byte) *Archive {
	a.files = append(a.files, archiveFile{path: path, container: container})
	return a
}

// Write materializes the archive under root.
func (a *Archive) Write(root string) {
	a.tb.Helper()

	type pack struct {
		key   pathkey.Key
		data  map[uint32]*DataFile
		index [][]byte
		idx2  [][]byte
	}
	packs := make(map[pathkey.Key]*pack)

	for _, f := range a.files {
		key, err := pathkey.Parse(f.path)
		if err != nil {
			a.tb.Fatalf("parse %s: %v", f.path, err)
		}
		p, ok := packs[key]
		if !ok {
			p = &pack{key: key, data: make(map[uint32]*DataFile)}
			packs[key] = p
		}
		d, ok := p.data[f.dataFileID]
		if !ok {
			d = NewDataFile()
			p.data[f.dataFileID] = d
		}
		var off uint64
		if f.fullOnly {
			off = d.AppendAligned(f.container, Format2Align)
		} else {
			off = d.Append(f.container)
		}

		h, ok := pathkey.Hash(f.path)
		if !ok {
			a.tb.Fatalf("hash %s: no directory", f.path)
		}
		if f.fullOnly {
			p.idx2 = append(p.idx2, Format2Record(h.FullPath, Format2Packed(off)))
		} else {
			p.index = append(p.index, Format1Record(h.Composite(), f.dataFileID, off))
		}
	}

	for _, p := range packs {
		dir := filepath.Join(root, p.key.Repository.String())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			a.tb.Fatalf("mkdir: %v", err)
		}
		base := filepath.Join(dir, p.key.PackName()+".win32")
		writeFile(a.tb, base+".index", IndexFile(PlatformWin32, p.index...))
		writeFile(a.tb, base+".index2", IndexFile(PlatformWin32, p.idx2...))
		for id, d := range p.data {
			writeFile(a.tb, fmt.Sprintf("%s.dat%d", base, id), d.Bytes())
		}
	}
}

func writeFile(tb testing.TB, path string, data []byte) {
	tb.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // test fixture
		tb.Fatalf("write %s: %v", path, err)
	}
}
