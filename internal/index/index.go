package index

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/meigma/sqpack/internal/packtype"
	"github.com/meigma/sqpack/internal/pathkey"
)

// Index maps record hashes to entry locations for one archive pack.
//
// Index is immutable after Load and safe for concurrent use.
type Index struct {
	entries map[uint64]packtype.Entry
	counts  [3]int
}

// Open loads the index pair rooted at path: path itself is read as
// format 1 and path+"2" as format 2.
func Open(path string) (*Index, error) {
	f1, err := os.Open(path) //nolint:gosec // path is built by the catalog from a validated key
	if err != nil {
		return nil, err
	}
	defer f1.Close()

	f2, err := os.Open(path + "2") //nolint:gosec // sibling of path
	if err != nil {
		return nil, err
	}
	defer f2.Close()

	idx, err := Load(f1, f2)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return idx, nil
}

// Load builds an Index from a format 1 and a format 2 table.
//
// Format 2 entries are inserted first and format 1 entries overlay them,
// so a hash present in both tables resolves to the format 1 entry.
func Load(format1, format2 io.ReaderAt) (*Index, error) {
	idx := &Index{entries: make(map[uint64]packtype.Entry)}

	for _, src := range []struct {
		r io.ReaderAt
		f Format
	}{
		{format2, Format2},
		{format1, Format1},
	} {
		entries, err := ReadTable(src.r, src.f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.f, err)
		}
		for _, e := range entries {
			idx.entries[e.Hash] = e
		}
		idx.counts[src.f] = len(entries)
	}
	return idx, nil
}

// ReadTable decodes every record of a single index file.
func ReadTable(r io.ReaderAt, f Format) ([]packtype.Entry, error) {
	var entries []packtype.Entry
	err := readTable(r, f, func(e packtype.Entry) {
		entries = append(entries, e)
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func readTable(r io.ReaderAt, f Format, fn func(packtype.Entry)) error {
	ph, err := readPackHeader(r)
	if err != nil {
		return err
	}
	ih, err := readIndexHeader(r, int64(ph.Size))
	if err != nil {
		return err
	}

	size := f.RecordSize()
	count := int(ih.TableSize) / size
	br := bufio.NewReader(io.NewSectionReader(r, int64(ih.TableOffset), int64(count*size)))
	rec := make([]byte, size)
	for i := range count {
		if _, err := io.ReadFull(br, rec); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return fmt.Errorf("read record %d of %d: %w", i, count, err)
		}
		fn(decodeRecord(f, rec))
	}
	return nil
}

// Get returns the entry stored under hash.
func (idx *Index) Get(hash uint64) (packtype.Entry, bool) {
	e, ok := idx.entries[hash]
	return e, ok
}

// Lookup resolves a virtual path. The composite directory/file hash is
// tried first, then the full-path hash.
func (idx *Index) Lookup(path string) (packtype.Entry, bool) {
	h, ok := pathkey.Hash(path)
	if !ok {
		return packtype.Entry{}, false
	}
	if e, ok := idx.Get(h.Composite()); ok {
		return e, true
	}
	return idx.Get(h.Full())
}

// Len returns the number of distinct hashes in the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Count returns how many records were read from the given format's table,
// including records later shadowed by the merge.
func (idx *Index) Count(f Format) int {
	if f != Format1 && f != Format2 {
		return 0
	}
	return idx.counts[f]
}

// Entries returns an iterator over all entries in unspecified order.
func (idx *Index) Entries() iter.Seq[packtype.Entry] {
	return func(yield func(packtype.Entry) bool) {
		for _, e := range idx.entries {
			if !yield(e) {
				return
			}
		}
	}
}
