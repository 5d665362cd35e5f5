package sqpack

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/meigma/sqpack/cache"
	"github.com/meigma/sqpack/internal/batch"
	"github.com/meigma/sqpack/internal/excel"
	"github.com/meigma/sqpack/internal/file"
	"github.com/meigma/sqpack/internal/index"
	"github.com/meigma/sqpack/internal/pathkey"
)

// Catalog resolves virtual paths against an archive tree.
//
// Pack indexes and data files are opened lazily on first use and kept
// until Close. A Catalog is safe for concurrent use.
type Catalog struct {
	root        string
	platform    Platform
	language    Language
	maxFileSize uint64
	workers     int         // 0 = auto, <0 = serial
	cache       cache.Cache // nil = no caching
	logger      *slog.Logger
	reader      *file.Reader

	mu        sync.Mutex
	indexes   map[Key]*index.Index
	dataFiles map[dataFileKey]*dataFile
	closed    bool

	indexGroup singleflight.Group // zero value is valid
	readGroup  singleflight.Group // zero value is valid
}

type dataFileKey struct {
	key Key
	id  uint32
}

// dataFile is an open data file. Reads go through ReadAt, so one handle is
// shared by concurrent readers.
type dataFile struct {
	file    *os.File
	path    string
	size    int64
	modTime time.Time
}

// New creates a Catalog over the archive tree rooted at root, the
// directory holding one subdirectory per repository ("ffxiv", "ex1", ...).
func New(root string, opts ...Option) (*Catalog, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "open", Path: root, Err: errors.New("not a directory")}
	}

	c := &Catalog{
		root:        root,
		platform:    PlatformWin32,
		language:    LanguageEnglish,
		maxFileSize: file.DefaultMaxFileSize,
		indexes:     make(map[Key]*index.Index),
		dataFiles:   make(map[dataFileKey]*dataFile),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reader = file.NewReader(file.WithMaxFileSize(c.maxFileSize))
	return c, nil
}

// log returns the logger, falling back to a discard logger if nil.
func (c *Catalog) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// Root returns the archive tree root.
func (c *Catalog) Root() string {
	return c.root
}

// IndexPath returns the format 1 index file path of the pack for key.
// The format 2 index is the same path with "2" appended.
func (c *Catalog) IndexPath(key Key) string {
	return filepath.Join(c.root, key.Repository.String(), key.PackName()+"."+c.platform.String()+".index")
}

// DataPath returns the path of data file id of the pack for key.
func (c *Catalog) DataPath(key Key, id uint32) string {
	return filepath.Join(c.root, key.Repository.String(), fmt.Sprintf("%s.%s.dat%d", key.PackName(), c.platform, id))
}

// Entry looks up the index entry for path.
//
// The composite (directory, file name) hash is tried first, then the
// full-path hash. Returns ErrNotFound if neither is indexed.
func (c *Catalog) Entry(path string) (Entry, error) {
	key, err := pathkey.Parse(path)
	if err != nil {
		return Entry{}, err
	}
	return c.lookup(key, path)
}

// Entries returns every entry of the pack for key, sorted by data file
// and offset.
func (c *Catalog) Entries(key Key) ([]Entry, error) {
	idx, err := c.index(key)
	if err != nil {
		return nil, err
	}
	entries := slices.Collect(idx.Entries())
	slices.SortFunc(entries, func(a, b Entry) int {
		if a.DataFileID != b.DataFileID {
			return cmp.Compare(a.DataFileID, b.DataFileID)
		}
		if a.Offset != b.Offset {
			return cmp.Compare(a.Offset, b.Offset)
		}
		return cmp.Compare(a.Hash, b.Hash)
	})
	return entries, nil
}

// Asset reads and reassembles the archived file at path.
func (c *Catalog) Asset(path string) (*Asset, error) {
	data, err := c.readAsset(path)
	if err != nil {
		return nil, err
	}
	return newAsset(path, data), nil
}

// Schema reads and decodes the header of the table at path, e.g.
// "exd/item" for "exd/item.exh".
func (c *Catalog) Schema(table string) (*Schema, error) {
	headerPath := excel.HeaderPath(table)
	data, err := c.readAsset(headerPath)
	if err != nil {
		return nil, err
	}
	schema, err := excel.ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", headerPath, err)
	}
	return schema, nil
}

// Rows reads every row of the table at path, in page order.
//
// Each page is read in the preferred language when the table stores it and
// in the language-neutral variant otherwise. A page that cannot be read is
// logged and skipped. A schema that cannot be read or decoded, or a page
// that is read but cannot be decoded, fails the whole call.
//
// Pages are read and decoded on up to WithWorkers workers; the result is
// always in page order.
func (c *Catalog) Rows(table string) ([]Row, error) {
	schema, err := c.Schema(table)
	if err != nil {
		return nil, err
	}
	lang := schema.PageLanguage(c.language)

	type pageResult struct {
		path     string
		rows     []Row
		fetchErr error
	}
	results := make([]pageResult, len(schema.Pages))
	err = batch.Run(len(schema.Pages), c.workers, func(i int) error {
		res := &results[i]
		res.path = excel.PagePath(table, schema.Pages[i], lang)
		data, err := c.readAsset(res.path)
		if err != nil {
			res.fetchErr = err
			return nil
		}
		rows, err := excel.DecodePage(data, schema)
		if err != nil {
			return fmt.Errorf("page %s: %w", res.path, err)
		}
		res.rows = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	var rows []Row
	for _, res := range results {
		if res.fetchErr != nil {
			c.log().Warn("skipping table page", "table", table, "page", res.path, "error", res.fetchErr)
			continue
		}
		rows = append(rows, res.rows...)
	}
	return rows, nil
}

// Close closes every open data file. The Catalog cannot be used after
// Close.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	for k, df := range c.dataFiles {
		if err := df.file.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(c.dataFiles, k)
	}
	clear(c.indexes)
	return errors.Join(errs...)
}

func (c *Catalog) readAsset(path string) ([]byte, error) {
	key, err := pathkey.Parse(path)
	if err != nil {
		return nil, err
	}
	entry, err := c.lookup(key, path)
	if err != nil {
		return nil, err
	}
	df, err := c.dataFile(key, entry.DataFileID)
	if err != nil {
		return nil, err
	}
	return c.readCached(path, df, entry)
}

func (c *Catalog) lookup(key Key, path string) (Entry, error) {
	idx, err := c.index(key)
	if err != nil {
		return Entry{}, err
	}
	entry, ok := idx.Lookup(path)
	if !ok {
		return Entry{}, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return entry, nil
}

// index returns the loaded index pair for key, loading it on first use.
// Concurrent first loads of the same pack share one read.
func (c *Catalog) index(key Key) (*index.Index, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	idx, ok := c.indexes[key]
	c.mu.Unlock()
	if ok {
		return idx, nil
	}

	result, err, _ := c.indexGroup.Do(key.String(), func() (any, error) {
		c.mu.Lock()
		idx, ok := c.indexes[key]
		c.mu.Unlock()
		if ok {
			return idx, nil
		}

		path := c.IndexPath(key)
		idx, err := index.Open(path)
		if err != nil {
			return nil, err
		}
		c.log().Debug("loaded index",
			"pack", key.String(),
			"path", path,
			"entries", idx.Len(),
			index.Format1.String(), idx.Count(index.Format1),
			index.Format2.String(), idx.Count(index.Format2),
		)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed {
			return nil, ErrClosed
		}
		c.indexes[key] = idx
		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*index.Index), nil //nolint:errcheck // type assertion always succeeds when err is nil
}

// dataFile returns the open data file id of the pack for key.
func (c *Catalog) dataFile(key Key, id uint32) (*dataFile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	dk := dataFileKey{key: key, id: id}
	if df, ok := c.dataFiles[dk]; ok {
		return df, nil
	}

	path := c.DataPath(key, id)
	f, err := os.Open(path) //nolint:gosec // path is built from a validated key
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	df := &dataFile{file: f, path: path, size: info.Size(), modTime: info.ModTime()}
	c.dataFiles[dk] = df
	c.log().Debug("opened data file", "pack", key.String(), "path", path, "size", df.size)
	return df, nil
}
