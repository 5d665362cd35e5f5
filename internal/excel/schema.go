package excel

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/meigma/sqpack/internal/packtype"
)

var (
	headerMagic = []byte("EXHF")
	dataMagic   = []byte("EXDF")
)

const (
	schemaHeaderSize = 32
	columnSize       = 4
	pageSize         = 8
	languageSize     = 2
)

// Column locates one field within a row's fixed region.
type Column struct {
	Type   ColumnType
	Offset uint16
}

// Page is a contiguous range of row ids stored in one data page.
type Page struct {
	StartRowID uint32
	RowCount   uint32
}

// Schema is a decoded table header asset.
type Schema struct {
	// DataOffset is the size of each row's fixed-width region. The string
	// blob of a row starts right after it.
	DataOffset uint16
	Variant    Variant
	RowCount   uint32
	Columns    []Column
	Pages      []Page
	Languages  []Language
}

// ParseSchema decodes a table header asset.
func ParseSchema(data []byte) (*Schema, error) {
	b := buffer(data)
	head, err := b.slice(0, schemaHeaderSize)
	if err != nil {
		return nil, fmt.Errorf("table header: %w", err)
	}
	if !bytes.Equal(head[:4], headerMagic) {
		return nil, fmt.Errorf("table header: %w", packtype.ErrInvalidMagic)
	}

	variant, err := ParseVariant(head[17])
	if err != nil {
		return nil, fmt.Errorf("table header: %w", err)
	}
	s := &Schema{
		DataOffset: binary.BigEndian.Uint16(head[6:8]),
		Variant:    variant,
		RowCount:   binary.BigEndian.Uint32(head[20:24]),
	}
	columnCount := int(binary.BigEndian.Uint16(head[8:10]))
	pageCount := int(binary.BigEndian.Uint16(head[10:12]))
	languageCount := int(binary.BigEndian.Uint16(head[12:14]))

	off := uint64(schemaHeaderSize)
	cols, err := b.slice(off, columnCount*columnSize)
	if err != nil {
		return nil, fmt.Errorf("table columns: %w", err)
	}
	s.Columns = make([]Column, columnCount)
	for i := range s.Columns {
		rec := cols[i*columnSize:]
		t, err := ParseColumnType(binary.BigEndian.Uint16(rec[0:2]))
		if err != nil {
			return nil, fmt.Errorf("table column %d: %w", i, err)
		}
		s.Columns[i] = Column{Type: t, Offset: binary.BigEndian.Uint16(rec[2:4])}
	}
	off += uint64(len(cols))

	pages, err := b.slice(off, pageCount*pageSize)
	if err != nil {
		return nil, fmt.Errorf("table pages: %w", err)
	}
	s.Pages = make([]Page, pageCount)
	for i := range s.Pages {
		rec := pages[i*pageSize:]
		s.Pages[i] = Page{
			StartRowID: binary.BigEndian.Uint32(rec[0:4]),
			RowCount:   binary.BigEndian.Uint32(rec[4:8]),
		}
	}
	off += uint64(len(pages))

	langs, err := b.slice(off, languageCount*languageSize)
	if err != nil {
		return nil, fmt.Errorf("table languages: %w", err)
	}
	s.Languages = make([]Language, languageCount)
	for i := range s.Languages {
		// Language codes are a byte followed by padding.
		l, err := ParseLanguage(binary.LittleEndian.Uint16(langs[i*languageSize:]))
		if err != nil {
			return nil, fmt.Errorf("table language %d: %w", i, err)
		}
		s.Languages[i] = l
	}
	return s, nil
}

// HasLanguage reports whether the table stores pages for l.
func (s *Schema) HasLanguage(l Language) bool {
	return slices.Contains(s.Languages, l)
}

// PageLanguage returns preferred if the table stores it, else LanguageNone.
func (s *Schema) PageLanguage(preferred Language) Language {
	if s.HasLanguage(preferred) {
		return preferred
	}
	return LanguageNone
}

// PagePath returns the virtual path of one data page of the table at
// path, e.g. "exd/item_0_en.exd".
func PagePath(path string, page Page, lang Language) string {
	return fmt.Sprintf("%s_%d%s.exd", path, page.StartRowID, lang.Suffix())
}

// HeaderPath returns the virtual path of the table's header asset.
func HeaderPath(path string) string {
	return path + ".exh"
}
