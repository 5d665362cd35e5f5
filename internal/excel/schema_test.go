package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/sqpack/internal/packtype"
	"github.com/meigma/sqpack/internal/testutil"
)

func sampleHeader() testutil.ExcelHeader {
	return testutil.ExcelHeader{
		DataOffset: 12,
		Variant:    1,
		RowCount:   300,
		Columns: []testutil.ExcelColumn{
			{Type: uint16(ColumnString), Offset: 0},
			{Type: uint16(ColumnInt32), Offset: 4},
			{Type: uint16(ColumnPackedBool0), Offset: 8},
			{Type: uint16(ColumnPackedBool3), Offset: 8},
		},
		Pages: []testutil.ExcelPage{
			{StartRowID: 0, RowCount: 200},
			{StartRowID: 200, RowCount: 100},
		},
		Languages: []uint16{uint16(LanguageJapanese), uint16(LanguageEnglish), uint16(LanguageGerman)},
	}
}

func TestParseSchema(t *testing.T) {
	t.Parallel()

	s, err := ParseSchema(sampleHeader().Bytes())
	require.NoError(t, err)

	assert.Equal(t, uint16(12), s.DataOffset)
	assert.Equal(t, VariantDefault, s.Variant)
	assert.Equal(t, uint32(300), s.RowCount)
	assert.Equal(t, []Column{
		{ColumnString, 0},
		{ColumnInt32, 4},
		{ColumnPackedBool0, 8},
		{ColumnPackedBool3, 8},
	}, s.Columns)
	assert.Equal(t, []Page{{0, 200}, {200, 100}}, s.Pages)
	assert.Equal(t, []Language{LanguageJapanese, LanguageEnglish, LanguageGerman}, s.Languages)
}

func TestParseSchemaErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*testutil.ExcelHeader)
		raw    func([]byte) []byte
		want   error
	}{
		{
			name: "bad magic",
			raw:  func(b []byte) []byte { copy(b, "EXDF"); return b },
			want: packtype.ErrInvalidMagic,
		},
		{
			name:   "unknown variant",
			mutate: func(h *testutil.ExcelHeader) { h.Variant = 3 },
			want:   packtype.ErrFormat,
		},
		{
			name:   "unknown column type",
			mutate: func(h *testutil.ExcelHeader) { h.Columns[1].Type = 0x08 },
			want:   packtype.ErrFormat,
		},
		{
			name:   "unknown language",
			mutate: func(h *testutil.ExcelHeader) { h.Languages[2] = 8 },
			want:   packtype.ErrFormat,
		},
		{
			name: "truncated",
			raw:  func(b []byte) []byte { return b[:len(b)-1] },
			want: packtype.ErrDecode,
		},
		{
			name: "shorter than header",
			raw:  func(b []byte) []byte { return b[:10] },
			want: packtype.ErrDecode,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := sampleHeader()
			if tt.mutate != nil {
				tt.mutate(&h)
			}
			data := h.Bytes()
			if tt.raw != nil {
				data = tt.raw(data)
			}
			_, err := ParseSchema(data)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPageLanguage(t *testing.T) {
	t.Parallel()

	s := &Schema{Languages: []Language{LanguageJapanese, LanguageEnglish}}
	assert.Equal(t, LanguageEnglish, s.PageLanguage(LanguageEnglish))
	assert.Equal(t, LanguageNone, s.PageLanguage(LanguageFrench))

	none := &Schema{Languages: []Language{LanguageNone}}
	assert.Equal(t, LanguageNone, none.PageLanguage(LanguageEnglish))
}

func TestPaths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "exd/item.exh", HeaderPath("exd/item"))
	assert.Equal(t, "exd/item_0_en.exd", PagePath("exd/item", Page{StartRowID: 0}, LanguageEnglish))
	assert.Equal(t, "exd/item_500.exd", PagePath("exd/item", Page{StartRowID: 500}, LanguageNone))
}

func TestLanguageCodes(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"", "ja", "en", "de", "fr", "chs", "cht", "ko"} {
		l, err := LanguageFromCode(code)
		require.NoError(t, err)
		assert.Equal(t, code, l.Code())
	}
	_, err := LanguageFromCode("xx")
	require.ErrorIs(t, err, packtype.ErrFormat)

	assert.Equal(t, "_en", LanguageEnglish.Suffix())
	assert.Equal(t, "_ja", LanguageJapanese.Suffix())
	assert.Equal(t, "_chs", LanguageChineseSimplified.Suffix())
	assert.Equal(t, "_cht", LanguageChineseTraditional.Suffix())
	assert.Equal(t, "_ko", LanguageKorean.Suffix())
	assert.Empty(t, LanguageNone.Suffix())
	assert.Equal(t, "none", LanguageNone.String())
}

func TestParseColumnType(t *testing.T) {
	t.Parallel()

	for _, code := range []uint16{0, 1, 2, 3, 4, 5, 6, 7, 9, 0xA, 0xB, 0x19, 0x20} {
		_, err := ParseColumnType(code)
		require.NoError(t, err, "code 0x%02X", code)
	}
	for _, code := range []uint16{8, 0xC, 0x18, 0x21, 0xFFFF} {
		_, err := ParseColumnType(code)
		require.ErrorIs(t, err, packtype.ErrFormat, "code 0x%02X", code)
	}
	assert.Equal(t, "packedbool5", ColumnPackedBool5.String())
	assert.Equal(t, 8, ColumnInt64.Size())
}
