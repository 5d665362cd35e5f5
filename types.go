package sqpack

import (
	"github.com/meigma/sqpack/internal/excel"
	"github.com/meigma/sqpack/internal/packtype"
	"github.com/meigma/sqpack/internal/pathkey"
)

// Entry is the location of one archived file: the data file id and the
// byte offset of its container header.
type Entry = packtype.Entry

// Platform identifies the platform token in archive file names.
type Platform = packtype.Platform

// Re-export platform constants.
const (
	PlatformWin32 = packtype.PlatformWin32
	PlatformPS3   = packtype.PlatformPS3
	PlatformPS4   = packtype.PlatformPS4
)

// ParsePlatform maps a platform token ("win32", "ps3", "ps4").
func ParsePlatform(name string) (Platform, error) {
	return packtype.PlatformFromName(name)
}

// Key identifies the (category, repository) pack holding a path.
type Key = pathkey.Key

// Category is the asset class named by a path's first segment.
type Category = pathkey.Category

// Repository is the expansion repository a path belongs to.
type Repository = pathkey.Repository

// ParseKey classifies a virtual path into its pack key.
func ParseKey(path string) (Key, error) {
	return pathkey.Parse(path)
}

// Hashes are the lookup hashes derived from a virtual path.
type Hashes = pathkey.Hashes

// HashPath derives the lookup hashes of path. It reports false when path
// has no directory part.
func HashPath(path string) (Hashes, bool) {
	return pathkey.Hash(path)
}

// Schema is a decoded table header.
type Schema = excel.Schema

// Column describes one fixed-width cell of a table row.
type Column = excel.Column

// Page is a range of row ids stored in one data page.
type Page = excel.Page

// ColumnType is a cell's stored type.
type ColumnType = excel.ColumnType

// Variant is a table's row layout.
type Variant = excel.Variant

// Language selects a per-language data page.
type Language = excel.Language

// Re-export language constants.
const (
	LanguageNone               = excel.LanguageNone
	LanguageJapanese           = excel.LanguageJapanese
	LanguageEnglish            = excel.LanguageEnglish
	LanguageGerman             = excel.LanguageGerman
	LanguageFrench             = excel.LanguageFrench
	LanguageChineseSimplified  = excel.LanguageChineseSimplified
	LanguageChineseTraditional = excel.LanguageChineseTraditional
	LanguageKorean             = excel.LanguageKorean
)

// ParseLanguage maps a short language code ("en", "ja", ...). The empty
// string selects LanguageNone.
func ParseLanguage(code string) (Language, error) {
	return excel.LanguageFromCode(code)
}

// Row is one decoded table row.
type Row = excel.Row

// Value is one decoded cell.
type Value = excel.Value

// Kind is the dynamic type of a Value.
type Kind = excel.Kind

// Re-export value kinds.
const (
	KindInt    = excel.KindInt
	KindUint   = excel.KindUint
	KindFloat  = excel.KindFloat
	KindString = excel.KindString
)
