package excel

import (
	"fmt"

	"github.com/meigma/sqpack/internal/packtype"
)

// ColumnType is the stored data type of a table column.
type ColumnType uint16

const (
	ColumnString  ColumnType = 0x00
	ColumnBool    ColumnType = 0x01
	ColumnInt8    ColumnType = 0x02
	ColumnUint8   ColumnType = 0x03
	ColumnInt16   ColumnType = 0x04
	ColumnUint16  ColumnType = 0x05
	ColumnInt32   ColumnType = 0x06
	ColumnUint32  ColumnType = 0x07
	ColumnFloat32 ColumnType = 0x09
	ColumnInt64   ColumnType = 0x0A
	ColumnUint64  ColumnType = 0x0B

	// ColumnPackedBool0 through ColumnPackedBool7 test bit 0 through 7 of a
	// shared byte.
	ColumnPackedBool0 ColumnType = 0x19
	ColumnPackedBool1 ColumnType = 0x1A
	ColumnPackedBool2 ColumnType = 0x1B
	ColumnPackedBool3 ColumnType = 0x1C
	ColumnPackedBool4 ColumnType = 0x1D
	ColumnPackedBool5 ColumnType = 0x1E
	ColumnPackedBool6 ColumnType = 0x1F
	ColumnPackedBool7 ColumnType = 0x20
)

// ParseColumnType validates a stored column type code.
func ParseColumnType(v uint16) (ColumnType, error) {
	t := ColumnType(v)
	switch {
	case t <= ColumnUint32, t == ColumnFloat32, t == ColumnInt64, t == ColumnUint64:
		return t, nil
	case t.IsPackedBool():
		return t, nil
	default:
		return 0, fmt.Errorf("%w: column type 0x%02X", packtype.ErrFormat, v)
	}
}

// IsPackedBool reports whether t is one of the packed boolean types.
func (t ColumnType) IsPackedBool() bool {
	return t >= ColumnPackedBool0 && t <= ColumnPackedBool7
}

// Bit returns the bit tested by a packed boolean column.
func (t ColumnType) Bit() uint {
	return uint(t - ColumnPackedBool0)
}

// Size returns the width in bytes of the column's fixed-region field.
func (t ColumnType) Size() int {
	switch t {
	case ColumnBool, ColumnInt8, ColumnUint8:
		return 1
	case ColumnInt16, ColumnUint16:
		return 2
	case ColumnString, ColumnInt32, ColumnUint32, ColumnFloat32:
		return 4
	case ColumnInt64, ColumnUint64:
		return 8
	default:
		if t.IsPackedBool() {
			return 1
		}
		return 0
	}
}

// String returns the type name.
func (t ColumnType) String() string {
	switch t {
	case ColumnString:
		return "string"
	case ColumnBool:
		return "bool"
	case ColumnInt8:
		return "int8"
	case ColumnUint8:
		return "uint8"
	case ColumnInt16:
		return "int16"
	case ColumnUint16:
		return "uint16"
	case ColumnInt32:
		return "int32"
	case ColumnUint32:
		return "uint32"
	case ColumnFloat32:
		return "float32"
	case ColumnInt64:
		return "int64"
	case ColumnUint64:
		return "uint64"
	}
	if t.IsPackedBool() {
		return fmt.Sprintf("packedbool%d", t.Bit())
	}
	return fmt.Sprintf("type(0x%02X)", uint16(t))
}

// Variant is the table layout variant.
type Variant uint8

const (
	VariantDefault Variant = 1
	VariantSubRows Variant = 2
)

// ParseVariant validates a stored variant tag.
func ParseVariant(v uint8) (Variant, error) {
	switch Variant(v) {
	case VariantDefault, VariantSubRows:
		return Variant(v), nil
	default:
		return 0, fmt.Errorf("%w: table variant %d", packtype.ErrFormat, v)
	}
}

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantDefault:
		return "default"
	case VariantSubRows:
		return "subrows"
	default:
		return "unknown"
	}
}

// Language selects a per-language data page.
type Language uint16

const (
	LanguageNone Language = iota
	LanguageJapanese
	LanguageEnglish
	LanguageGerman
	LanguageFrench
	LanguageChineseSimplified
	LanguageChineseTraditional
	LanguageKorean
)

var languageCodes = [...]string{
	LanguageNone:               "",
	LanguageJapanese:           "ja",
	LanguageEnglish:            "en",
	LanguageGerman:             "de",
	LanguageFrench:             "fr",
	LanguageChineseSimplified:  "chs",
	LanguageChineseTraditional: "cht",
	LanguageKorean:             "ko",
}

// ParseLanguage validates a stored language code.
func ParseLanguage(v uint16) (Language, error) {
	if int(v) >= len(languageCodes) {
		return 0, fmt.Errorf("%w: language %d", packtype.ErrFormat, v)
	}
	return Language(v), nil
}

// LanguageFromCode maps a short code ("en", "ja", ...) to a Language.
// The empty string selects LanguageNone.
func LanguageFromCode(code string) (Language, error) {
	for i, c := range languageCodes {
		if c == code {
			return Language(i), nil //nolint:gosec // bounded by languageCodes
		}
	}
	return 0, fmt.Errorf("%w: language %q", packtype.ErrFormat, code)
}

// Code returns the short language code, empty for LanguageNone.
func (l Language) Code() string {
	if int(l) < len(languageCodes) {
		return languageCodes[l]
	}
	return ""
}

// Suffix returns the data page file-name suffix, e.g. "_en". LanguageNone
// has no suffix.
func (l Language) Suffix() string {
	if code := l.Code(); code != "" {
		return "_" + code
	}
	return ""
}

// String returns the language code, or "none".
func (l Language) String() string {
	if l == LanguageNone {
		return "none"
	}
	if code := l.Code(); code != "" {
		return code
	}
	return fmt.Sprintf("language(%d)", uint16(l))
}
