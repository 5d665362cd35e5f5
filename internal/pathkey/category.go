package pathkey

import (
	"fmt"
	"strings"

	"github.com/meigma/sqpack/internal/packtype"
)

// Category is one of the fixed asset classes an archive is partitioned by.
// The numeric value is the code used in archive file names.
type Category uint8

const (
	CategoryCommon     Category = 0x00
	CategoryBgCommon   Category = 0x01
	CategoryBg         Category = 0x02
	CategoryCutscene   Category = 0x03
	CategoryCharacter  Category = 0x04
	CategoryShader     Category = 0x05
	CategoryUI         Category = 0x06
	CategorySound      Category = 0x07
	CategoryVfx        Category = 0x08
	CategoryUIScript   Category = 0x09
	CategoryExcel      Category = 0x0a
	CategoryGameScript Category = 0x0b
	CategoryMusic      Category = 0x0c
	CategorySqPackTest Category = 0x12
	CategoryDebug      Category = 0x13
)

var categoryNames = map[Category]string{
	CategoryCommon:     "common",
	CategoryBgCommon:   "bgcommon",
	CategoryBg:         "bg",
	CategoryCutscene:   "cut",
	CategoryCharacter:  "chara",
	CategoryShader:     "shader",
	CategoryUI:         "ui",
	CategorySound:      "sound",
	CategoryVfx:        "vfx",
	CategoryUIScript:   "ui_script",
	CategoryExcel:      "exd",
	CategoryGameScript: "game_script",
	CategoryMusic:      "music",
	CategorySqPackTest: "sqpack_test",
	CategoryDebug:      "debug",
}

var categoriesByName = func() map[string]Category {
	m := make(map[string]Category, len(categoryNames))
	for c, name := range categoryNames {
		m[name] = c
	}
	return m
}()

// ParseCategory maps the first segment of a virtual path to its Category.
// Matching ignores case.
func ParseCategory(name string) (Category, error) {
	c, ok := categoriesByName[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w: unknown category %q", packtype.ErrFormat, name)
	}
	return c, nil
}

// String returns the path segment naming the category.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}
