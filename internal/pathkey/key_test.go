package pathkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/sqpack/internal/packtype"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want Key
	}{
		{"file directly under category", "exd/item.exh", Key{CategoryExcel, 0}},
		{"explicit base repository", "bg/ffxiv/sea_s1/a.lgb", Key{CategoryBg, 0}},
		{"expansion repository", "bg/ex3/02_mid_m3/a.lgb", Key{CategoryBg, 3}},
		{"unknown repository falls back", "chara/equipment/e0001/a.mdl", Key{CategoryCharacter, 0}},
		{"highest category code", "debug/x/y.bin", Key{CategoryDebug, 0}},
		{"mixed case", "BG/Ex2/a/b.lgb", Key{CategoryBg, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	_, err := Parse("nosuch/item.exh")
	require.ErrorIs(t, err, packtype.ErrFormat)

	_, err = Parse("exd")
	require.ErrorIs(t, err, packtype.ErrFormat)
}

func TestParseRepository(t *testing.T) {
	t.Parallel()

	r, ok := ParseRepository("ffxiv")
	assert.True(t, ok)
	assert.Equal(t, DefaultRepository, r)

	r, ok = ParseRepository("ex9")
	assert.True(t, ok)
	assert.Equal(t, MaxRepository, r)

	r, ok = ParseRepository("EX1")
	assert.True(t, ok)
	assert.Equal(t, Repository(1), r)

	for _, name := range []string{"ex0", "ex10", "exa", ""} {
		_, ok := ParseRepository(name)
		assert.False(t, ok, name)
	}
}

func TestKeyNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0a0000", Key{CategoryExcel, 0}.PackName())
	assert.Equal(t, "020300", Key{CategoryBg, 3}.PackName())
	assert.Equal(t, "130000", Key{CategoryDebug, 0}.PackName())
	assert.Equal(t, "bg/ex3", Key{CategoryBg, 3}.String())
	assert.Equal(t, "ffxiv", DefaultRepository.String())
}

func TestCategoryRoundTrip(t *testing.T) {
	t.Parallel()

	for c, name := range categoryNames {
		got, err := ParseCategory(name)
		require.NoError(t, err)
		assert.Equal(t, c, got)
		assert.Equal(t, name, c.String())
	}
	assert.Len(t, categoryNames, 15)
}
