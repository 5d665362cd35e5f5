package main

import (
	"bytes"
	"encoding/binary"
	"io/fs"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/sqpack"
	"github.com/meigma/sqpack/internal/excel"
	"github.com/meigma/sqpack/internal/testutil"
)

func noEnv(string) (string, bool) { return "", false }

func writeArchive(t *testing.T) string {
	t.Helper()

	fixed := make([]byte, 8)
	binary.BigEndian.PutUint32(fixed[0:], 42)
	header := testutil.ExcelHeader{
		DataOffset: 8,
		Variant:    uint8(excel.VariantDefault),
		RowCount:   1,
		Columns: []testutil.ExcelColumn{
			{Type: uint16(excel.ColumnUint32), Offset: 0},
			{Type: uint16(excel.ColumnString), Offset: 4},
		},
		Pages:     []testutil.ExcelPage{{StartRowID: 0, RowCount: 1}},
		Languages: []uint16{uint16(sqpack.LanguageEnglish)},
	}
	page := testutil.ExcelData{Rows: []testutil.ExcelRow{
		{ID: 3, Fixed: fixed, Strings: []byte("two words\x00")},
	}}

	root := t.TempDir()
	testutil.NewArchive(t).
		Add("exd/root.exl", []byte("EXLT,2\nitem,0\n")).
		Add("exd/item.exh", header.Bytes()).
		Add("exd/item_0_en.exd", page.Bytes()).
		Write(root)
	return root
}

func TestRunCat(t *testing.T) {
	t.Parallel()

	root := writeArchive(t)
	var stdout, stderr bytes.Buffer
	err := run([]string{"--root", root, "cat", "exd/root.exl"}, &stdout, &stderr, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "EXLT,2\nitem,0\n", stdout.String())
}

func TestRunLookup(t *testing.T) {
	t.Parallel()

	root := writeArchive(t)
	var stdout, stderr bytes.Buffer
	err := run([]string{"-r", root, "lookup", "exd/root.exl"}, &stdout, &stderr, noEnv)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "exd/ffxiv (0a0000)")
	assert.Contains(t, stdout.String(), "0a0000.win32.dat0")
	assert.Contains(t, stdout.String(), "(14 bytes)")
}

func TestRunSchema(t *testing.T) {
	t.Parallel()

	root := writeArchive(t)
	var stdout, stderr bytes.Buffer
	err := run([]string{"--root", root, "schema", "exd/item"}, &stdout, &stderr, noEnv)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "languages    en")
	assert.Contains(t, stdout.String(), "start=0 count=1")
	assert.Contains(t, stdout.String(), "columns      2")
	assert.Contains(t, stdout.String(), "uint32       offset=0 size=4")
}

func TestRunRows(t *testing.T) {
	t.Parallel()

	root := writeArchive(t)
	var stdout, stderr bytes.Buffer
	err := run([]string{"--root", root, "rows", "exd/item"}, &stdout, &stderr, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "3 42 \"two words\"\n", stdout.String())
}

func TestRunList(t *testing.T) {
	t.Parallel()

	root := writeArchive(t)
	for _, pack := range []string{"exd", "exd/ffxiv", "EXD/"} {
		var stdout, stderr bytes.Buffer
		err := run([]string{"--root", root, "list", pack}, &stdout, &stderr, noEnv)
		require.NoError(t, err, pack)

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, 3, pack)
		assert.Contains(t, lines[0], "0a0000.win32.dat0@")
	}

	var stdout, stderr bytes.Buffer
	err := run([]string{"--root", root, "list", "music"}, &stdout, &stderr, noEnv)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRunRootFromEnv(t *testing.T) {
	t.Parallel()

	root := writeArchive(t)
	env := func(k string) (string, bool) {
		if k == "SQPACK_ROOT" {
			return root, true
		}
		return "", false
	}
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"cat", "exd/root.exl"}, &stdout, &stderr, env))
	assert.NotEmpty(t, stdout.String())
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	root := writeArchive(t)
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"not found", []string{"--root", root, "cat", "exd/missing.exl"}, sqpack.ErrNotFound},
		{"unknown category", []string{"--root", root, "cat", "nope/x"}, sqpack.ErrFormat},
		{"help", []string{"--help"}, pflag.ErrHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var stdout, stderr bytes.Buffer
			err := run(tt.args, &stdout, &stderr, noEnv)
			require.ErrorIs(t, err, tt.want)
		})
	}

	for _, args := range [][]string{
		{"--root", root},
		{"--root", root, "explode", "x"},
		{"cat", "exd/root.exl"},
		{"--root", root, "--platform", "xbox", "cat", "exd/root.exl"},
	} {
		var stdout, stderr bytes.Buffer
		require.Error(t, run(args, &stdout, &stderr, noEnv), "args %v", args)
	}
}
