package file

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/sqpack/internal/packtype"
	"github.com/meigma/sqpack/internal/testutil"
)

// place writes container into a data file and returns its source and entry.
func place(container []byte) (*testutil.MockByteSource, packtype.Entry) {
	d := testutil.NewDataFile()
	off := d.Append(container)
	return testutil.NewMockByteSource(d.Bytes()), packtype.Entry{Offset: off}
}

func TestReadAllConcatenatesBlocks(t *testing.T) {
	t.Parallel()

	blocks := []testutil.Block{
		{Plain: []byte("first block, ")},
		{Plain: bytes.Repeat([]byte("second "), 40)},
		{Plain: []byte("and the third.")},
	}
	var want []byte
	for _, b := range blocks {
		want = append(want, b.Plain...)
	}

	tests := []struct {
		name      string
		placement []int
	}{
		{"in order", []int{0, 1, 2}},
		{"non-monotonic offsets", []int{2, 0, 1}},
		{"reversed", []int{2, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src, entry := place(testutil.StandardFile(t, blocks, tt.placement))
			got, err := NewReader().ReadAll(src, "exd/test.bin", entry)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestReadAllEmptyFile(t *testing.T) {
	t.Parallel()

	src, entry := place(testutil.StandardFile(t, nil, nil))
	got, err := NewReader().ReadAll(src, "exd/empty.bin", entry)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadAllHeader(t *testing.T) {
	t.Parallel()

	blocks := testutil.SplitBlocks(bytes.Repeat([]byte{0xAB}, 300), 128)
	src, entry := place(testutil.StandardFile(t, blocks, nil))

	h, err := NewReader().Header(src, "exd/a.bin", entry)
	require.NoError(t, err)
	assert.Equal(t, packtype.FileTypeStandard, h.Type)
	assert.Equal(t, uint32(300), h.FileSize)
	assert.Len(t, h.Blocks, 3)
	assert.Zero(t, h.Size%testutil.FileAlign)
}

func TestReadAllUnsupportedFileType(t *testing.T) {
	t.Parallel()

	for _, tag := range []uint32{testutil.FileTypeEmpty, testutil.FileTypeModel, testutil.FileTypeTexture} {
		src, entry := place(testutil.ContainerFile(t, tag, []testutil.Block{{Plain: []byte("x")}}))
		_, err := NewReader().ReadAll(src, "chara/a.mdl", entry)
		require.ErrorIs(t, err, packtype.ErrUnsupportedFileType)
		assert.NotErrorIs(t, err, packtype.ErrFormat)
	}
}

func TestReadAllUnknownFileType(t *testing.T) {
	t.Parallel()

	src, entry := place(testutil.ContainerFile(t, 9, []testutil.Block{{Plain: []byte("x")}}))
	_, err := NewReader().ReadAll(src, "exd/a.bin", entry)
	require.ErrorIs(t, err, packtype.ErrUnsupportedFileType)
	require.ErrorIs(t, err, packtype.ErrFormat)
}

func TestReadAllBlockTableOverflow(t *testing.T) {
	t.Parallel()

	blocks := testutil.SplitBlocks(bytes.Repeat([]byte("q"), 30), 10)
	container := testutil.StandardFile(t, blocks, nil)
	// Room for the common header and a single block descriptor only.
	binary.LittleEndian.PutUint32(container[0:4], 24+8)
	src, entry := place(container)

	_, err := NewReader().ReadAll(src, "exd/a.bin", entry)
	require.ErrorIs(t, err, packtype.ErrFormat)
	assert.Contains(t, err.Error(), "3 blocks do not fit")
}

func TestReadAllCorruptBlock(t *testing.T) {
	t.Parallel()

	blocks := []testutil.Block{
		{Plain: []byte("fine")},
		{Plain: []byte("broken"), Compressed: []byte{0xFF, 0xFF, 0xFF, 0xFF}},
	}
	src, entry := place(testutil.StandardFile(t, blocks, nil))
	_, err := NewReader().ReadAll(src, "exd/a.bin", entry)
	require.ErrorIs(t, err, packtype.ErrDecompression)
	require.ErrorIs(t, err, packtype.ErrDecode)
}

func TestReadAllTruncatedSource(t *testing.T) {
	t.Parallel()

	blocks := []testutil.Block{{Plain: bytes.Repeat([]byte("z"), 200)}}
	container := testutil.StandardFile(t, blocks, nil)
	src, entry := place(container)
	// Keep the container header and block header plus one payload byte.
	cut := testutil.NewMockByteSource(src.Bytes()[:int(entry.Offset)+testutil.FileAlign+16+1])

	_, err := NewReader().ReadAll(cut, "exd/a.bin", entry)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.NotErrorIs(t, err, packtype.ErrDecode)
}

func TestReadAllOffsetPastEnd(t *testing.T) {
	t.Parallel()

	src := testutil.NewMockByteSource(make([]byte, 64))
	_, err := NewReader().ReadAll(src, "exd/a.bin", packtype.Entry{Offset: 4096})
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadAllMaxFileSize(t *testing.T) {
	t.Parallel()

	blocks := []testutil.Block{{Plain: bytes.Repeat([]byte("a"), 100)}}
	src, entry := place(testutil.StandardFile(t, blocks, nil))

	_, err := NewReader(WithMaxFileSize(99)).ReadAll(src, "exd/a.bin", entry)
	require.ErrorIs(t, err, packtype.ErrSizeOverflow)

	got, err := NewReader(WithMaxFileSize(0)).ReadAll(src, "exd/a.bin", entry)
	require.NoError(t, err)
	assert.Len(t, got, 100)
}

func TestInflatePoolReuse(t *testing.T) {
	t.Parallel()

	pool := NewInflatePool()
	for _, s := range []string{"one", "two", "three"} {
		dec, release := pool.Get(bytes.NewReader(testutil.Deflate(t, []byte(s))))
		got, err := io.ReadAll(dec)
		release()
		require.NoError(t, err)
		assert.Equal(t, s, string(got))
	}

	var nilPool *InflatePool
	dec, release := nilPool.Get(bytes.NewReader(testutil.Deflate(t, []byte("solo"))))
	defer release()
	got, err := io.ReadAll(dec)
	require.NoError(t, err)
	assert.Equal(t, "solo", string(got))
}
