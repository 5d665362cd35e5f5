package excel

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/meigma/sqpack/internal/packtype"
)

const (
	dataHeaderSize = 32
	rowInfoSize    = 8

	// rowHeaderSize covers the per-row byte size (u32) and sub-row count
	// (u16) that precede the fixed region.
	rowHeaderSize = 6
)

// RowInfo is one row directory entry of a data page.
type RowInfo struct {
	RowID  uint32
	Offset uint32
}

// ReadRowDirectory decodes the header and row directory of a data page.
func ReadRowDirectory(data []byte) ([]RowInfo, error) {
	b := buffer(data)
	head, err := b.slice(0, dataHeaderSize)
	if err != nil {
		return nil, fmt.Errorf("table page: %w", err)
	}
	if !bytes.Equal(head[:4], dataMagic) {
		return nil, fmt.Errorf("table page: %w", packtype.ErrInvalidMagic)
	}

	dirSize, err := b.u32(8)
	if err != nil {
		return nil, err
	}
	count := int(dirSize / rowInfoSize)
	dir, err := b.slice(dataHeaderSize, count*rowInfoSize)
	if err != nil {
		return nil, fmt.Errorf("table page directory: %w", err)
	}

	rows := make([]RowInfo, count)
	for i := range rows {
		rec := dir[i*rowInfoSize:]
		rows[i] = RowInfo{
			RowID:  binary.BigEndian.Uint32(rec[0:4]),
			Offset: binary.BigEndian.Uint32(rec[4:8]),
		}
	}
	return rows, nil
}

// DecodePage decodes every row of a data page against schema, in row
// directory order.
func DecodePage(data []byte, schema *Schema) ([]Row, error) {
	dir, err := ReadRowDirectory(data)
	if err != nil {
		return nil, err
	}

	b := buffer(data)
	rows := make([]Row, 0, len(dir))
	for _, info := range dir {
		row, err := decodeRow(b, info, schema)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", info.RowID, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func decodeRow(b buffer, info RowInfo, schema *Schema) (Row, error) {
	start := uint64(info.Offset) + rowHeaderSize
	end := start + uint64(schema.DataOffset)

	row := Row{ID: info.RowID, Values: make([]Value, len(schema.Columns))}
	for i, col := range schema.Columns {
		v, err := decodeCell(b, start+uint64(col.Offset), end, col.Type)
		if err != nil {
			return Row{}, fmt.Errorf("column %d (%s): %w", i, col.Type, err)
		}
		row.Values[i] = v
	}
	return row, nil
}

func decodeCell(b buffer, off, stringBase uint64, t ColumnType) (Value, error) {
	switch t {
	case ColumnString:
		rel, err := b.u32(off)
		if err != nil {
			return Value{}, err
		}
		raw, err := b.cstring(stringBase + uint64(rel))
		if err != nil {
			return Value{}, err
		}
		if !utf8.Valid(raw) {
			return Value{}, fmt.Errorf("%w: invalid UTF-8 text", packtype.ErrDecode)
		}
		return StringValue(string(raw)), nil

	case ColumnInt8:
		v, err := b.u8(off)
		return IntValue(int64(int8(v))), err //nolint:gosec // sign reinterpretation
	case ColumnInt16:
		v, err := b.u16(off)
		return IntValue(int64(int16(v))), err //nolint:gosec // sign reinterpretation
	case ColumnInt32:
		v, err := b.u32(off)
		return IntValue(int64(int32(v))), err //nolint:gosec // sign reinterpretation
	case ColumnInt64:
		v, err := b.u64(off)
		return IntValue(int64(v)), err //nolint:gosec // sign reinterpretation

	case ColumnBool, ColumnUint8:
		v, err := b.u8(off)
		return UintValue(uint64(v)), err
	case ColumnUint16:
		v, err := b.u16(off)
		return UintValue(uint64(v)), err
	case ColumnUint32:
		v, err := b.u32(off)
		return UintValue(uint64(v)), err
	case ColumnUint64:
		v, err := b.u64(off)
		return UintValue(v), err

	case ColumnFloat32:
		v, err := b.u32(off)
		return FloatValue(math.Float32frombits(v)), err
	}

	if t.IsPackedBool() {
		v, err := b.u8(off)
		return UintValue(uint64(v>>t.Bit()) & 1), err
	}
	return Value{}, fmt.Errorf("%w: column type 0x%02X", packtype.ErrFormat, uint16(t))
}
