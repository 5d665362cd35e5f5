package testutil

import "encoding/binary"

// ExcelColumn describes one schema column.
type ExcelColumn struct {
	Type   uint16
	Offset uint16
}

// ExcelPage describes one schema page range.
type ExcelPage struct {
	StartRowID uint32
	RowCount   uint32
}

// ExcelHeader describes a table schema asset.
type ExcelHeader struct {
	DataOffset uint16
	Variant    uint8
	RowCount   uint32
	Columns    []ExcelColumn
	Pages      []ExcelPage
	Languages  []uint16
}

// Bytes encodes the header as an EXHF asset.
func (h ExcelHeader) Bytes() []byte {
	buf := make([]byte, 32)
	copy(buf, "EXHF")
	binary.BigEndian.PutUint16(buf[4:], 3)
	binary.BigEndian.PutUint16(buf[6:], h.DataOffset)
	binary.BigEndian.PutUint16(buf[8:], uint16(len(h.Columns)))    //nolint:gosec // test sizes are small
	binary.BigEndian.PutUint16(buf[10:], uint16(len(h.Pages)))     //nolint:gosec // test sizes are small
	binary.BigEndian.PutUint16(buf[12:], uint16(len(h.Languages))) //nolint:gosec // test sizes are small
	buf[17] = h.Variant
	binary.BigEndian.PutUint32(buf[20:], h.RowCount)

	for _, c := range h.Columns {
		buf = binary.BigEndian.AppendUint16(buf, c.Type)
		buf = binary.BigEndian.AppendUint16(buf, c.Offset)
	}
	for _, p := range h.Pages {
		buf = binary.BigEndian.AppendUint32(buf, p.StartRowID)
		buf = binary.BigEndian.AppendUint32(buf, p.RowCount)
	}
	for _, l := range h.Languages {
		buf = binary.LittleEndian.AppendUint16(buf, l)
	}
	return buf
}

// ExcelRow is one stored row of a data page.
type ExcelRow struct {
	ID uint32

	// Fixed is the fixed-width cell region; its length should equal the
	// schema's data offset.
	Fixed []byte

	// Strings is the string blob following the fixed region. Text cells
	// store offsets relative to its start.
	Strings []byte
}

// ExcelData describes a data page asset.
type ExcelData struct {
	Rows []ExcelRow
}

// Bytes encodes the page as an EXDF asset.
func (d ExcelData) Bytes() []byte {
	const headerSize = 32
	dirSize := 8 * len(d.Rows)

	header := make([]byte, headerSize)
	copy(header, "EXDF")
	binary.BigEndian.PutUint16(header[4:], 2)
	binary.BigEndian.PutUint32(header[8:], uint32(dirSize)) //nolint:gosec // test sizes are small

	dir := make([]byte, 0, dirSize)
	var body []byte
	for _, r := range d.Rows {
		off := headerSize + dirSize + len(body)
		dir = binary.BigEndian.AppendUint32(dir, r.ID)
		dir = binary.BigEndian.AppendUint32(dir, uint32(off)) //nolint:gosec // test sizes are small

		body = binary.BigEndian.AppendUint32(body, uint32(len(r.Fixed)+len(r.Strings))) //nolint:gosec // test sizes are small
		body = binary.BigEndian.AppendUint16(body, 1)
		body = append(body, r.Fixed...)
		body = append(body, r.Strings...)
	}

	buf := append(header, dir...)
	return append(buf, body...)
}
