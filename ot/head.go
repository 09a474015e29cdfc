package ot

import "fmt"

// HeadTable gives global information about the font. Only a small subset
// of fields are made public, as they are needed for consistency checks
// (loca format, units-per-em for scaling). To read any of the other
// fields of table 'head' use:
//
//	head   := otf.Table(T("head"))
//	fields := head.Fields().Get(n)     // get nth 16-bit field
//	fields := head.Fields().All()      // get a slice with all field values
// macStyle bits (head, offset 44): the older, coarser counterpart to
// OS/2.fsSelection. Renderers generally prefer fsSelection when the font
// carries an OS/2 table, falling back to macStyle otherwise.
const (
	MacStyleBold      uint16 = 1 << 0
	MacStyleItalic    uint16 = 1 << 1
	MacStyleUnderline uint16 = 1 << 2
	MacStyleOutline   uint16 = 1 << 3
	MacStyleShadow    uint16 = 1 << 4
	MacStyleCondensed uint16 = 1 << 5
	MacStyleExtended  uint16 = 1 << 6
)

type HeadTable struct {
	tableBase
	Flags            uint16 // see https://docs.microsoft.com/en-us/typography/opentype/spec/head
	UnitsPerEm       uint16 // values 16 … 16384 are valid
	MacStyle         uint16 // bold/italic/underline/... bitfield, offset 44
	IndexToLocFormat uint16 // needed to interpret the loca table: 0 short, 1 long
}

func newHeadTable(tag Tag, b binarySegm, offset, size uint32) *HeadTable {
	t := &HeadTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsHead converts a generic TableSelf to a *HeadTable, or nil if the
// underlying table is not a head table.
func (tself TableSelf) AsHead() *HeadTable {
	t, _ := safeSelf(tself).(*HeadTable)
	return t
}

func parseHead(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 54 {
		ec.addError(tag, "Size", fmt.Sprintf("head table too small: %d bytes (need 54)", size), SeverityCritical, offset)
		return nil, errFontFormat("size of head table")
	}
	t := newHeadTable(tag, b, offset, size)
	t.Flags, _ = b.u16(16)
	t.UnitsPerEm, _ = b.u16(18)
	t.MacStyle, _ = b.u16(44)
	// IndexToLocFormat is needed to interpret the loca table:
	// 0 for short offsets, 1 for long.
	t.IndexToLocFormat, _ = b.u16(50)
	return t, nil
}
