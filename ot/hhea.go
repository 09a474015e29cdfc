package ot

import "fmt"

// HHeaTable contains information for horizontal layout.
type HHeaTable struct {
	tableBase
	Ascender            int16
	Descender           int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	NumberOfHMetrics    int
}

func newHHeaTable(tag Tag, b binarySegm, offset, size uint32) *HHeaTable {
	t := &HHeaTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsHHea converts a generic TableSelf to a *HHeaTable, or nil if the
// underlying table is not an hhea table.
func (tself TableSelf) AsHHea() *HHeaTable {
	t, _ := safeSelf(tself).(*HHeaTable)
	return t
}

func parseHHea(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 36 {
		ec.addError(tag, "Size", fmt.Sprintf("hhea table too small: %d bytes (need 36)", size), SeverityCritical, offset)
		return nil, errFontFormat("hhea table incomplete")
	}
	t := newHHeaTable(tag, b, offset, size)
	t.Ascender = int16(b.U16(4))
	t.Descender = int16(b.U16(6))
	t.LineGap = int16(b.U16(8))
	t.AdvanceWidthMax = b.U16(10)
	t.MinLeftSideBearing = int16(b.U16(12))
	t.MinRightSideBearing = int16(b.U16(14))
	t.XMaxExtent = int16(b.U16(16))
	t.CaretSlopeRise = int16(b.U16(18))
	t.CaretSlopeRun = int16(b.U16(20))
	t.CaretOffset = int16(b.U16(22))
	n, _ := b.u16(34)
	t.NumberOfHMetrics = int(n)
	return t, nil
}

// VHeaTable contains information for vertical layout. It mirrors HHeaTable
// field-for-field, substituting the vertical-direction metric names used
// by the OpenType 'vhea' table.
type VHeaTable struct {
	tableBase
	Ascender            int16
	Descender           int16
	LineGap             int16
	AdvanceHeightMax    uint16
	MinTopSideBearing   int16
	MinBottomSideBearing int16
	YMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	NumOfLongVerMetrics int
}

func newVHeaTable(tag Tag, b binarySegm, offset, size uint32) *VHeaTable {
	t := &VHeaTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsVHea converts a generic TableSelf to a *VHeaTable, or nil if the
// underlying table is not a vhea table.
func (tself TableSelf) AsVHea() *VHeaTable {
	t, _ := safeSelf(tself).(*VHeaTable)
	return t
}

func parseVHea(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 36 {
		ec.addError(tag, "Size", fmt.Sprintf("vhea table too small: %d bytes (need 36)", size), SeverityCritical, offset)
		return nil, errFontFormat("vhea table incomplete")
	}
	t := newVHeaTable(tag, b, offset, size)
	t.Ascender = int16(b.U16(4))
	t.Descender = int16(b.U16(6))
	t.LineGap = int16(b.U16(8))
	t.AdvanceHeightMax = b.U16(10)
	t.MinTopSideBearing = int16(b.U16(12))
	t.MinBottomSideBearing = int16(b.U16(14))
	t.YMaxExtent = int16(b.U16(16))
	t.CaretSlopeRise = int16(b.U16(18))
	t.CaretSlopeRun = int16(b.U16(20))
	t.CaretOffset = int16(b.U16(22))
	n, _ := b.u16(34)
	t.NumOfLongVerMetrics = int(n)
	return t, nil
}
