package ot

// fsSelection bits (OS/2, offset 62): style flags a renderer should
// prefer over head.macStyle when both are present.
const (
	FsSelectionItalic        uint16 = 1 << 0
	FsSelectionUnderscore    uint16 = 1 << 1
	FsSelectionNegative      uint16 = 1 << 2
	FsSelectionOutlined      uint16 = 1 << 3
	FsSelectionStrikeout     uint16 = 1 << 4
	FsSelectionBold          uint16 = 1 << 5
	FsSelectionRegular       uint16 = 1 << 6
	FsSelectionUseTypoMetrics uint16 = 1 << 7
	FsSelectionWWS           uint16 = 1 << 8
	FsSelectionOblique       uint16 = 1 << 9
)

// OS2Table contains a subset of metrics from table 'OS/2' used for
// layout-fallback and font-level metrics decisions: typographic
// ascent/descent/line-gap (the values most renderers actually prefer over
// hhea's), Windows ascent/descent (clamped, used for clipping rather than
// layout), average character width, style flags (fsSelection), x-height
// (version 2+), and the sub/superscript and strikeout metrics a layout
// engine needs to synthesize those glyph variants when a font lacks them.
type OS2Table struct {
	tableBase
	Version             uint16
	XAvgCharWidth       int16
	WeightClass         uint16
	WidthClass          uint16
	FsType              uint16
	SubscriptXSize      int16
	SubscriptYSize      int16
	SubscriptXOffset    int16
	SubscriptYOffset    int16
	SuperscriptXSize    int16
	SuperscriptYSize    int16
	SuperscriptXOffset  int16
	SuperscriptYOffset  int16
	StrikeoutSize       int16
	StrikeoutPosition   int16
	FsSelection         uint16
	TypoAscender        int16
	TypoDescender       int16
	TypoLineGap         int16
	WinAscent           uint16
	WinDescent          uint16
	SxHeight            int16 // 0 if absent (version < 2)
	HasSxHeight         bool
}

func newOS2Table(tag Tag, b binarySegm, offset, size uint32) *OS2Table {
	t := &OS2Table{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsOS2 converts a generic TableSelf to a *OS2Table, or nil if the
// underlying table is not an OS/2 table.
func (tself TableSelf) AsOS2() *OS2Table {
	t, _ := safeSelf(tself).(*OS2Table)
	return t
}

func parseOS2(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 78 {
		ec.addError(tag, "Size", "OS/2 table too small", SeverityCritical, offset)
		return nil, errFontFormat("OS/2 table incomplete")
	}
	t := newOS2Table(tag, b, offset, size)
	t.Version = b.U16(0)
	t.XAvgCharWidth = int16(b.U16(2))
	t.WeightClass = b.U16(4)
	t.WidthClass = b.U16(6)
	t.FsType = b.U16(8)
	t.SubscriptXSize = int16(b.U16(10))
	t.SubscriptYSize = int16(b.U16(12))
	t.SubscriptXOffset = int16(b.U16(14))
	t.SubscriptYOffset = int16(b.U16(16))
	t.SuperscriptXSize = int16(b.U16(18))
	t.SuperscriptYSize = int16(b.U16(20))
	t.SuperscriptXOffset = int16(b.U16(22))
	t.SuperscriptYOffset = int16(b.U16(24))
	t.StrikeoutSize = int16(b.U16(26))
	t.StrikeoutPosition = int16(b.U16(28))
	t.FsSelection = b.U16(62)
	t.TypoAscender = int16(b.U16(68))
	t.TypoDescender = int16(b.U16(70))
	t.TypoLineGap = int16(b.U16(72))
	t.WinAscent = b.U16(74)
	t.WinDescent = b.U16(76)
	// sxHeight was added in version 2, at a fixed offset past the
	// version-1 ulCodePageRange1/2 fields (offsets 78 and 82).
	if t.Version >= 2 && size >= 88 {
		t.SxHeight = int16(b.U16(86))
		t.HasSxHeight = true
	}
	return t, nil
}
