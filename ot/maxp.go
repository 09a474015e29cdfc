package ot

// MaxPTable establishes the memory requirements for this font. The 'maxp'
// table contains a count for the number of glyphs in the font. Whenever
// this value changes, every table that depends on it must also be
// updated (hmtx/vmtx array length, loca entry count, ...).
type MaxPTable struct {
	tableBase
	NumGlyphs int
}

func newMaxPTable(tag Tag, b binarySegm, offset, size uint32) *MaxPTable {
	t := &MaxPTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsMaxP converts a generic TableSelf to a *MaxPTable, or nil if the
// underlying table is not a maxp table.
func (tself TableSelf) AsMaxP() *MaxPTable {
	t, _ := safeSelf(tself).(*MaxPTable)
	return t
}

// Fonts with CFF/CFF2 outlines use version 0.5 of this table, specifying
// only numGlyphs; fonts with TrueType outlines use version 1.0, where the
// remaining (unparsed here) fields describe glyph-composition limits.
func parseMaxP(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 6 {
		ec.addError(tag, "Size", "maxp table too small", SeverityCritical, offset)
		return nil, errFontFormat("maxp table incomplete")
	}
	t := newMaxPTable(tag, b, offset, size)
	n, _ := b.u16(4)
	t.NumGlyphs = int(n)
	return t, nil
}
