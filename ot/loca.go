package ot

// LocaTable stores the offsets to the locations of the glyphs in the
// font, relative to the beginning of table 'glyf'. By definition, index
// zero points to the .notdef glyph. loca must be interpreted jointly with
// head.IndexToLocFormat (short vs. long offsets) and maxp.NumGlyphs
// (entry count); wireOptionalTables resolves both before a LocaTable is
// handed to a caller.
type LocaTable struct {
	tableBase
	inx2loc func(t *LocaTable, gid GlyphIndex) uint32
	locCnt  int
}

// IndexToLocation returns the byte offset into 'glyf' for gid, or 0 (the
// .notdef location) if gid is out of range.
func (t *LocaTable) IndexToLocation(gid GlyphIndex) uint32 {
	return t.inx2loc(t, gid)
}

// GlyphExtent returns the [start, end) byte range of gid's outline data
// within 'glyf'. A zero-length range means the glyph has no outline (e.g.
// the space glyph).
func (t *LocaTable) GlyphExtent(gid GlyphIndex) (uint32, uint32) {
	start := t.inx2loc(t, gid)
	end := start
	if int(gid)+1 < t.locCnt {
		end = t.inx2loc(t, gid+1)
	}
	return start, end
}

func newLocaTable(tag Tag, b binarySegm, offset, size uint32) *LocaTable {
	t := &LocaTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.inx2loc = shortLocaVersion // may be switched to long by wireOptionalTables
	t.locCnt = 0                 // set by wireOptionalTables once maxp is known
	t.self = t
	return t
}

// AsLoca converts a generic TableSelf to a *LocaTable, or nil if the
// underlying table is not a loca table.
func (tself TableSelf) AsLoca() *LocaTable {
	t, _ := safeSelf(tself).(*LocaTable)
	return t
}

func shortLocaVersion(t *LocaTable, gid GlyphIndex) uint32 {
	if gid >= GlyphIndex(t.locCnt) {
		return 0
	}
	loc, err := t.data.u16(int(gid) * 2)
	if err != nil {
		return 0
	}
	return uint32(loc) * 2
}

func longLocaVersion(t *LocaTable, gid GlyphIndex) uint32 {
	if gid >= GlyphIndex(t.locCnt) {
		return 0
	}
	loc, err := t.data.u32(int(gid) * 4)
	if err != nil {
		return 0
	}
	return loc
}

func parseLoca(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	return newLocaTable(tag, b, offset, size), nil
}
