package ot

// VOrgTable gives the vertical origin Y coordinate used for vertical text
// layout, overriding the default (derived from hmtx/vhea) for individual
// glyphs ('VORG', used by CFF-flavored CJK fonts). Present per
// SPEC_FULL.md's vertical-layout supplement; optional even in fonts with
// vertical metrics.
type VOrgTable struct {
	tableBase
	DefaultVertOriginY int16
	overrides          map[GlyphIndex]int16
}

func newVOrgTable(tag Tag, b binarySegm, offset, size uint32) *VOrgTable {
	t := &VOrgTable{overrides: map[GlyphIndex]int16{}}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsVOrg converts a generic TableSelf to a *VOrgTable, or nil if the
// underlying table is not a VORG table.
func (tself TableSelf) AsVOrg() *VOrgTable {
	t, _ := safeSelf(tself).(*VOrgTable)
	return t
}

// VertOriginY returns the vertical origin Y coordinate for gid, falling
// back to DefaultVertOriginY if gid has no explicit override.
func (t *VOrgTable) VertOriginY(gid GlyphIndex) int16 {
	if t == nil {
		return 0
	}
	if y, ok := t.overrides[gid]; ok {
		return y
	}
	return t.DefaultVertOriginY
}

func parseVOrg(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 8 {
		ec.addError(tag, "Size", "VORG table too small", SeverityCritical, offset)
		return nil, errFontFormat("VORG table incomplete")
	}
	t := newVOrgTable(tag, b, offset, size)
	t.DefaultVertOriginY = int16(b.U16(4))
	numRecs := int(b.U16(6))
	need := 8 + numRecs*4
	if need > len(b) {
		return nil, errFontFormat("VORG: vertical origin records out of bounds")
	}
	for i := 0; i < numRecs; i++ {
		rec := b[8+i*4:]
		gid := GlyphIndex(rec.U16(0))
		y := int16(rec.U16(2))
		t.overrides[gid] = y
	}
	return t, nil
}
