package ot

// MVarTable carries variation deltas for font-wide metrics (e.g.
// hhea.Ascender, OS/2.WinDescent, underlineThickness) that would
// otherwise have no per-glyph home for their deltas ('MVAR'). Each
// value-tag record points directly at an (outer, inner) delta-set
// coordinate in a shared ItemVariationStore — there is no
// DeltaSetIndexMap indirection as in HVAR/VVAR.
type MVarTable struct {
	tableBase
	store   itemVariationStore
	records map[Tag]mvarValueRecord
}

type mvarValueRecord struct {
	outerIndex, innerIndex int
}

func newMVarTable(tag Tag, b binarySegm, offset, size uint32) *MVarTable {
	t := &MVarTable{records: map[Tag]mvarValueRecord{}}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsMVar converts a generic TableSelf to a *MVarTable, or nil if the
// underlying table is not an MVAR table.
func (tself TableSelf) AsMVar() *MVarTable {
	t, _ := safeSelf(tself).(*MVarTable)
	return t
}

// Common MVAR value tags (OpenType MVAR §"Value tag table").
var (
	MVarTagUnderlineSize      = T("unds")
	MVarTagUnderlineOffset    = T("unso")
	MVarTagStrikeoutSize      = T("strs")
	MVarTagStrikeoutOffset    = T("stro")
	MVarTagHHeaAscender       = T("hasc")
	MVarTagHHeaDescender      = T("hdsc")
	MVarTagHHeaLineGap        = T("hlgp")
	MVarTagVHeaAscender       = T("vasc")
	MVarTagVHeaDescender      = T("vdsc")
	MVarTagVHeaLineGap        = T("vlgp")
	MVarTagXHeight            = T("xhgt")
	MVarTagSubscriptXSize     = T("sbxs")
	MVarTagSubscriptYSize     = T("sbys")
	MVarTagSubscriptXOffset   = T("sbxo")
	MVarTagSubscriptYOffset   = T("sbyo")
	MVarTagSuperscriptXSize   = T("spxs")
	MVarTagSuperscriptYSize   = T("spys")
	MVarTagSuperscriptXOffset = T("spxo")
	MVarTagSuperscriptYOffset = T("spyo")
)

func parseMVar(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 12 {
		ec.addError(tag, "Size", "MVAR table too small", SeverityCritical, offset)
		return nil, errFontFormat("MVAR table incomplete")
	}
	t := newMVarTable(tag, b, offset, size)
	recordSize := int(b.U16(6))
	valueRecordCount := int(b.U16(8))
	storeOffset := int(b.U16(10)) // itemVariationStoreOffset is Offset16, not Offset32
	if storeOffset != 0 {
		if storeOffset >= len(b) {
			return nil, errFontFormat("MVAR: item variation store out of bounds")
		}
		store, err := parseItemVariationStore(b[storeOffset:])
		if err != nil {
			return nil, err
		}
		t.store = store
	}
	if recordSize < 8 {
		return t, nil
	}
	pos := 12
	for i := 0; i < valueRecordCount; i++ {
		if pos+recordSize > len(b) {
			break
		}
		rec := b[pos:]
		valTag := Tag(rec.U32(0))
		t.records[valTag] = mvarValueRecord{
			outerIndex: int(rec.U16(4)),
			innerIndex: int(rec.U16(6)),
		}
		pos += recordSize
	}
	return t, nil
}

// Delta returns the variation delta for a font-wide metric identified by
// its 4-byte value tag (e.g. T("hasc") for hhea.Ascender), at the given
// normalized design coordinates. Returns 0 if the tag has no record.
func (t *MVarTable) Delta(valueTag Tag, coords []float64) float64 {
	if t == nil {
		return 0
	}
	rec, ok := t.records[valueTag]
	if !ok {
		return 0
	}
	return t.store.deltaAt(rec.outerIndex, rec.innerIndex, coords)
}
