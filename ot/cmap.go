package ot

import "fmt"

// CMapTable resolves Unicode (or other) character codes to glyph indices.
// A font may carry many (platform, encoding) subtables; parseCMap selects
// the single "best" one by platformEncodingWidth and keeps it as the sole
// resolver for GlyphIndex, mirroring the behaviour recommended by the
// OpenType spec: "apart from a format 14 subtable, all other subtables
// are exclusive — applications should select and use one and ignore the
// others." A format-14 subtable (Unicode variation sequences), if
// present, is kept independently and consulted only via
// GlyphVariationIndex.
type CMapTable struct {
	tableBase
	numGlyphs     int
	GlyphIndexMap cmapSubtable
	uvs           *format14Subtable
}

// cmapSubtable abstracts over the decoded representation of a cmap
// subtable format; Lookup never allocates.
type cmapSubtable interface {
	Lookup(r rune) (GlyphIndex, bool)
}

func newCMapTable(tag Tag, b binarySegm, offset, size uint32) *CMapTable {
	t := &CMapTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsCMap converts a generic TableSelf to a *CMapTable, or nil if the
// underlying table is not a cmap table.
func (tself TableSelf) AsCMap() *CMapTable {
	t, _ := safeSelf(tself).(*CMapTable)
	return t
}

// GlyphIndex resolves a Unicode code point to a glyph index via the
// subtable chosen during Parse. Returns (0, false) if the font has no
// usable cmap or the rune is unmapped — callers should fall back to
// glyph 0 (.notdef) themselves, per convention, not assume GlyphIndex does.
func (t *CMapTable) GlyphIndex(r rune) (GlyphIndex, bool) {
	if t == nil || t.GlyphIndexMap == nil {
		return 0, false
	}
	g, ok := t.GlyphIndexMap.Lookup(r)
	if !ok || (t.numGlyphs > 0 && int(g) >= t.numGlyphs) {
		return 0, false
	}
	return g, ok
}

// GlyphVariationIndex resolves a (base rune, variation selector) pair via
// the format-14 subtable, if present. It first checks the non-default
// UVS table for an explicit glyph mapping, then the default UVS table
// (which defers to the regular cmap subtable for base.
func (t *CMapTable) GlyphVariationIndex(base, selector rune) (GlyphIndex, bool) {
	if t == nil || t.uvs == nil {
		return 0, false
	}
	if g, ok := t.uvs.nonDefaultLookup(base, selector); ok {
		return g, true
	}
	if t.uvs.isDefault(base, selector) {
		return t.GlyphIndex(base)
	}
	return 0, false
}

// uint24 reads a 3-byte big-endian unsigned integer, the width used for
// Unicode scalar values throughout the format-14 variation-selector
// subtable.
func uint24(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

type encodingRecord struct {
	platformID uint16
	encodingID uint16
	subtable   binarySegm
	format     uint16
	width      int
}

// platformEncodingWidth ranks the (platform, encoding) pairs parseCMap
// accepts; other pairs rank 0 and are skipped. The subtable format is
// checked separately by supportedCmapFormat, which does not tie formats
// to these pairs (except format 2, platform 1 only). The usual pairings
// are (see https://docs.microsoft.com/en-us/typography/opentype/spec/cmap):
//
//	0 (Unicode)  3    4   Unicode BMP
//	0 (Unicode)  4    12  Unicode full
//	0 (Unicode)  6    13  Unicode full, many-to-one
//	3 (Windows)  1    4   Unicode BMP
//	3 (Windows)  10   12  Unicode full
//	1 (Mac)      0    0   byte encoding
func platformEncodingWidth(pid, eid uint16) int {
	switch {
	case pid == 3 && eid == 10:
		return 4
	case pid == 0 && (eid == 4 || eid == 6):
		return 4
	case pid == 3 && eid == 1:
		return 3
	case pid == 0 && eid <= 3:
		return 3
	case pid == 1 && eid == 0:
		return 1
	}
	return 0
}

func supportedCmapFormat(format, pid, eid uint16) bool {
	switch format {
	case 0, 4, 6, 12, 13:
		return true
	case 2:
		return pid == 1
	case 10:
		return true
	}
	return false
}

func parseCMap(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if len(b) < 4 {
		ec.addError(tag, "Header", "cmap table too small", SeverityCritical, offset)
		return nil, errFontFormat("cmap table incomplete")
	}
	n, _ := b.u16(2)
	tracer().Debugf("font cmap has %d sub-tables in %d|%d bytes", n, len(b), size)
	t := newCMapTable(tag, b, offset, size)
	const headerSize, entrySize = 4, 8

	entriesSize, err := checkedMulUint32(entrySize, uint32(n))
	if err != nil {
		ec.addError(tag, "Header", fmt.Sprintf("entries size overflow: %v", err), SeverityCritical, offset)
		return nil, errFontFormat("cmap entries size overflow")
	}
	requiredSize, err := checkedAddUint32(headerSize, entriesSize)
	if err != nil || size < requiredSize {
		ec.addError(tag, "Header", "cmap table directory exceeds table size", SeverityCritical, offset)
		return nil, errFontFormat("size of cmap table")
	}

	var best encodingRecord
	var uvsOffset uint32
	haveUVS := false
	for i := 0; i < int(n); i++ {
		rec, err := b.view(headerSize+entrySize*i, entrySize)
		if err != nil {
			continue
		}
		pid, eid := u16(rec), u16(rec[2:])
		subOffset := u32(rec[4:])
		if int(subOffset) >= len(b) {
			ec.addWarning(tag, fmt.Sprintf("sub-table %d offset out of bounds", i), offset)
			continue
		}
		sub := b[subOffset:]
		format := sub.U16(0)
		if format == 14 {
			haveUVS, uvsOffset = true, subOffset
			continue
		}
		width := platformEncodingWidth(pid, eid)
		if width == 0 || width <= best.width || !supportedCmapFormat(format, pid, eid) {
			continue
		}
		best = encodingRecord{platformID: pid, encodingID: eid, subtable: sub, format: format, width: width}
	}
	if best.width == 0 {
		ec.addError(tag, "Format", "no supported cmap format found", SeverityMajor, offset)
		return nil, errFontFormat("no supported cmap format found")
	}
	sub, err := parseCmapSubtable(best.format, best.subtable)
	if err != nil {
		ec.addError(tag, "Format", fmt.Sprintf("cannot parse cmap subtable format %d: %v", best.format, err), SeverityMajor, offset)
		return nil, err
	}
	t.GlyphIndexMap = sub
	if haveUVS && int(uvsOffset) < len(b) {
		if uvs, err := parseFormat14(b[uvsOffset:]); err == nil {
			t.uvs = uvs
		}
	}
	return t, nil
}

func parseCmapSubtable(format uint16, b binarySegm) (cmapSubtable, error) {
	switch format {
	case 0:
		return parseCmapFormat0(b)
	case 2:
		return parseCmapFormat2(b)
	case 4:
		return parseCmapFormat4(b)
	case 6:
		return parseCmapFormat6(b)
	case 10:
		return parseCmapFormat10(b)
	case 12, 13:
		return parseCmapFormat12or13(b, format == 13)
	}
	return nil, fmt.Errorf("unsupported cmap format %d", format)
}

// --- format 0: byte encoding table -----------------------------------------

type cmapFormat0 struct {
	glyphIDs [256]byte
}

func (f *cmapFormat0) Lookup(r rune) (GlyphIndex, bool) {
	if r < 0 || r > 255 {
		return 0, false
	}
	return GlyphIndex(f.glyphIDs[r]), true
}

func parseCmapFormat0(b binarySegm) (cmapSubtable, error) {
	if len(b) < 262 {
		return nil, fmt.Errorf("cmap format 0: table too small")
	}
	f := &cmapFormat0{}
	copy(f.glyphIDs[:], b[6:262])
	return f, nil
}

// --- format 4: segment mapping to delta values (Unicode BMP) ---------------

type cmapFormat4 struct {
	segCount       int
	endCode        binarySegm
	startCode      binarySegm
	idDelta        binarySegm
	idRangeOffset  binarySegm
	glyphIDArray   binarySegm
	rangeOffsetAt  int // byte offset of idRangeOffset array within b, for pointer arithmetic
}

func (f *cmapFormat4) Lookup(r rune) (GlyphIndex, bool) {
	if r < 0 || r > 0xFFFF {
		return 0, false
	}
	c := uint16(r)
	// segments are sorted by endCode: binary search for the first segment
	// whose endCode >= c.
	lo, hi := 0, f.segCount
	for lo < hi {
		mid := (lo + hi) / 2
		end := f.endCode.U16(mid * 2)
		if c > end {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo >= f.segCount {
		return 0, false
	}
	i := lo
	start := f.startCode.U16(i * 2)
	end := f.endCode.U16(i * 2)
	if c < start || c > end {
		return 0, false
	}
	delta := int16(f.idDelta.U16(i * 2))
	rangeOffset := f.idRangeOffset.U16(i * 2)
	if rangeOffset == 0 {
		return GlyphIndex(uint16(int32(c) + int32(delta))), true
	}
	// glyphIdArray[idRangeOffset[i]/2 + (c - startCode[i]) - (segCount - i)]
	glyphOffset := int(rangeOffset) + 2*(int(c)-int(start)) - 2*(f.segCount-i)
	if glyphOffset < 0 || glyphOffset+2 > len(f.glyphIDArray) {
		return 0, false
	}
	g := f.glyphIDArray.U16(glyphOffset)
	if g == 0 {
		return 0, false
	}
	return GlyphIndex(uint16(int32(g) + int32(delta))), true
}

func parseCmapFormat4(b binarySegm) (cmapSubtable, error) {
	if len(b) < 14 {
		return nil, fmt.Errorf("cmap format 4: header too small")
	}
	segCountX2 := int(b.U16(6))
	segCount := segCountX2 / 2
	need := 14 + segCountX2*4 + 2
	if need > len(b) {
		return nil, fmt.Errorf("cmap format 4: table too small for %d segments", segCount)
	}
	endCodeOff := 14
	startCodeOff := endCodeOff + segCountX2 + 2 // +2 skips reservedPad
	idDeltaOff := startCodeOff + segCountX2
	idRangeOff := idDeltaOff + segCountX2
	glyphArrayOff := idRangeOff + segCountX2
	f := &cmapFormat4{
		segCount:      segCount,
		endCode:       b[endCodeOff:startCodeOff],
		startCode:     b[startCodeOff:idDeltaOff],
		idDelta:       b[idDeltaOff:idRangeOff],
		idRangeOffset: b[idRangeOff:glyphArrayOff],
		glyphIDArray:  b[glyphArrayOff:],
		rangeOffsetAt: idRangeOff,
	}
	return f, nil
}

// --- format 6: trimmed table mapping ----------------------------------------

type cmapFormat6 struct {
	firstCode uint16
	entries   binarySegm
	count     int
}

func (f *cmapFormat6) Lookup(r rune) (GlyphIndex, bool) {
	if r < rune(f.firstCode) || r >= rune(f.firstCode)+rune(f.count) {
		return 0, false
	}
	i := int(r) - int(f.firstCode)
	return GlyphIndex(f.entries.U16(i * 2)), true
}

func parseCmapFormat6(b binarySegm) (cmapSubtable, error) {
	if len(b) < 10 {
		return nil, fmt.Errorf("cmap format 6: header too small")
	}
	first := b.U16(6)
	count := int(b.U16(8))
	if 10+count*2 > len(b) {
		return nil, fmt.Errorf("cmap format 6: table too small")
	}
	return &cmapFormat6{firstCode: first, entries: b[10:], count: count}, nil
}

// --- format 10: trimmed array (32-bit) --------------------------------------

type cmapFormat10 struct {
	firstCode uint32
	entries   binarySegm
	count     int
}

func (f *cmapFormat10) Lookup(r rune) (GlyphIndex, bool) {
	if uint32(r) < f.firstCode || uint32(r) >= f.firstCode+uint32(f.count) {
		return 0, false
	}
	i := int(uint32(r) - f.firstCode)
	return GlyphIndex(f.entries.U16(i * 2)), true
}

func parseCmapFormat10(b binarySegm) (cmapSubtable, error) {
	if len(b) < 20 {
		return nil, fmt.Errorf("cmap format 10: header too small")
	}
	first := u32(b[12:])
	count := int(u32(b[16:]))
	if 20+count*2 > len(b) {
		return nil, fmt.Errorf("cmap format 10: table too small")
	}
	return &cmapFormat10{firstCode: first, entries: b[20:], count: count}, nil
}

// --- formats 12/13: segmented coverage --------------------------------------

type cmapFormat12or13 struct {
	groups     binarySegm
	groupCount int
	manyToOne  bool // format 13: glyphID is constant across the whole group
}

func (f *cmapFormat12or13) Lookup(r rune) (GlyphIndex, bool) {
	c := uint32(r)
	lo, hi := 0, f.groupCount
	for lo < hi {
		mid := (lo + hi) / 2
		g := f.groups[mid*12:]
		end := u32(g[4:])
		if c > end {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo >= f.groupCount {
		return 0, false
	}
	g := f.groups[lo*12:]
	start, end, startGlyph := u32(g), u32(g[4:]), u32(g[8:])
	if c < start || c > end {
		return 0, false
	}
	if f.manyToOne {
		return GlyphIndex(startGlyph), true
	}
	return GlyphIndex(startGlyph + (c - start)), true
}

func parseCmapFormat12or13(b binarySegm, manyToOne bool) (cmapSubtable, error) {
	if len(b) < 16 {
		return nil, fmt.Errorf("cmap format 12/13: header too small")
	}
	groupCount := int(u32(b[12:]))
	need, err := checkedAddInt(16, groupCount*12)
	if err != nil || need > len(b) {
		return nil, fmt.Errorf("cmap format 12/13: table too small for %d groups", groupCount)
	}
	return &cmapFormat12or13{groups: b[16:], groupCount: groupCount, manyToOne: manyToOne}, nil
}

// --- format 2: high-byte mapping through table (legacy CJK) -----------------

// cmapFormat2 supports mixed single/double-byte encodings used by some
// legacy CJK fonts. Only platform-1 (Macintosh) fonts are expected to
// carry this format.
type cmapFormat2 struct {
	subHeaderKeys [256]uint16 // index (in bytes) into tail, per high byte
	tail          binarySegm  // subHeaders array immediately followed by glyphIndexArray
}

func (f *cmapFormat2) Lookup(r rune) (GlyphIndex, bool) {
	if r < 0 || r > 0xFFFF {
		return 0, false
	}
	hiByte, loByte := byte(r>>8), byte(r)
	k := int(f.subHeaderKeys[hiByte])
	var c uint16
	if k == 0 {
		// subHeader 0 is the single-byte-code header: high byte must be 0.
		if r > 0xFF {
			return 0, false
		}
		c = uint16(loByte)
	} else {
		c = uint16(loByte)
	}
	if k+8 > len(f.tail) {
		return 0, false
	}
	sh := f.tail[k:]
	firstCode := u16(sh)
	entryCount := u16(sh[2:])
	idDelta := int16(u16(sh[4:]))
	idRangeOffset := int(u16(sh[6:]))
	if c < firstCode || c >= firstCode+entryCount {
		return 0, false
	}
	// idRangeOffset is a byte offset measured from its own field location.
	pos := k + 6 + idRangeOffset + 2*int(c-firstCode)
	if pos < 0 || pos+2 > len(f.tail) {
		return 0, false
	}
	g := f.tail.U16(pos)
	if g == 0 {
		return 0, false
	}
	return GlyphIndex(uint16(int32(g) + int32(idDelta))), true
}

func parseCmapFormat2(b binarySegm) (cmapSubtable, error) {
	if len(b) < 6+512 {
		return nil, fmt.Errorf("cmap format 2: header too small")
	}
	f := &cmapFormat2{}
	for i := 0; i < 256; i++ {
		f.subHeaderKeys[i] = b.U16(6 + i*2)
	}
	f.tail = b[6+512:]
	return f, nil
}

// --- format 14: Unicode variation sequences ---------------------------------

type format14Subtable struct {
	data          binarySegm
	varSelectors  binarySegm
	selectorCount int
}

func parseFormat14(b binarySegm) (*format14Subtable, error) {
	if len(b) < 10 {
		return nil, fmt.Errorf("cmap format 14: header too small")
	}
	numVarSelectors := int(u32(b[6:]))
	need, err := checkedAddInt(10, numVarSelectors*11)
	if err != nil || need > len(b) {
		return nil, fmt.Errorf("cmap format 14: table too small for %d selectors", numVarSelectors)
	}
	return &format14Subtable{data: b, varSelectors: b[10:], selectorCount: numVarSelectors}, nil
}

func (f *format14Subtable) findSelector(selector rune) (defaultUVSOffset, nonDefaultUVSOffset uint32, ok bool) {
	s := uint32(selector)
	for i := 0; i < f.selectorCount; i++ {
		rec := f.varSelectors[i*11:]
		v := uint24(rec)
		if v == s {
			return u32(rec[3:]), u32(rec[7:]), true
		}
	}
	return 0, 0, false
}

// isDefault reports whether (base, selector) is listed in the default UVS
// table: such pairs resolve via the font's regular cmap subtable.
func (f *format14Subtable) isDefault(base, selector rune) bool {
	defOff, _, ok := f.findSelector(selector)
	if !ok || defOff == 0 || int(defOff) >= len(f.data) {
		return false
	}
	b := f.data[defOff:]
	if len(b) < 4 {
		return false
	}
	n := int(u32(b))
	ranges := b[4:]
	c := uint32(base)
	for i := 0; i < n; i++ {
		rec := ranges[i*4:]
		start := uint24(rec)
		additionalCount := rec[3]
		if c >= start && c <= start+uint32(additionalCount) {
			return true
		}
	}
	return false
}

// nonDefaultLookup resolves (base, selector) via the non-default UVS
// table, which maps specific variation sequences to explicit glyph IDs.
func (f *format14Subtable) nonDefaultLookup(base, selector rune) (GlyphIndex, bool) {
	_, nonDefOff, ok := f.findSelector(selector)
	if !ok || nonDefOff == 0 || int(nonDefOff) >= len(f.data) {
		return 0, false
	}
	b := f.data[nonDefOff:]
	if len(b) < 4 {
		return 0, false
	}
	n := int(u32(b))
	mappings := b[4:]
	c := uint32(base)
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		rec := mappings[mid*5:]
		v := uint24(rec)
		if c > v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo >= n {
		return 0, false
	}
	rec := mappings[lo*5:]
	v := uint24(rec)
	if v != c {
		return 0, false
	}
	return GlyphIndex(u16(rec[3:])), true
}
