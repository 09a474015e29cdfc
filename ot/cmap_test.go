package ot

import "testing"

func TestCmapFormat0(t *testing.T) {
	b := make(binarySegm, 262)
	b[6+65] = 42 // 'A' -> glyph 42
	f, err := parseCmapFormat0(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g, ok := f.Lookup('A'); !ok || g != 42 {
		t.Errorf("expected glyph 42 for 'A', got g=%d ok=%v", g, ok)
	}
	if _, ok := f.Lookup(256); ok {
		t.Errorf("expected code point 256 to be unmapped in format 0")
	}
}

func TestCmapFormat6(t *testing.T) {
	b := binarySegm{
		0, 6, 0, 0, // format, length (unused by parser)
		0, 0, // language
		0, 100, // firstCode
		0, 2, // entryCount
		0, 5, // glyph for code 100
		0, 6, // glyph for code 101
	}
	f, err := parseCmapFormat6(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g, ok := f.Lookup(100); !ok || g != 5 {
		t.Errorf("expected glyph 5 for code 100, got g=%d ok=%v", g, ok)
	}
	if g, ok := f.Lookup(101); !ok || g != 6 {
		t.Errorf("expected glyph 6 for code 101, got g=%d ok=%v", g, ok)
	}
	if _, ok := f.Lookup(99); ok {
		t.Errorf("expected code 99 (before range) to be unmapped")
	}
	if _, ok := f.Lookup(102); ok {
		t.Errorf("expected code 102 (after range) to be unmapped")
	}
}

func TestCmapFormat4SingleSegment(t *testing.T) {
	// one segment covering [65,67] with idDelta 0, idRangeOffset 0 (direct),
	// plus the mandatory terminator segment {0xFFFF,0xFFFF,1,0}.
	b := binarySegm{
		0, 4, 0, 0, // format, length
		0, 0, // language
		0, 4, // segCountX2 = 4 (2 segments)
		0, 0, 0, 0, 0, 0, // searchRange/entrySelector/rangeShift (unused)
		0, 67, 0xFF, 0xFF, // endCode[0]=67, endCode[1]=0xFFFF
		0, 0, // reservedPad
		0, 65, 0xFF, 0xFF, // startCode[0]=65, startCode[1]=0xFFFF
		0, 0, 0, 1, // idDelta[0]=0, idDelta[1]=1
		0, 0, 0, 0, // idRangeOffset[0]=0, idRangeOffset[1]=0
	}
	f, err := parseCmapFormat4(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g, ok := f.Lookup('A'); !ok || g != 65 {
		t.Errorf("expected glyph 65 for 'A' (direct idDelta=0), got g=%d ok=%v", g, ok)
	}
	if g, ok := f.Lookup('C'); !ok || g != 67 {
		t.Errorf("expected glyph 67 for 'C', got g=%d ok=%v", g, ok)
	}
	if _, ok := f.Lookup('D'); ok {
		t.Errorf("expected code point past the segment (but before terminator) to be unmapped")
	}
}

func TestCmapFormat12(t *testing.T) {
	b := binarySegm{
		0, 12, 0, 0, // format, reserved
		0, 0, 0, 0, // length
		0, 0, 0, 0, // language
		0, 0, 0, 1, // nGroups = 1
		0, 0, 0, 100, // startCharCode
		0, 0, 0, 102, // endCharCode
		0, 0, 0, 50, // startGlyphID
	}
	f, err := parseCmapFormat12or13(b, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g, ok := f.Lookup(100); !ok || g != 50 {
		t.Errorf("expected glyph 50 for code 100, got g=%d ok=%v", g, ok)
	}
	if g, ok := f.Lookup(102); !ok || g != 52 {
		t.Errorf("expected glyph 52 for code 102 (start+2), got g=%d ok=%v", g, ok)
	}
	if _, ok := f.Lookup(103); ok {
		t.Errorf("expected code 103 past the group to be unmapped")
	}
}

func TestCmapFormat2(t *testing.T) {
	// all 256 subHeaderKeys point at subHeader 0 (single-byte codes),
	// covering codes 65..67 ('A'..'C') with idDelta 0 and a direct
	// glyphIndexArray lookup.
	header := make(binarySegm, 6)
	subHeaderKeys := make(binarySegm, 512)
	tail := binarySegm{
		0, 65, // firstCode = 65
		0, 3, // entryCount = 3
		0, 0, // idDelta = 0
		0, 2, // idRangeOffset: points 2 bytes past its own field, i.e. right after subHeader0
		0, 10, // glyph for 65
		0, 11, // glyph for 66
		0, 12, // glyph for 67
	}
	b := append(append(append(binarySegm{}, header...), subHeaderKeys...), tail...)
	f, err := parseCmapFormat2(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g, ok := f.Lookup('A'); !ok || g != 10 {
		t.Errorf("expected glyph 10 for 'A', got g=%d ok=%v", g, ok)
	}
	if g, ok := f.Lookup('C'); !ok || g != 12 {
		t.Errorf("expected glyph 12 for 'C', got g=%d ok=%v", g, ok)
	}
	if _, ok := f.Lookup('D'); ok {
		t.Errorf("expected code point past entryCount to be unmapped")
	}
}

func TestCmapFormat10(t *testing.T) {
	b := binarySegm{
		0, 10, 0, 0, // format, reserved
		0, 0, 0, 0, // length
		0, 0, 0, 0, // language
		0, 0, 0, 100, // firstCharCode = 100
		0, 0, 0, 2, // numChars = 2
		0, 7, // glyph for code 100
		0, 8, // glyph for code 101
	}
	f, err := parseCmapFormat10(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g, ok := f.Lookup(100); !ok || g != 7 {
		t.Errorf("expected glyph 7 for code 100, got g=%d ok=%v", g, ok)
	}
	if g, ok := f.Lookup(101); !ok || g != 8 {
		t.Errorf("expected glyph 8 for code 101, got g=%d ok=%v", g, ok)
	}
	if _, ok := f.Lookup(102); ok {
		t.Errorf("expected code 102 past the trimmed range to be unmapped")
	}
}

func TestCmapFormat14VariationSequences(t *testing.T) {
	const selector = 0xFE0F
	header := binarySegm{
		0, 14, // format
		0, 0, 0, 0, // length (unused by parser)
		0, 0, 0, 1, // numVarSelectors = 1
	}
	varSelectorRecord := binarySegm{
		0x00, 0xFE, 0x0F, // varSelector uint24 = 0xFE0F
		0, 0, 0, 0, // defaultUVSOffset = 0 (none)
		0, 0, 0, 21, // nonDefaultUVSOffset = 21 (right after header+record)
	}
	nonDefaultUVS := binarySegm{
		0, 0, 0, 1, // numUVSMappings = 1
		0x00, 0x00, 0x41, // unicodeValue uint24 = 'A' (65)
		0, 99, // glyphID = 99
	}
	b := append(append(append(binarySegm{}, header...), varSelectorRecord...), nonDefaultUVS...)
	uvs, err := parseFormat14(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g, ok := uvs.nonDefaultLookup('A', selector); !ok || g != 99 {
		t.Errorf("expected glyph 99 for variation sequence, got g=%d ok=%v", g, ok)
	}
	if _, ok := uvs.nonDefaultLookup('B', selector); ok {
		t.Errorf("expected unlisted base rune to report not found")
	}
	if uvs.isDefault('A', selector) {
		t.Errorf("expected isDefault false since defaultUVSOffset is 0")
	}

	t2 := &CMapTable{uvs: uvs}
	if g, ok := t2.GlyphVariationIndex('A', selector); !ok || g != 99 {
		t.Errorf("expected Font-level dispatch to resolve to glyph 99, got g=%d ok=%v", g, ok)
	}
	if _, ok := t2.GlyphVariationIndex('B', selector); ok {
		t.Errorf("expected unregistered variation sequence to report not found")
	}
}

func TestCMapTableGlyphIndexBoundsCheck(t *testing.T) {
	f0 := make(binarySegm, 262)
	f0[6+65] = 42
	sub, err := parseCmapFormat0(f0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tbl := &CMapTable{GlyphIndexMap: sub, numGlyphs: 50}
	if g, ok := tbl.GlyphIndex('A'); !ok || g != 42 {
		t.Errorf("expected glyph 42 for 'A' within numGlyphs, got g=%d ok=%v", g, ok)
	}
	tbl.numGlyphs = 5 // glyph 42 is now out of range
	if _, ok := tbl.GlyphIndex('A'); ok {
		t.Errorf("expected glyph index beyond numGlyphs to report not found")
	}
}

func TestParseCMapPicksWidestNotFirst(t *testing.T) {
	// Subtable 0: platform 1 (Mac), encoding 0 — width 1, format 0, maps
	// 'A' to glyph 5. Listed first, and perfectly decodable, to verify
	// the "pick the first that decodes" reading of the spec is NOT what
	// parseCMap does.
	f0 := make(binarySegm, 262)
	f0[6+65] = 5

	// Subtable 1: platform 3 (Windows), encoding 1 — width 3, format 4,
	// maps 'A' to glyph 65 and 'C' to glyph 67 via direct idDelta. Listed
	// second, but has the greater platformEncodingWidth and must win.
	f4 := binarySegm{
		0, 4, 0, 0,
		0, 0,
		0, 4,
		0, 0, 0, 0, 0, 0,
		0, 67, 0xFF, 0xFF,
		0, 0,
		0, 65, 0xFF, 0xFF,
		0, 0, 0, 1,
		0, 0, 0, 0,
	}

	const headerSize, entrySize = 4, 8
	sub0Offset := headerSize + 2*entrySize
	sub1Offset := sub0Offset + len(f0)

	b := make(binarySegm, sub1Offset+len(f4))
	b[2], b[3] = 0, 2 // numTables = 2
	// record 0: platform 1, encoding 0, offset sub0Offset
	b[4], b[5] = 0, 1
	b[6], b[7] = 0, 0
	b[8], b[9], b[10], b[11] = byte(sub0Offset>>24), byte(sub0Offset>>16), byte(sub0Offset>>8), byte(sub0Offset)
	// record 1: platform 3, encoding 1, offset sub1Offset
	b[12], b[13] = 0, 3
	b[14], b[15] = 0, 1
	b[16], b[17], b[18], b[19] = byte(sub1Offset>>24), byte(sub1Offset>>16), byte(sub1Offset>>8), byte(sub1Offset)
	copy(b[sub0Offset:], f0)
	copy(b[sub1Offset:], f4)

	tbl, err := parseCMap(T("cmap"), b, 0, uint32(len(b)), &errorCollector{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ct := tbl.(*CMapTable)
	if g, ok := ct.GlyphIndexMap.Lookup('A'); !ok || g != 65 {
		t.Errorf("expected the wider (format 4) subtable to win and map 'A' to 65, got g=%d ok=%v", g, ok)
	}
	if g, ok := ct.GlyphIndexMap.Lookup('C'); !ok || g != 67 {
		t.Errorf("expected 'C' to map to 67 via the format 4 subtable, got g=%d ok=%v", g, ok)
	}
}

func TestCmapFormat13ManyToOne(t *testing.T) {
	header := binarySegm{
		0, 13, 0, 0, // format, reserved
		0, 0, 0, 0, // length
		0, 0, 0, 0, // language
		0, 0, 0, 1, // nGroups = 1
	}
	group := binarySegm{
		0, 0, 0, 50, // startCharCode
		0, 0, 0, 60, // endCharCode
		0, 0, 0, 7, // glyphID (constant for the whole group)
	}
	b := append(append(binarySegm{}, header...), group...)
	f, err := parseCmapFormat12or13(b, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g, ok := f.Lookup(55); !ok || g != 7 {
		t.Errorf("expected constant glyph 7 across the group, got g=%d ok=%v", g, ok)
	}
}
