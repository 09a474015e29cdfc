package ot

import "testing"

// buildGDef constructs a GDEF v1.2 table with:
//   - GlyphClassDef (format 1): glyph 5 -> class 3 (MarkGlyph+1)
//   - MarkGlyphSets: set 0 contains glyph 7 (via a format-1 Coverage table)
func buildGDef() binarySegm {
	header := binarySegm{
		0, 1, // majorVersion
		0, 2, // minorVersion (v1.2)
		0, 14, // GlyphClassDefOffset
		0, 0, // AttachListOffset
		0, 0, // LigCaretListOffset
		0, 0, // MarkAttachClassDefOffset
		0, 22, // MarkGlyphSetsDefOffset
	}
	glyphClassDef := binarySegm{
		0, 1, // format
		0, 5, // startGlyphID
		0, 1, // glyphCount
		0, 3, // classValue[0] = 3 (MarkGlyph+1)
	}
	markGlyphSets := binarySegm{
		0, 1, // format
		0, 1, // markGlyphSetCount
		0, 0, 0, 8, // coverageOffset[0], relative to MarkGlyphSets table start
	}
	coverage := binarySegm{
		0, 1, // format
		0, 1, // glyphCount
		0, 7, // glyphArray[0]
	}
	full := append(binarySegm{}, header...)
	full = append(full, glyphClassDef...)
	full = append(full, markGlyphSets...)
	full = append(full, coverage...)
	return full
}

func TestParseGDefClassAndMarkGlyphSets(t *testing.T) {
	b := buildGDef()
	tbl, err := parseGDef(T("GDEF"), b, 0, uint32(len(b)), &errorCollector{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g := tbl.(*GDefTable)

	if g.GlyphClass(GlyphIndex(5)) != int(MarkGlyph)+1 {
		t.Errorf("expected glyph 5 to be classified as MarkGlyph, got class %d", g.GlyphClass(GlyphIndex(5)))
	}
	if g.GlyphClass(GlyphIndex(6)) != 0 {
		t.Errorf("expected glyph 6 (unlisted) to have default class 0")
	}
	if !g.IsMarkGlyph(GlyphIndex(5), -1) {
		t.Errorf("expected glyph 5 to be a mark glyph via GlyphClassDef")
	}
	if !g.IsMarkGlyph(GlyphIndex(7), 0) {
		t.Errorf("expected glyph 7 to be a mark glyph via mark glyph set 0")
	}
	if g.IsMarkGlyph(GlyphIndex(7), -1) {
		t.Errorf("expected glyph 7 to not be a mark glyph via GlyphClassDef alone")
	}
	if g.IsMarkGlyph(GlyphIndex(8), 0) {
		t.Errorf("expected glyph 8 (not in mark glyph set 0) to not be a mark glyph")
	}
}
