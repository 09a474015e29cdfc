package ot

import "testing"

func buildPostV2() binarySegm {
	header := make(binarySegm, 32)
	header[0], header[1], header[2], header[3] = 0, 2, 0, 0 // version 0x00020000
	header[8], header[9] = 0xFF, 0x38 // underlinePosition = -200
	header[10], header[11] = 0, 50 // underlineThickness = 50
	header[12], header[13], header[14], header[15] = 0, 0, 0, 1 // isFixedPitch = true

	numGlyphsField := binarySegm{0, 2} // numberOfGlyphs = 2
	indexArray := binarySegm{
		1, 0, // glyph 0: placeholder, overwritten below
		1, 2, // glyph 1 -> custom pascal string index 258+0 = 258
	}
	// use indices within the standard table for glyph 0 (index 3 = "space")
	indexArray[0], indexArray[1] = 0, 3
	pascalStrings := binarySegm{5, 'h', 'e', 'l', 'l', 'o'} // custom name "hello" at index 258

	full := append(binarySegm{}, header...)
	full = append(full, numGlyphsField...)
	full = append(full, indexArray...)
	full = append(full, pascalStrings...)
	return full
}

func TestParsePostV2GlyphNames(t *testing.T) {
	b := buildPostV2()
	tbl, err := parsePost(T("post"), b, 0, uint32(len(b)), &errorCollector{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := tbl.(*PostTable)
	if p.UnderlinePosition != -200 || p.UnderlineThickness != 50 {
		t.Errorf("expected underline position -200 / thickness 50, got %d/%d", p.UnderlinePosition, p.UnderlineThickness)
	}
	if !p.IsFixedPitch {
		t.Errorf("expected isFixedPitch true")
	}
	if name, ok := p.GlyphName(GlyphIndex(0)); !ok || name != "space" {
		t.Errorf("expected glyph 0 name \"space\", got %q ok=%v", name, ok)
	}
	if name, ok := p.GlyphName(GlyphIndex(1)); !ok || name != "hello" {
		t.Errorf("expected glyph 1 name \"hello\", got %q ok=%v", name, ok)
	}
}
