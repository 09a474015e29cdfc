package ot

import "testing"

func TestClassDefinitionsFormat1(t *testing.T) {
	// format 1: startGlyph=10, 3 entries: classes 1, 2, 1
	b := binarySegm{
		0, 1, // format
		0, 10, // startGlyphID
		0, 3, // glyphCount
		0, 1, // class for glyph 10
		0, 2, // class for glyph 11
		0, 1, // class for glyph 12
	}
	cdef, err := parseClassDefinitions(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cdef.Class(GlyphIndex(9)) != 0 {
		t.Errorf("glyph below range should default to class 0")
	}
	if cdef.Class(GlyphIndex(10)) != 1 {
		t.Errorf("expected glyph 10 to be class 1, got %d", cdef.Class(GlyphIndex(10)))
	}
	if cdef.Class(GlyphIndex(11)) != 2 {
		t.Errorf("expected glyph 11 to be class 2, got %d", cdef.Class(GlyphIndex(11)))
	}
	if cdef.Class(GlyphIndex(13)) != 0 {
		t.Errorf("glyph above range should default to class 0")
	}
}

func TestClassDefinitionsFormat2(t *testing.T) {
	// format 2: one range [20,24] (inclusive) -> class 3.
	b := binarySegm{
		0, 2, // format
		0, 1, // rangeCount
		0, 20, 0, 24, 0, 3, // startGlyphID, endGlyphID(inclusive), class
	}
	cdef, err := parseClassDefinitions(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cdef.Class(GlyphIndex(19)) != 0 {
		t.Errorf("glyph before range should default to class 0")
	}
	if cdef.Class(GlyphIndex(20)) != 3 || cdef.Class(GlyphIndex(24)) != 3 {
		t.Errorf("glyphs within [20,24] should be class 3")
	}
	if cdef.Class(GlyphIndex(25)) != 0 {
		t.Errorf("glyph past range end should default to class 0")
	}
}
