package ot

import "testing"

func TestCoverageFormat1(t *testing.T) {
	// format 1: sorted glyph array {5, 7, 9}
	b := binarySegm{
		0, 1, // format
		0, 3, // glyphCount
		0, 5,
		0, 7,
		0, 9,
	}
	cov := parseCoverage(b)
	if idx, ok := cov.Match(GlyphIndex(7)); !ok || idx != 1 {
		t.Errorf("expected glyph 7 at coverage index 1, got idx=%d ok=%v", idx, ok)
	}
	if cov.Contains(GlyphIndex(6)) {
		t.Errorf("glyph 6 is not listed and should not be covered")
	}
	if !cov.Contains(GlyphIndex(5)) || !cov.Contains(GlyphIndex(9)) {
		t.Errorf("expected first and last listed glyphs to be covered")
	}
}

func TestCoverageFormat2(t *testing.T) {
	// format 2: one range record [20,24] (inclusive) -> starting coverage index 0
	b := binarySegm{
		0, 2, // format
		0, 1, // rangeCount
		0, 20, 0, 24, 0, 0, // startGlyphID, endGlyphID(inclusive), startCoverageIndex
	}
	cov := parseCoverage(b)
	if cov.Contains(GlyphIndex(19)) {
		t.Errorf("glyph before range should not be covered")
	}
	if idx, ok := cov.Match(GlyphIndex(20)); !ok || idx != 0 {
		t.Errorf("expected glyph 20 at coverage index 0, got idx=%d ok=%v", idx, ok)
	}
	if idx, ok := cov.Match(GlyphIndex(24)); !ok || idx != 4 {
		t.Errorf("expected glyph 24 (last in range) at coverage index 4, got idx=%d ok=%v", idx, ok)
	}
	if cov.Contains(GlyphIndex(25)) {
		t.Errorf("glyph past range end should not be covered")
	}
}
