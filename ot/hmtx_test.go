package ot

import "testing"

func TestHMtxParseAllAndLookup(t *testing.T) {
	// 2 long metrics + 1 trailing LSB-only glyph (numGlyphs=3).
	b := binarySegm{
		0, 100, 0, 5, // glyph 0: advance 100, lsb 5
		0, 120, 0xFF, 0xFB, // glyph 1: advance 120, lsb -5
		0, 10, // glyph 2: lsb 10 (reuses glyph 1's advance)
	}
	tbl := newHMtxTable(T("hmtx"), b, 0, uint32(len(b)))
	if err := tbl.parseAll(3, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	aw, lsb, ok := tbl.HMetrics(GlyphIndex(0))
	if !ok || aw != 100 || lsb != 5 {
		t.Errorf("expected glyph 0 advance 100 / lsb 5, got %d/%d ok=%v", aw, lsb, ok)
	}
	aw, lsb, ok = tbl.HMetrics(GlyphIndex(2))
	if !ok || aw != 120 || lsb != 10 {
		t.Errorf("expected glyph 2 advance 120 (repeated) / lsb 10, got %d/%d ok=%v", aw, lsb, ok)
	}
	if _, _, ok = tbl.HMetrics(GlyphIndex(3)); ok {
		t.Errorf("expected out-of-range glyph to report not found")
	}
}

func TestHMtxParseAllRejectsInvalidCounts(t *testing.T) {
	tbl := newHMtxTable(T("hmtx"), binarySegm{}, 0, 0)
	if err := tbl.parseAll(3, 5); err == nil {
		t.Errorf("expected error when numberOfHMetrics exceeds numGlyphs")
	}
}
