package ot

import "testing"

func TestLocaShortFormat(t *testing.T) {
	// short format stores offsets/2; glyph extents [0,20) [20,20) [20,40).
	b := binarySegm{0, 0, 0, 10, 0, 10, 0, 20}
	t1 := newLocaTable(T("loca"), b, 0, uint32(len(b)))
	t1.locCnt = 4
	start, end := t1.GlyphExtent(GlyphIndex(0))
	if start != 0 || end != 20 {
		t.Errorf("expected glyph 0 extent [0,20), got [%d,%d)", start, end)
	}
	start, end = t1.GlyphExtent(GlyphIndex(1))
	if start != 20 || end != 20 {
		t.Errorf("expected glyph 1 (empty outline) extent [20,20), got [%d,%d)", start, end)
	}
	start, end = t1.GlyphExtent(GlyphIndex(2))
	if start != 20 || end != 40 {
		t.Errorf("expected glyph 2 extent [20,40), got [%d,%d)", start, end)
	}
}

func TestLocaLongFormat(t *testing.T) {
	b := binarySegm{0, 0, 0, 0, 0, 0, 0, 100, 0, 0, 0, 250}
	t1 := newLocaTable(T("loca"), b, 0, uint32(len(b)))
	t1.inx2loc = longLocaVersion
	t1.locCnt = 3
	start, end := t1.GlyphExtent(GlyphIndex(0))
	if start != 0 || end != 100 {
		t.Errorf("expected glyph 0 extent [0,100), got [%d,%d)", start, end)
	}
	start, end = t1.GlyphExtent(GlyphIndex(1))
	if start != 100 || end != 250 {
		t.Errorf("expected glyph 1 extent [100,250), got [%d,%d)", start, end)
	}
}
