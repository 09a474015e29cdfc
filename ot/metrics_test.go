package ot

import "testing"

func TestFontGlyphHorMetricsNoVariation(t *testing.T) {
	hmtx := newHMtxTable(T("hmtx"), binarySegm{0x01, 0xF4, 0, 20}, 0, 4)
	if err := hmtx.parseAll(1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	otf := &Font{HMtx: hmtx}

	adv, ok := otf.GlyphHorAdvance(GlyphIndex(0), nil)
	if !ok || adv != 500 {
		t.Errorf("expected advance 500, got %d ok=%v", adv, ok)
	}
	lsb, ok := otf.GlyphHorSideBearing(GlyphIndex(0), nil)
	if !ok || lsb != 20 {
		t.Errorf("expected lsb 20, got %d ok=%v", lsb, ok)
	}
	if _, ok := otf.GlyphHorAdvance(GlyphIndex(5), nil); ok {
		t.Errorf("expected out-of-range glyph to report not found")
	}
}

func TestFontAscenderDescenderLineGapWithMVar(t *testing.T) {
	hhea := newHHeaTable(T("hhea"), binarySegm{}, 0, 0)
	hhea.Ascender, hhea.Descender, hhea.LineGap = 800, -200, 90

	mvarBytes := buildMVar()
	tbl, err := parseMVar(T("MVAR"), mvarBytes, 0, uint32(len(mvarBytes)), &errorCollector{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	otf := &Font{HHea: hhea, MVar: tbl.(*MVarTable)}

	asc, ok := otf.Ascender(nil)
	if !ok || asc != 800 {
		t.Errorf("expected ascender 800 without coords, got %d ok=%v", asc, ok)
	}
	asc, ok = otf.Ascender([]float64{1.0})
	if !ok || asc != 900 { // hasc MVAR delta is +100 at peak, per buildMVar/buildItemVariationStore
		t.Errorf("expected ascender 900 with MVAR delta applied, got %d ok=%v", asc, ok)
	}
	desc, ok := otf.Descender([]float64{1.0})
	if !ok || desc != -200 { // no MVAR record for hdsc
		t.Errorf("expected descender unchanged at -200, got %d ok=%v", desc, ok)
	}
}

func TestFontNormalizeCoordinates(t *testing.T) {
	fvarBytes := buildFVar()
	tbl, err := parseFVar(T("fvar"), fvarBytes, 0, uint32(len(fvarBytes)), &errorCollector{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	otf := &Font{FVar: tbl.(*FVarTable)}

	coords := otf.NormalizeCoordinates(map[string]float64{"wght": 700})
	if len(coords) != 1 || coords[0] < 0.59 || coords[0] > 0.61 {
		t.Errorf("expected normalized coordinate ~0.6 for wght=700 (default 400, max 900), got %v", coords)
	}
	coords = otf.NormalizeCoordinates(nil)
	if len(coords) != 1 || coords[0] != 0 {
		t.Errorf("expected normalized coordinate 0 for omitted axis (default), got %v", coords)
	}
}

func TestFontFamilyAndPostScriptName(t *testing.T) {
	nameBytes := buildName()
	tbl, err := parseName(T("name"), nameBytes, 0, uint32(len(nameBytes)), &errorCollector{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	otf := &Font{Name: tbl.(*NameTable)}
	if fam, ok := otf.FamilyName(); !ok || fam != "Ab" {
		t.Errorf("expected family name \"Ab\", got %q ok=%v", fam, ok)
	}
	if _, ok := otf.PostScriptName(); ok {
		t.Errorf("expected no PostScript name to be present")
	}
}

func TestFontGlyphClassAndMarkGlyph(t *testing.T) {
	gdefBytes := buildGDef()
	tbl, err := parseGDef(T("GDEF"), gdefBytes, 0, uint32(len(gdefBytes)), &errorCollector{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	otf := &Font{GDef: tbl.(*GDefTable)}
	if otf.GlyphClass(GlyphIndex(5)) != int(MarkGlyph)+1 {
		t.Errorf("expected glyph 5 to be classified as MarkGlyph")
	}
	if !otf.IsMarkGlyph(GlyphIndex(5), -1) {
		t.Errorf("expected glyph 5 to report as a mark glyph")
	}
	if otf.GlyphClass(GlyphIndex(99)) != 0 {
		t.Errorf("expected glyph not listed in GlyphClassDef to default to class 0")
	}
}

func TestFontUnitsPerEmNoHead(t *testing.T) {
	otf := &Font{}
	if otf.UnitsPerEm() != 0 {
		t.Errorf("expected unitsPerEm 0 when head table absent")
	}
}
