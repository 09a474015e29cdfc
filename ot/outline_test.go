package ot

import "testing"

// buildVariedGlyphFixture wires a single triangle glyph (glyph index 5, all
// other indices empty) together with a gvar table carrying one tuple,
// peaked at normalized coordinate 1.0 on axis 0, that shifts point 0 of
// glyph 5 by (+50, 0) and leaves points 1 and 2 untouched — the fixture
// from spec scenario 6 (wght axis 100/400/900, peak at 900).
func buildVariedGlyphFixture() *Font {
	triangle := buildTriangleGlyf()

	glyf := newGlyfTable(T("glyf"), triangle, 0, uint32(len(triangle)))

	locaData := make(binarySegm, 7*4)
	// glyphs 0..4 empty, glyph 5 occupies [0, len(triangle)).
	locaData[24], locaData[25], locaData[26], locaData[27] =
		byte(len(triangle)>>24), byte(len(triangle)>>16), byte(len(triangle)>>8), byte(len(triangle))
	loca := newLocaTable(T("loca"), locaData, 0, uint32(len(locaData)))
	loca.inx2loc = longLocaVersion
	loca.locCnt = 7

	// Tuple variation data for glyph 5: explicit (non-private) deltas for
	// all 3 points, dx = [50, 0, 0], dy = [0, 0, 0], at peak (1.0).
	varData := binarySegm{
		0, 1, // tupleCount = 1
		0, 10, // dataArrayOffset = 10
		0, 4, // header[0].dataLength = 4 bytes of serialized data
		0x80, 0x00, // EMBEDDED_PEAK_TUPLE, tuple index 0
		0x40, 0x00, // peak tuple axis 0 = f2dot14(1.0)
		0x00, 50, // dx: run of 1 byte-delta, value 50
		0x81,       // dx: run of 2 zero-deltas (points 1, 2)
		0x82,       // dy: run of 3 zero-deltas (points 0, 1, 2)
	}
	gvarHeader := binarySegm{
		0, 1, 0, 0, // version
		0, 1, // axisCount
		0, 0, // sharedTupleCount
		0, 0, 0, 0, // sharedTuplesOffset
		0, 6, // glyphCount
		0, 0, // flags (short offsets)
		0, 0, 0, 34, // glyphVarDataArrayOffset = 34 (20 + 7*2)
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // offsets[0..5] = 0
		0, 7, // offsets[6] = 7 (*2 = 14, the length of varData)
	}
	gb := append(binarySegm{}, gvarHeader...)
	gb = append(gb, varData...)
	gvarTable, err := parseGVar(T("gvar"), gb, 0, uint32(len(gb)), &errorCollector{})
	if err != nil {
		panic(err) // fixture construction bug, not a runtime condition
	}

	return &Font{Glyf: glyf, Loca: loca, GVar: gvarTable.(*GVarTable)}
}

func TestOutlineGlyphVariedShiftsOnlyReferencedPoint(t *testing.T) {
	otf := buildVariedGlyphFixture()

	atPeak := &exactSink{}
	if !otf.OutlineGlyphVaried(5, []float64{1.0}, atPeak) {
		t.Fatalf("expected successful outline at peak coordinate")
	}
	// Triangle points are (10,0), (10,10), (20,10); point 0 shifts to (60,0),
	// points 1 and 2 are untouched.
	want := []string{
		"move_to(60,0)",
		"line_to(10,10)",
		"line_to(20,10)",
		"line_to(60,0)",
		"close",
	}
	if len(atPeak.cmds) != len(want) {
		t.Fatalf("expected %d commands, got %d: %v", len(want), len(atPeak.cmds), atPeak.cmds)
	}
	for i := range want {
		if atPeak.cmds[i] != want[i] {
			t.Errorf("command %d: expected %q, got %q", i, want[i], atPeak.cmds[i])
		}
	}

	bbox := &boundingBoxSink{}
	otf.outlineGlyfTransform(5, bbox, 1, identityXform(), []float64{1.0})
	if bbox.rect.XMin != 10 || bbox.rect.XMax != 60 {
		t.Errorf("expected shifted bbox XMin=10 (points 1/2 untouched) XMax=60 (point 0 at peak), got %+v", bbox.rect)
	}
}

func TestOutlineGlyphVariedHalfwayToPeak(t *testing.T) {
	otf := buildVariedGlyphFixture()
	bbox := &boundingBoxSink{}
	otf.outlineGlyfTransform(5, bbox, 1, identityXform(), []float64{0.5})
	// Point 0 shifts from (10,0) by (+25,0) -> (35,0); unaffected points stay at x=10..20.
	if bbox.rect.XMax != 35 {
		t.Errorf("expected XMax=35 at half-peak coordinate (0.5), got %+v", bbox.rect)
	}
}

func TestOutlineGlyphVariedAtDefaultMatchesOutlineGlyph(t *testing.T) {
	otf := buildVariedGlyphFixture()

	plain := &exactSink{}
	if !otf.OutlineGlyph(5, plain) {
		t.Fatalf("expected successful OutlineGlyph")
	}

	variedNil := &exactSink{}
	if !otf.OutlineGlyphVaried(5, nil, variedNil) {
		t.Fatalf("expected successful OutlineGlyphVaried with nil coords")
	}
	variedZero := &exactSink{}
	if !otf.OutlineGlyphVaried(5, []float64{0}, variedZero) {
		t.Fatalf("expected successful OutlineGlyphVaried with zero coords")
	}

	for i := range plain.cmds {
		if variedNil.cmds[i] != plain.cmds[i] {
			t.Errorf("nil coords: command %d: expected %q, got %q", i, plain.cmds[i], variedNil.cmds[i])
		}
		if variedZero.cmds[i] != plain.cmds[i] {
			t.Errorf("zero coords: command %d: expected %q, got %q", i, plain.cmds[i], variedZero.cmds[i])
		}
	}
	if len(variedNil.cmds) != len(plain.cmds) || len(variedZero.cmds) != len(plain.cmds) {
		t.Fatalf("command count mismatch: plain=%d nil=%d zero=%d", len(plain.cmds), len(variedNil.cmds), len(variedZero.cmds))
	}
}
