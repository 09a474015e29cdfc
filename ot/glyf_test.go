package ot

import "testing"

// recordingSink captures emitted path commands for assertions.
type recordingSink struct {
	moves, lines, quads, closes int
	lastX, lastY                float64
}

func (s *recordingSink) MoveTo(x, y float64) { s.moves++; s.lastX, s.lastY = x, y }
func (s *recordingSink) LineTo(x, y float64) { s.lines++; s.lastX, s.lastY = x, y }
func (s *recordingSink) QuadTo(cx, cy, x, y float64) {
	s.quads++
	s.lastX, s.lastY = x, y
}
func (s *recordingSink) CubicTo(cx1, cy1, cx2, cy2, x, y float64) { s.lastX, s.lastY = x, y }
func (s *recordingSink) Close()                                   { s.closes++ }

// buildTriangleGlyf constructs a minimal simple glyph: one contour, three
// on-curve points (all short-vector deltas), no instructions.
func buildTriangleGlyf() binarySegm {
	flag := byte(0x01 | 0x02 | 0x10 | 0x04 | 0x20) // on-curve, short x/y, both positive
	return binarySegm{
		0, 1, // numberOfContours = 1
		0, 0, 0, 0, 0, 0, 0, 0, // bbox (unused by decode)
		0, 2, // endPtsOfContours[0] = 2 (3 points)
		0, 0, // instructionLength = 0
		flag, flag, flag,
		10, 0, 10, // x deltas: 10, 0, 10 -> xs = 10, 10, 20
		0, 10, 0, // y deltas: 0, 10, 0 -> ys = 0, 10, 10
	}
}

func TestDecodeSimpleGlyphTriangle(t *testing.T) {
	g := buildTriangleGlyf()
	sink := &recordingSink{}
	otf := &Font{}
	ok := otf.decodeSimpleGlyph(0, g, 1, sink, identityXform(), nil)
	if !ok {
		t.Fatalf("expected successful decode")
	}
	if sink.moves != 1 {
		t.Errorf("expected exactly one MoveTo, got %d", sink.moves)
	}
	if sink.closes != 1 {
		t.Errorf("expected exactly one Close, got %d", sink.closes)
	}
	// three on-curve points, each consecutive pair on-curve -> two LineTo plus
	// the closing LineTo back to the start point, which emitContour emits
	// explicitly before Close, so at least 2 LineTo calls.
	if sink.lines < 2 {
		t.Errorf("expected at least 2 LineTo calls for a 3-point on-curve contour, got %d", sink.lines)
	}
}

func TestOutlineGlyphNoGlyfTable(t *testing.T) {
	otf := &Font{}
	sink := &recordingSink{}
	if otf.OutlineGlyph(0, sink) {
		t.Errorf("expected false outline result when font has no outline table")
	}
}

// exactSink records the full command sequence, not just counts, so a test
// can assert on exact drawing order as well as coordinates.
type exactSink struct {
	cmds []string
}

func (s *exactSink) MoveTo(x, y float64) {
	s.cmds = append(s.cmds, fmtCmd("move_to", x, y))
}
func (s *exactSink) LineTo(x, y float64) {
	s.cmds = append(s.cmds, fmtCmd("line_to", x, y))
}
func (s *exactSink) QuadTo(cx, cy, x, y float64) {
	s.cmds = append(s.cmds, fmtCmd("quad_to", cx, cy, x, y))
}
func (s *exactSink) CubicTo(cx1, cy1, cx2, cy2, x, y float64) {
	s.cmds = append(s.cmds, fmtCmd("cubic_to", cx1, cy1, cx2, cy2, x, y))
}
func (s *exactSink) Close() { s.cmds = append(s.cmds, "close") }

func fmtCmd(name string, coords ...float64) string {
	out := name + "("
	for i, c := range coords {
		if i > 0 {
			out += ","
		}
		out += fmtFloat(c)
	}
	return out + ")"
}

func fmtFloat(f float64) string {
	if f == float64(int64(f)) {
		return itoa(int64(f))
	}
	return "?" // no fractional coordinates occur in these fixtures
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var b []byte
	for v > 0 {
		b = append([]byte{byte('0' + v%10)}, b...)
		v /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}

// buildNotdefRectGlyf constructs a simple glyph with a single rectangular
// contour: on-curve points (50,0), (50,750), (450,750), (450,0), matching
// a minimal ".notdef" box glyph.
func buildNotdefRectGlyf() binarySegm {
	// flags: on-curve + short-x/positive + y-same (P0); on-curve + x-same (P1, P3);
	// on-curve + y-same (P2). Deltas too large for a 1-byte short vector (750,
	// 400) fall back to 2-byte words.
	return binarySegm{
		0, 1, // numberOfContours = 1
		0, 0, 0, 0, 0, 0, 0, 0, // bbox (unused by decode)
		0, 3, // endPtsOfContours[0] = 3 (4 points)
		0, 0, // instructionLength = 0
		0x33, 0x11, 0x21, 0x11, // flags for P0..P3
		50,         // P0 dx (short, +50)
		0x01, 0x90, // P2 dx (word, +400)
		0x02, 0xEE, // P1 dy (word, +750)
		0xFD, 0x12, // P3 dy (word, -750)
	}
}

func TestOutlineGlyphNotdefRectangle(t *testing.T) {
	g := buildNotdefRectGlyf()
	glyf := newGlyfTable(T("glyf"), g, 0, uint32(len(g)))
	loca := newLocaTable(T("loca"), binarySegm{0, 0, 0, 0, 0, 0, 0, byte(len(g))}, 0, 8)
	loca.inx2loc = longLocaVersion
	loca.locCnt = 2
	otf := &Font{Glyf: glyf, Loca: loca}

	sink := &exactSink{}
	rect, ok := otf.GlyphBoundingBox(0)
	if !ok {
		t.Fatalf("expected a bounding box for the .notdef rectangle")
	}
	if rect != (Rect{50, 0, 450, 750}) {
		t.Errorf("expected Rect{50,0,450,750}, got %+v", rect)
	}

	if !otf.OutlineGlyph(0, sink) {
		t.Fatalf("expected successful outline")
	}
	want := []string{
		"move_to(50,0)",
		"line_to(50,750)",
		"line_to(450,750)",
		"line_to(450,0)",
		"line_to(50,0)",
		"close",
	}
	if len(sink.cmds) != len(want) {
		t.Fatalf("expected %d commands, got %d: %v", len(want), len(sink.cmds), sink.cmds)
	}
	for i := range want {
		if sink.cmds[i] != want[i] {
			t.Errorf("command %d: expected %q, got %q", i, want[i], sink.cmds[i])
		}
	}
}
