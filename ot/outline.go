package ot

// OutlineSink receives a stream of path-construction commands describing
// one glyph's outline, in font design units. Implementations typically
// build a rasterizer path or an SVG path string; package ot never
// allocates a path representation itself.
type OutlineSink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	CubicTo(cx1, cy1, cx2, cy2, x, y float64)
	Close()
}

// Rect is an axis-aligned bounding box in font design units.
type Rect struct {
	XMin, YMin, XMax, YMax float64
}

// boundingBoxSink is a no-op OutlineSink that accumulates a bounding box
// instead of emitting drawing commands; it lets GlyphBoundingBox reuse
// the same outline evaluator as OutlineGlyph.
type boundingBoxSink struct {
	rect   Rect
	any    bool
	curX   float64
	curY   float64
}

func (s *boundingBoxSink) grow(x, y float64) {
	if !s.any {
		s.rect = Rect{x, y, x, y}
		s.any = true
		return
	}
	if x < s.rect.XMin {
		s.rect.XMin = x
	}
	if x > s.rect.XMax {
		s.rect.XMax = x
	}
	if y < s.rect.YMin {
		s.rect.YMin = y
	}
	if y > s.rect.YMax {
		s.rect.YMax = y
	}
}

func (s *boundingBoxSink) MoveTo(x, y float64) { s.grow(x, y); s.curX, s.curY = x, y }
func (s *boundingBoxSink) LineTo(x, y float64) { s.grow(x, y); s.curX, s.curY = x, y }
func (s *boundingBoxSink) QuadTo(cx, cy, x, y float64) {
	s.grow(cx, cy)
	s.grow(x, y)
	s.curX, s.curY = x, y
}
func (s *boundingBoxSink) CubicTo(cx1, cy1, cx2, cy2, x, y float64) {
	s.grow(cx1, cy1)
	s.grow(cx2, cy2)
	s.grow(x, y)
	s.curX, s.curY = x, y
}
func (s *boundingBoxSink) Close() {}

// OutlineGlyph emits glyph gid's outline to sink, in font design units,
// dispatching to whichever outline source the font carries (glyf, CFF,
// or CFF2 — in that priority order, though a well-formed font has at
// most one). It returns false if gid has no outline data (e.g. the space
// glyph) or the font has no outline table at all.
func (otf *Font) OutlineGlyph(gid GlyphIndex, sink OutlineSink) bool {
	if otf == nil || sink == nil {
		return false
	}
	switch {
	case otf.Glyf != nil:
		return otf.outlineGlyf(gid, sink)
	case otf.CFF != nil:
		return otf.outlineCFF(gid, sink)
	case otf.CFF2 != nil:
		return otf.outlineCFF2(gid, sink)
	}
	return false
}

// OutlineGlyphVaried is like OutlineGlyph but, for glyf-outline fonts,
// instances contour points at the given normalized variation coordinates
// (see Font.NormalizeCoordinates) via gvar before emitting them. For
// CFF and CFF2 outlines coords is ignored and no variation deltas are
// applied: the glyph is emitted as OutlineGlyph emits it. A nil or empty
// coords behaves exactly like OutlineGlyph.
func (otf *Font) OutlineGlyphVaried(gid GlyphIndex, coords []float64, sink OutlineSink) bool {
	if otf == nil || sink == nil {
		return false
	}
	if otf.Glyf != nil {
		return otf.outlineGlyfVaried(gid, coords, sink)
	}
	return otf.OutlineGlyph(gid, sink)
}

// GlyphBoundingBox returns the bounding box of glyph gid's outline in
// font design units, reusing the same outline evaluator as OutlineGlyph
// via a sink that tracks extrema instead of building a path.
func (otf *Font) GlyphBoundingBox(gid GlyphIndex) (Rect, bool) {
	sink := &boundingBoxSink{}
	if !otf.OutlineGlyph(gid, sink) || !sink.any {
		return Rect{}, false
	}
	return sink.rect, true
}
