package ot

// GlyfTable holds the raw TrueType outline data ('glyf'); individual
// glyph records are located via LocaTable.GlyphExtent and decoded lazily
// by Font.OutlineGlyph, never at parse time.
type GlyfTable struct {
	tableBase
}

func newGlyfTable(tag Tag, b binarySegm, offset, size uint32) *GlyfTable {
	t := &GlyfTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsGlyf converts a generic TableSelf to a *GlyfTable, or nil if the
// underlying table is not a glyf table.
func (tself TableSelf) AsGlyf() *GlyfTable {
	t, _ := safeSelf(tself).(*GlyfTable)
	return t
}

func parseGlyf(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	return newGlyfTable(tag, b, offset, size), nil
}

const maxCompositeDepth = 32

// xform is a 2x2 linear map plus translation, applied to composite
// glyph components in font design units.
type xform struct {
	a, b, c, d float64
	dx, dy     float64
}

func identityXform() xform { return xform{a: 1, d: 1} }

func (x xform) apply(px, py float64) (float64, float64) {
	return x.a*px + x.c*py + x.dx, x.b*px + x.d*py + x.dy
}

// compose returns the transform of applying inner first, then x.
func (x xform) compose(inner xform) xform {
	return xform{
		a:  x.a*inner.a + x.c*inner.b,
		b:  x.b*inner.a + x.d*inner.b,
		c:  x.a*inner.c + x.c*inner.d,
		d:  x.b*inner.c + x.d*inner.d,
		dx: x.a*inner.dx + x.c*inner.dy + x.dx,
		dy: x.b*inner.dx + x.d*inner.dy + x.dy,
	}
}

// outlineGlyf walks the glyf/loca data for gid and emits its outline to
// sink, recursing into component glyphs for composites up to
// maxCompositeDepth deep. Returns false if gid has no outline (e.g. the
// space glyph, an empty contour list) or the data is malformed.
func (otf *Font) outlineGlyf(gid GlyphIndex, sink OutlineSink) bool {
	return otf.outlineGlyfTransform(gid, sink, 1, identityXform(), nil)
}

// outlineGlyfVaried is like outlineGlyf but instances contour points at
// the given normalized variation coordinates via gvar, when the font
// carries a gvar table. Composite component offsets are not themselves
// varied (gvar's component-level deltas on composite glyphs are not
// applied); only simple-glyph contour points are instanced.
func (otf *Font) outlineGlyfVaried(gid GlyphIndex, coords []float64, sink OutlineSink) bool {
	return otf.outlineGlyfTransform(gid, sink, 1, identityXform(), coords)
}

func (otf *Font) outlineGlyfTransform(gid GlyphIndex, sink OutlineSink, depth int, t xform, coords []float64) bool {
	if depth > maxCompositeDepth || otf.Glyf == nil || otf.Loca == nil {
		return false
	}
	start, end := otf.Loca.GlyphExtent(gid)
	if end <= start {
		return false // empty outline (e.g. space) — absent, not an error
	}
	data := otf.Glyf.data
	if uint32(len(data)) < end {
		return false
	}
	g := data[start:end]
	if len(g) < 10 {
		return false
	}
	numContours := int16(g.U16(0))
	if numContours >= 0 {
		return otf.decodeSimpleGlyph(gid, g, int(numContours), sink, t, coords)
	}
	return otf.decodeCompositeGlyph(g[10:], sink, depth, t, coords)
}

func (otf *Font) decodeSimpleGlyph(gid GlyphIndex, g binarySegm, numContours int, sink OutlineSink, t xform, coords []float64) bool {
	off := 10
	if numContours == 0 {
		return false
	}
	need := off + numContours*2 + 2
	if need > len(g) {
		return false
	}
	endPts := make([]int, numContours)
	for i := 0; i < numContours; i++ {
		endPts[i] = int(g.U16(off + i*2))
		if i > 0 && endPts[i] < endPts[i-1] {
			return false
		}
	}
	numPoints := endPts[numContours-1] + 1
	off += numContours * 2
	insLen := int(g.U16(off))
	off += 2 + insLen
	if off > len(g) {
		return false
	}

	flags := make([]byte, 0, numPoints)
	for len(flags) < numPoints {
		if off >= len(g) {
			return false
		}
		f := g[off]
		off++
		flags = append(flags, f)
		if f&0x08 != 0 { // REPEAT_FLAG
			if off >= len(g) {
				return false
			}
			repeat := int(g[off])
			off++
			for i := 0; i < repeat && len(flags) < numPoints; i++ {
				flags = append(flags, f)
			}
		}
	}

	xs := make([]int32, numPoints)
	x := int32(0)
	for i := 0; i < numPoints; i++ {
		f := flags[i]
		switch {
		case f&0x02 != 0: // short vector, sign carried in bit 0x10
			if off >= len(g) {
				return false
			}
			dx := int32(g[off])
			off++
			if f&0x10 == 0 {
				dx = -dx
			}
			x += dx
		case f&0x10 != 0: // same as previous (delta 0)
		default:
			if off+2 > len(g) {
				return false
			}
			x += int32(int16(g.U16(off)))
			off += 2
		}
		xs[i] = x
	}

	ys := make([]int32, numPoints)
	y := int32(0)
	for i := 0; i < numPoints; i++ {
		f := flags[i]
		switch {
		case f&0x04 != 0:
			if off >= len(g) {
				return false
			}
			dy := int32(g[off])
			off++
			if f&0x20 == 0 {
				dy = -dy
			}
			y += dy
		case f&0x20 != 0:
		default:
			if off+2 > len(g) {
				return false
			}
			y += int32(int16(g.U16(off)))
			off += 2
		}
		ys[i] = y
	}

	fxs, fys := varyPoints(otf, gid, coords, flags, xs, ys, endPts)

	start := 0
	for _, last := range endPts {
		emitContour(flags[start:last+1], fxs[start:last+1], fys[start:last+1], sink, t)
		start = last + 1
	}
	return true
}

// varyPoints applies gvar contour-point deltas at the given normalized
// coordinates, when the font carries a gvar table and coords is
// non-empty; otherwise it returns xs/ys unchanged as float64. Phantom
// points (the 4 metrics anchors gvar tuples may also carry deltas for)
// are not tracked here — advance/side-bearing variation is already
// applied via HVAR/VVAR, so omitting them only affects gvar's own,
// rarely-used phantom-point deltas.
func varyPoints(otf *Font, gid GlyphIndex, coords []float64, flags []byte, xs, ys []int32, endPts []int) ([]float64, []float64) {
	if otf == nil || otf.GVar == nil || len(coords) == 0 {
		fxs := make([]float64, len(xs))
		fys := make([]float64, len(ys))
		for i := range xs {
			fxs[i] = float64(xs[i])
			fys[i] = float64(ys[i])
		}
		return fxs, fys
	}
	onCurve := make([]bool, len(flags))
	for i, f := range flags {
		onCurve[i] = f&0x01 != 0
	}
	return otf.GVar.ApplyDeltas(gid, coords, xs, ys, onCurve, endPts)
}

// emitContour converts a TrueType quadratic contour (on/off-curve point
// flags) into MoveTo/QuadTo/LineTo/Close sink calls, synthesizing the
// implicit on-curve midpoint between two consecutive off-curve points.
func emitContour(flags []byte, xs, ys []float64, sink OutlineSink, t xform) {
	n := len(flags)
	if n == 0 {
		return
	}
	onCurve := func(i int) bool { return flags[i%n]&0x01 != 0 }
	pt := func(i int) (float64, float64) { return t.apply(xs[i%n], ys[i%n]) }
	mid := func(i, j int) (float64, float64) {
		x1, y1 := pt(i)
		x2, y2 := pt(j)
		return (x1 + x2) / 2, (y1 + y2) / 2
	}

	start := 0
	for start < n && !onCurve(start) {
		start++
	}
	var startX, startY float64
	if start == n {
		startX, startY = mid(n-1, 0) // all points off-curve
		start = n - 1
	} else {
		startX, startY = pt(start)
	}
	sink.MoveTo(startX, startY)

	i := start
	for i < start+n {
		next := i + 1
		if onCurve(next) {
			nx, ny := pt(next)
			sink.LineTo(nx, ny)
			i = next
			continue
		}
		cx, cy := pt(next)
		afterNext := next + 1
		var ex, ey float64
		if onCurve(afterNext) {
			ex, ey = pt(afterNext)
			i = afterNext
		} else {
			ex, ey = mid(next, afterNext)
			i = next
		}
		sink.QuadTo(cx, cy, ex, ey)
	}
	sink.Close()
}

// decodeCompositeGlyph parses a composite glyph's component records,
// recursing through Font.outlineGlyfTransform for each component.
func (otf *Font) decodeCompositeGlyph(b binarySegm, sink OutlineSink, depth int, parent xform, coords []float64) bool {
	more := true
	ok := false
	for more {
		if len(b) < 4 {
			return ok
		}
		flags := b.U16(0)
		componentGID := GlyphIndex(b.U16(2))
		off := 4
		var dx, dy float64
		argsAreXY := flags&0x0002 != 0
		wordsArgs := flags&0x0001 != 0
		if wordsArgs {
			if off+4 > len(b) {
				return ok
			}
			if argsAreXY {
				dx = float64(int16(b.U16(off)))
				dy = float64(int16(b.U16(off + 2)))
			}
			off += 4
		} else {
			if off+2 > len(b) {
				return ok
			}
			if argsAreXY {
				dx = float64(int8(b[off]))
				dy = float64(int8(b[off+1]))
			}
			off += 2
		}
		comp := xform{a: 1, d: 1}
		switch {
		case flags&0x0008 != 0: // WE_HAVE_A_SCALE
			if off+2 > len(b) {
				return ok
			}
			s := f2dot14(b.U16(off))
			comp.a, comp.d = s, s
			off += 2
		case flags&0x0040 != 0: // WE_HAVE_AN_X_AND_Y_SCALE
			if off+4 > len(b) {
				return ok
			}
			comp.a = f2dot14(b.U16(off))
			comp.d = f2dot14(b.U16(off + 2))
			off += 4
		case flags&0x0080 != 0: // WE_HAVE_A_TWO_BY_TWO
			if off+8 > len(b) {
				return ok
			}
			comp.a = f2dot14(b.U16(off))
			comp.b = f2dot14(b.U16(off + 2))
			comp.c = f2dot14(b.U16(off + 4))
			comp.d = f2dot14(b.U16(off + 6))
			off += 8
		}
		comp.dx, comp.dy = dx, dy
		combined := parent.compose(comp)
		if otf.outlineGlyfTransform(componentGID, sink, depth+1, combined, coords) {
			ok = true
		}
		more = flags&0x0020 != 0 // MORE_COMPONENTS
		if off > len(b) {
			return ok
		}
		b = b[off:]
	}
	return ok
}

// f2dot14 decodes a 2.14 fixed-point component-scale value.
func f2dot14(v uint16) float64 {
	return float64(int16(v)) / 16384
}
