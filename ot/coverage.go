package ot

// A Coverage table specifies all the glyphs affected by a layout operation
// described in a lookup subtable or referenced from GDEF (e.g. a mark glyph
// set). If a glyph does not appear in a Coverage table, the client can skip
// that subtable and move immediately to the next one.
//
// Coverage comes in two on-disk formats: format 1 is a sorted array of
// glyph IDs, format 2 is a sorted array of glyph-ID range records. Both are
// represented uniformly via the GlyphRange interface (see bytes.go).
type Coverage struct {
	coverageHeader
	GlyphRange GlyphRange
}

// Match returns the Coverage Index for a glyph, and true if present.
func (c Coverage) Match(g GlyphIndex) (int, bool) {
	if c.GlyphRange == nil {
		return 0, false
	}
	return c.GlyphRange.Match(g)
}

// Contains reports whether a glyph is present in the coverage.
func (c Coverage) Contains(g GlyphIndex) bool {
	_, ok := c.Match(g)
	return ok
}

type coverageHeader struct {
	CoverageFormat uint16
	Count          uint16
}

func buildGlyphRangeFromCoverage(chead coverageHeader, b binarySegm) GlyphRange {
	tracer().Debugf("coverage format = %d, count = %d", chead.CoverageFormat, chead.Count)
	if chead.CoverageFormat == 1 {
		return &glyphRangeArray{
			count:    int(chead.Count),
			data:     b[4:],
			byteSize: int(4 + chead.Count*2),
		}
	}
	return &glyphRangeRecords{
		count:    int(chead.Count),
		data:     b[4:],
		byteSize: int(4 + chead.Count*6),
	}
}

// parseCoverage reads a coverage table-module, which comes in two formats
// (1 and 2). A Coverage table defines a unique index value, the Coverage
// Index, for each covered glyph.
func parseCoverage(b binarySegm) Coverage {
	tracer().Debugf("parsing Coverage")
	if len(b) < 4 {
		tracer().Errorf("coverage table too small")
		return Coverage{}
	}
	h := coverageHeader{}
	h.CoverageFormat = b.U16(0)
	h.Count = b.U16(2)
	tracer().Debugf("coverage header format %d has count = %d ", h.CoverageFormat, h.Count)

	switch h.CoverageFormat {
	case 1:
		requiredSize := 4 + int(h.Count)*2
		if len(b) < requiredSize {
			tracer().Errorf("coverage format 1 extends beyond bounds: need %d, have %d",
				requiredSize, len(b))
			return Coverage{}
		}
	case 2:
		requiredSize := 4 + int(h.Count)*6
		if len(b) < requiredSize {
			tracer().Errorf("coverage format 2 extends beyond bounds: need %d, have %d",
				requiredSize, len(b))
			return Coverage{}
		}
	default:
		tracer().Errorf("unknown coverage format %d", h.CoverageFormat)
		return Coverage{}
	}

	return Coverage{
		coverageHeader: h,
		GlyphRange:     buildGlyphRangeFromCoverage(h, b),
	}
}
