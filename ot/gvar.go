package ot

// GVarTable carries per-glyph, per-axis-tuple point-position deltas for
// TrueType outlines ('gvar'): applying it shifts glyf contour points to
// produce the outline at a given location in the variation space. Unlike
// HVAR/VVAR/MVAR, gvar deltas are stored per glyph as tuple variation
// data, not in a shared ItemVariationStore.
type GVarTable struct {
	tableBase
	axisCount      int
	sharedTuples   [][]float64 // each is one normalized coordinate per axis
	glyphVarOffset []uint32    // numGlyphs+1 offsets into the variation data area, like loca
	dataOffset     int
}

func newGVarTable(tag Tag, b binarySegm, offset, size uint32) *GVarTable {
	t := &GVarTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsGVar converts a generic TableSelf to a *GVarTable, or nil if the
// underlying table is not a gvar table.
func (tself TableSelf) AsGVar() *GVarTable {
	t, _ := safeSelf(tself).(*GVarTable)
	return t
}

func parseGVar(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 20 {
		ec.addError(tag, "Size", "gvar table too small", SeverityCritical, offset)
		return nil, errFontFormat("gvar table incomplete")
	}
	t := newGVarTable(tag, b, offset, size)
	axisCount := int(b.U16(4))
	sharedTupleCount := int(b.U16(6))
	sharedTuplesOffset := int(b.U32(8))
	glyphCount := int(b.U16(12))
	flags := b.U16(14)
	glyphVarDataArrayOffset := int(b.U32(16))
	t.axisCount = axisCount
	t.dataOffset = glyphVarDataArrayOffset

	long := flags&0x0001 != 0
	offSize := 2
	if long {
		offSize = 4
	}
	offArrayStart := 20
	need := offArrayStart + (glyphCount+1)*offSize
	if need > len(b) {
		return nil, errFontFormat("gvar: glyph variation data offset array out of bounds")
	}
	offsets := make([]uint32, glyphCount+1)
	for i := 0; i <= glyphCount; i++ {
		if long {
			offsets[i] = b.U32(offArrayStart + i*4)
		} else {
			offsets[i] = uint32(b.U16(offArrayStart+i*2)) * 2
		}
	}
	t.glyphVarOffset = offsets

	if sharedTupleCount > 0 {
		need := sharedTuplesOffset + sharedTupleCount*axisCount*2
		if need > len(b) {
			return nil, errFontFormat("gvar: shared tuples out of bounds")
		}
		tuples := make([][]float64, sharedTupleCount)
		for i := 0; i < sharedTupleCount; i++ {
			coords := make([]float64, axisCount)
			for a := 0; a < axisCount; a++ {
				coords[a] = f2dot14(b.U16(sharedTuplesOffset + (i*axisCount+a)*2))
			}
			tuples[i] = coords
		}
		t.sharedTuples = tuples
	}
	return t, nil
}

// glyphVariationData returns the raw per-glyph tuple variation data
// blob for gid, or nil if gid has no variation data (a common case:
// glyphs unaffected by any axis need none).
func (t *GVarTable) glyphVariationData() func(gid GlyphIndex) binarySegm {
	return func(gid GlyphIndex) binarySegm {
		i := int(gid)
		if t == nil || i+1 >= len(t.glyphVarOffset) {
			return nil
		}
		start, end := t.dataOffset+int(t.glyphVarOffset[i]), t.dataOffset+int(t.glyphVarOffset[i+1])
		if end <= start || end > len(t.data) {
			return nil
		}
		return t.data[start:end]
	}
}

// ApplyDeltas computes the instanced (x, y) positions for a simple
// glyph's points at normalized design coordinates, applying gvar's tuple
// variation deltas and the IUP (inferred un-referenced point) algorithm
// to interpolate points not explicitly carried in a given tuple.
//
// xs, ys and onCurve describe the glyph's contour points only; the 4
// phantom points TrueType variation appends after them are not passed
// by the caller (varyPoints), so a tuple that covers all points is read
// as carrying exactly len(xs) deltas per axis. endPts gives each
// contour's last point index, as in glyf.
func (t *GVarTable) ApplyDeltas(gid GlyphIndex, coords []float64, xs, ys []int32, onCurve []bool, endPts []int) ([]float64, []float64) {
	outX := make([]float64, len(xs))
	outY := make([]float64, len(ys))
	for i := range xs {
		outX[i] = float64(xs[i])
		outY[i] = float64(ys[i])
	}
	if t == nil || len(coords) == 0 {
		return outX, outY
	}
	data := t.glyphVariationData()(gid)
	if data == nil {
		return outX, outY
	}
	tuples, serializedOffset, err := parseTupleVariationHeaders(data, t.axisCount, len(xs), true)
	if err != nil {
		return outX, outY
	}
	if serializedOffset > len(data) {
		return outX, outY
	}
	serialized := data[serializedOffset:]
	for _, tv := range tuples {
		end := tv.dataOffset + tv.dataLength
		if end > len(serialized) {
			continue
		}
		tupleCoords := tv.peak
		if tv.sharedIndex >= 0 && tv.sharedIndex < len(t.sharedTuples) {
			tupleCoords = t.sharedTuples[tv.sharedIndex]
		}
		scalar := tupleScalar(tupleCoords, tv.intermediateStart, tv.intermediateEnd, coords)
		if scalar == 0 {
			continue
		}
		dx, dy, points, priv, err := parseTuplePointDeltas(serialized[tv.dataOffset:end], len(xs), tv.privatePointNumbers)
		if err != nil {
			continue
		}
		_ = priv
		applyTupleDeltas(outX, outY, points, dx, dy, scalar, onCurve, endPts)
	}
	return outX, outY
}

// tupleVariationHeader is one decoded entry of a tuple variation table's
// header array (shared between gvar and cvar; ot implements only gvar).
type tupleVariationHeader struct {
	dataLength          int
	sharedIndex         int // -1 if this header carries its own peak tuple
	peak                []float64
	intermediateStart   []float64
	intermediateEnd     []float64
	privatePointNumbers bool
	dataOffset          int // offset into the serialized-data area
}

const (
	tvhEmbeddedPeakTuple      = 0x8000
	tvhIntermediateRegion     = 0x4000
	tvhPrivatePointNumbers    = 0x2000
	tvhTupleIndexMask         = 0x0FFF
)

func parseTupleVariationHeaders(data binarySegm, axisCount, pointCount int, isGvar bool) ([]tupleVariationHeader, int, error) {
	if len(data) < 4 {
		return nil, 0, errFontFormat("tuple variation: header too small")
	}
	tupleCount := int(data.U16(0))
	count := tupleCount & 0x0FFF
	dataArrayOffset := int(data.U16(2))
	pos := 4
	headers := make([]tupleVariationHeader, 0, count)
	for i := 0; i < count; i++ {
		if pos+4 > len(data) {
			break
		}
		h := tupleVariationHeader{sharedIndex: -1}
		h.dataLength = int(data.U16(pos))
		flagsAndIndex := data.U16(pos + 2)
		pos += 4
		hasPeak := flagsAndIndex&tvhEmbeddedPeakTuple != 0
		hasIntermediate := flagsAndIndex&tvhIntermediateRegion != 0
		h.privatePointNumbers = flagsAndIndex&tvhPrivatePointNumbers != 0
		if !hasPeak {
			h.sharedIndex = int(flagsAndIndex & tvhTupleIndexMask)
		}
		if hasPeak {
			if pos+axisCount*2 > len(data) {
				break
			}
			h.peak = readF2Dot14Array(data, pos, axisCount)
			pos += axisCount * 2
		}
		if hasIntermediate {
			if pos+axisCount*4 > len(data) {
				break
			}
			h.intermediateStart = readF2Dot14Array(data, pos, axisCount)
			pos += axisCount * 2
			h.intermediateEnd = readF2Dot14Array(data, pos, axisCount)
			pos += axisCount * 2
		}
		headers = append(headers, h)
	}
	// Assign each header's data slice a running offset into the serialized
	// data area, since dataLength is given but the actual point-number /
	// delta payload only starts at dataArrayOffset.
	running := 0
	for i := range headers {
		headers[i].dataOffset = running
		running += headers[i].dataLength
	}
	return headers, dataArrayOffset, nil
}

func readF2Dot14Array(b binarySegm, pos, n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = f2dot14(b.U16(pos + i*2))
	}
	return out
}

// tupleScalar computes a tuple variation's interpolation scalar for the
// current design coordinates against its peak (and, if present,
// intermediate start/end) tuple.
func tupleScalar(peak, lo, hi []float64, coords []float64) float64 {
	scalar := 1.0
	for i, p := range peak {
		var v float64
		if i < len(coords) {
			v = coords[i]
		}
		if p == 0 {
			continue
		}
		var start, end float64
		if lo != nil && hi != nil {
			start, end = lo[i], hi[i]
		} else if p > 0 {
			start, end = 0, p
		} else {
			start, end = p, 0
		}
		switch {
		case v == p:
			continue
		case v <= start || v >= end:
			return 0
		case v < p:
			if start == p {
				continue
			}
			scalar *= (v - start) / (p - start)
		default:
			if end == p {
				continue
			}
			scalar *= (end - v) / (end - p)
		}
	}
	return scalar
}

// parseTuplePointDeltas decodes one tuple variation's point-number list
// (or "all points" if privatePointNumbers is false and no list is
// present) and its packed X/Y deltas.
func parseTuplePointDeltas(b binarySegm, totalPoints int, hasPrivatePoints bool) (dx, dy []int32, points []int, explicit bool, err error) {
	pos := 0
	if hasPrivatePoints {
		points, pos, err = parsePackedPointNumbers(b, totalPoints)
		if err != nil {
			return nil, nil, nil, false, err
		}
		explicit = true
	} else {
		points = nil // nil means "all points", interpreted by the caller
	}
	n := totalPoints
	if points != nil {
		n = len(points)
	}
	dx, pos, err = parsePackedDeltas(b, pos, n)
	if err != nil {
		return nil, nil, nil, false, err
	}
	dy, _, err = parsePackedDeltas(b, pos, n)
	if err != nil {
		return nil, nil, nil, false, err
	}
	return dx, dy, points, explicit, nil
}

func parsePackedPointNumbers(b binarySegm, totalPoints int) ([]int, int, error) {
	if len(b) < 1 {
		return nil, 0, errFontFormat("gvar: packed point numbers truncated")
	}
	count := int(b[0])
	pos := 1
	if count == 0 {
		return nil, pos, nil // explicit-but-empty: "all points" per spec convention
	}
	if count&0x80 != 0 {
		if len(b) < 2 {
			return nil, 0, errFontFormat("gvar: packed point numbers truncated")
		}
		count = (count&0x7F)<<8 | int(b[1])
		pos = 2
	}
	points := make([]int, 0, count)
	cur := 0
	for len(points) < count {
		if pos >= len(b) {
			return nil, 0, errFontFormat("gvar: packed point numbers truncated")
		}
		control := b[pos]
		pos++
		runCount := int(control&0x7F) + 1
		words := control&0x80 != 0
		for i := 0; i < runCount && len(points) < count; i++ {
			var delta int
			if words {
				if pos+2 > len(b) {
					return nil, 0, errFontFormat("gvar: packed point numbers truncated")
				}
				delta = int(b.U16(pos))
				pos += 2
			} else {
				if pos >= len(b) {
					return nil, 0, errFontFormat("gvar: packed point numbers truncated")
				}
				delta = int(b[pos])
				pos++
			}
			cur += delta
			points = append(points, cur)
		}
	}
	return points, pos, nil
}

func parsePackedDeltas(b binarySegm, pos, count int) ([]int32, int, error) {
	deltas := make([]int32, 0, count)
	for len(deltas) < count {
		if pos >= len(b) {
			return nil, 0, errFontFormat("gvar: packed deltas truncated")
		}
		control := b[pos]
		pos++
		runCount := int(control&0x3F) + 1
		switch {
		case control&0x80 != 0: // DELTAS_ARE_ZERO
			for i := 0; i < runCount && len(deltas) < count; i++ {
				deltas = append(deltas, 0)
			}
		case control&0x40 != 0: // DELTAS_ARE_WORDS
			for i := 0; i < runCount && len(deltas) < count; i++ {
				if pos+2 > len(b) {
					return nil, 0, errFontFormat("gvar: packed deltas truncated")
				}
				deltas = append(deltas, int32(int16(b.U16(pos))))
				pos += 2
			}
		default:
			for i := 0; i < runCount && len(deltas) < count; i++ {
				if pos >= len(b) {
					return nil, 0, errFontFormat("gvar: packed deltas truncated")
				}
				deltas = append(deltas, int32(int8(b[pos])))
				pos++
			}
		}
	}
	return deltas, pos, nil
}

// applyTupleDeltas adds one tuple's scaled deltas into outX/outY, using
// the IUP (inferred un-referenced point) algorithm to interpolate points
// the tuple's point-number list omits.
func applyTupleDeltas(outX, outY []float64, points []int, dx, dy []int32, scalar float64, onCurve []bool, endPts []int) {
	n := len(outX)
	if points == nil { // explicit deltas for every point, in order
		for i := 0; i < n && i < len(dx); i++ {
			outX[i] += float64(dx[i]) * scalar
			outY[i] += float64(dy[i]) * scalar
		}
		return
	}
	have := make([]bool, n)
	appliedX := make([]float64, n)
	appliedY := make([]float64, n)
	for i, p := range points {
		if p < 0 || p >= n || i >= len(dx) {
			continue
		}
		appliedX[p] = float64(dx[i]) * scalar
		appliedY[p] = float64(dy[i]) * scalar
		have[p] = true
		outX[p] += appliedX[p]
		outY[p] += appliedY[p]
	}
	inferUnreferencedPoints(outX, appliedX, have, endPts)
	inferUnreferencedPoints(outY, appliedY, have, endPts)
}

// inferUnreferencedPoints fills in deltas for points not explicitly given
// a delta, by linear interpolation between the nearest explicitly-deltad
// points on either side within the same contour (the IUP algorithm,
// applied to one axis at a time since gvar's packed format is the same
// shape for X and Y).
func inferUnreferencedPoints(coord, applied []float64, have []bool, endPts []int) {
	start := 0
	for _, end := range endPts {
		inferContour(coord, applied, have, start, end)
		start = end + 1
	}
}

func inferContour(coord, applied []float64, have []bool, start, end int) {
	n := end - start + 1
	if n <= 0 {
		return
	}
	anyHave := false
	for i := start; i <= end; i++ {
		if have[i] {
			anyHave = true
			break
		}
	}
	if !anyHave {
		return // no reference points in this contour: leave untouched (delta 0)
	}
	for i := start; i <= end; i++ {
		if have[i] {
			continue
		}
		prev, next := i, i
		for {
			prev--
			if prev < start {
				prev = end
			}
			if have[prev] || prev == i {
				break
			}
		}
		for {
			next++
			if next > end {
				next = start
			}
			if have[next] || next == i {
				break
			}
		}
		if prev == i || next == i {
			continue
		}
		coord[i] += applied[prev] + (applied[next]-applied[prev])*float64(normMod(i-prev, n))/float64(normMod(next-prev, n))
	}
}

func normMod(v, n int) int {
	for v <= 0 {
		v += n
	}
	return v
}
