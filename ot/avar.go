package ot

// AVarTable remaps normalized (-1..0..+1) design-variation coordinates
// via a piecewise-linear segment map per axis ('avar'),
// applied after the linear fvar min/default/max normalization and before
// gvar/HVAR/VVAR/MVAR deltas are interpolated.
type AVarTable struct {
	tableBase
	SegmentMaps [][]AxisValueMapRecord
}

// AxisValueMapRecord is one (fromCoordinate, toCoordinate) correspondence
// point of an axis's piecewise-linear segment map, both in normalized
// -1..+1 space.
type AxisValueMapRecord struct {
	FromCoordinate float64
	ToCoordinate   float64
}

func newAVarTable(tag Tag, b binarySegm, offset, size uint32) *AVarTable {
	t := &AVarTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsAVar converts a generic TableSelf to a *AVarTable, or nil if the
// underlying table is not an avar table.
func (tself TableSelf) AsAVar() *AVarTable {
	t, _ := safeSelf(tself).(*AVarTable)
	return t
}

func parseAVar(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 8 {
		ec.addError(tag, "Size", "avar table too small", SeverityCritical, offset)
		return nil, errFontFormat("avar table incomplete")
	}
	t := newAVarTable(tag, b, offset, size)
	axisCount := int(b.U16(6))
	pos := 8
	maps := make([][]AxisValueMapRecord, axisCount)
	for i := 0; i < axisCount; i++ {
		if pos+2 > len(b) {
			return nil, errFontFormat("avar: segment map array truncated")
		}
		pairCount := int(b.U16(pos))
		pos += 2
		need := pos + pairCount*4
		if need > len(b) {
			return nil, errFontFormat("avar: axis value map out of bounds")
		}
		recs := make([]AxisValueMapRecord, pairCount)
		for j := 0; j < pairCount; j++ {
			rec := b[pos+j*4:]
			recs[j] = AxisValueMapRecord{
				FromCoordinate: f2dot14(rec.U16(0)),
				ToCoordinate:   f2dot14(rec.U16(2)),
			}
		}
		maps[i] = recs
		pos += pairCount * 4
	}
	t.SegmentMaps = maps
	return t, nil
}

// Apply maps a normalized coordinate on axis i through its piecewise
// linear segment map; axes without a segment map (or out of range) are
// passed through unchanged.
func (t *AVarTable) Apply(axis int, normalized float64) float64 {
	if t == nil || axis < 0 || axis >= len(t.SegmentMaps) {
		return normalized
	}
	recs := t.SegmentMaps[axis]
	if len(recs) == 0 {
		return normalized
	}
	if normalized <= recs[0].FromCoordinate {
		return recs[0].ToCoordinate
	}
	last := recs[len(recs)-1]
	if normalized >= last.FromCoordinate {
		return last.ToCoordinate
	}
	for i := 1; i < len(recs); i++ {
		if normalized <= recs[i].FromCoordinate {
			prev := recs[i-1]
			cur := recs[i]
			if cur.FromCoordinate == prev.FromCoordinate {
				return prev.ToCoordinate
			}
			frac := (normalized - prev.FromCoordinate) / (cur.FromCoordinate - prev.FromCoordinate)
			return prev.ToCoordinate + frac*(cur.ToCoordinate-prev.ToCoordinate)
		}
	}
	return normalized
}
