package ot

import "testing"

// buildItemVariationStore constructs a single-axis, single-region store
// with one delta set holding one item: a delta of +100 scaling fully at
// the axis peak (0, 1, 1) -- i.e. positive half of the axis only.
func buildItemVariationStore() binarySegm {
	// VariationRegionList: axisCount=1, regionCount=1, one axis record (start,peak,end) = (0,1,1)
	regionList := binarySegm{
		0, 1, // axisCount
		0, 1, // regionCount
	}
	s1, s2 := f2dot14bytes(0)
	p1, p2 := f2dot14bytes(1)
	e1, e2 := f2dot14bytes(1)
	regionList = append(regionList, s1, s2, p1, p2, e1, e2)

	// ItemVariationData: itemCount=1, shortDeltaCount=1, regionIndexCount=1, regionIndexes=[0], deltas=[[100]]
	ivd := binarySegm{
		0, 1, // itemCount
		0, 1, // shortDeltaCount
		0, 1, // regionIndexCount
		0, 0, // regionIndexes[0] = 0
		0, 100, // delta row: item 0, region 0 = 100 (short/int16)
	}

	// ItemVariationStore header: format(2)+regionListOffset(4)+itemVariationDataCount(2)+dataOffsets(4 each)
	header := binarySegm{
		0, 1, // format (ignored by parser)
		0, 0, 0, 0, // regionListOffset placeholder
		0, 1, // itemVariationDataCount
		0, 0, 0, 0, // dataOffsets[0] placeholder
	}
	regionListOffset := len(header)
	dataOffset := regionListOffset + len(regionList)
	putU32 := func(b binarySegm, off int, v uint32) {
		b[off] = byte(v >> 24)
		b[off+1] = byte(v >> 16)
		b[off+2] = byte(v >> 8)
		b[off+3] = byte(v)
	}
	putU32(header, 2, uint32(regionListOffset))
	putU32(header, 8, uint32(dataOffset))

	full := append(binarySegm{}, header...)
	full = append(full, regionList...)
	full = append(full, ivd...)
	return full
}

func TestItemVariationStoreDeltaAt(t *testing.T) {
	b := buildItemVariationStore()
	store, err := parseItemVariationStore(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.regions) != 1 || len(store.deltaSets) != 1 {
		t.Fatalf("expected 1 region and 1 delta set, got %d/%d", len(store.regions), len(store.deltaSets))
	}
	// at the peak coordinate (1.0), the full delta applies
	if got := store.deltaAt(0, 0, []float64{1.0}); got != 100 {
		t.Errorf("expected delta 100 at peak coordinate, got %v", got)
	}
	// at the default coordinate (0), no delta applies
	if got := store.deltaAt(0, 0, []float64{0}); got != 0 {
		t.Errorf("expected delta 0 at default coordinate, got %v", got)
	}
	// halfway to peak, half the delta applies
	if got := store.deltaAt(0, 0, []float64{0.5}); got < 49 || got > 51 {
		t.Errorf("expected delta ~50 halfway to peak, got %v", got)
	}
	// out of range (negative, outside [start,end]) contributes 0
	if got := store.deltaAt(0, 0, []float64{-0.5}); got != 0 {
		t.Errorf("expected delta 0 outside region bounds, got %v", got)
	}
}
