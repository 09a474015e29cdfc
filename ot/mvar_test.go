package ot

import "testing"

// buildMVar constructs an MVAR table with one value record (hasc ->
// outer 0, inner 0) pointing at the item-variation store built by
// buildItemVariationStore.
func buildMVar() binarySegm {
	header := binarySegm{
		0, 1, 0, 0, // version (majorVersion, minorVersion)
		0, 0, // reserved
		0, 8, // valueRecordSize
		0, 1, // valueRecordCount
		0, 0, // itemVariationStoreOffset placeholder (Offset16)
	}
	storeOffset := len(header) + 8 // one value record follows the header
	header[10] = byte(storeOffset >> 8)
	header[11] = byte(storeOffset)

	record := binarySegm{'h', 'a', 's', 'c', 0, 0, 0, 0} // outerIndex=0, innerIndex=0

	full := append(binarySegm{}, header...)
	full = append(full, record...)
	full = append(full, buildItemVariationStore()...)
	return full
}

func TestParseMVarDelta(t *testing.T) {
	b := buildMVar()
	tbl, err := parseMVar(T("MVAR"), b, 0, uint32(len(b)), &errorCollector{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mv := tbl.(*MVarTable)
	if got := mv.Delta(MVarTagHHeaAscender, []float64{1.0}); got != 100 {
		t.Errorf("expected hasc delta 100 at peak coordinate, got %v", got)
	}
	if got := mv.Delta(MVarTagHHeaDescender, []float64{1.0}); got != 0 {
		t.Errorf("expected 0 delta for a tag with no record, got %v", got)
	}
}
