package ot

import "testing"

func buildHead() binarySegm {
	b := make(binarySegm, 54)
	b[16], b[17] = 0, 0x0B // flags = 0x000B
	b[18], b[19] = 0x04, 0x00 // unitsPerEm = 1024
	b[50], b[51] = 0, 1 // indexToLocFormat = 1 (long)
	return b
}

func TestParseHead(t *testing.T) {
	b := buildHead()
	tbl, err := parseHead(T("head"), b, 0, uint32(len(b)), &errorCollector{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := tbl.(*HeadTable)
	if h.UnitsPerEm != 1024 {
		t.Errorf("expected unitsPerEm 1024, got %d", h.UnitsPerEm)
	}
	if h.IndexToLocFormat != 1 {
		t.Errorf("expected indexToLocFormat 1, got %d", h.IndexToLocFormat)
	}
	if h.Flags != 0x0B {
		t.Errorf("expected flags 0x0B, got %#x", h.Flags)
	}
}

func TestParseHeadTooSmall(t *testing.T) {
	b := make(binarySegm, 10)
	if _, err := parseHead(T("head"), b, 0, uint32(len(b)), &errorCollector{}); err == nil {
		t.Errorf("expected error for undersized head table")
	}
}
