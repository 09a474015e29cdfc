package ot

import "testing"

func buildOS2() binarySegm {
	b := make(binarySegm, 78)
	b[0], b[1] = 0, 4 // version
	b[4], b[5] = 0x02, 0xBC // weightClass = 700
	b[68], b[69] = 0x03, 0x00 // typoAscender = 768
	b[70], b[71] = 0xFE, 0x0C // typoDescender = -500
	b[72], b[73] = 0, 200 // typoLineGap = 200
	b[74], b[75] = 0x03, 0x00 // winAscent = 768
	b[76], b[77] = 0x02, 0x00 // winDescent = 512
	return b
}

func TestParseOS2(t *testing.T) {
	b := buildOS2()
	tbl, err := parseOS2(T("OS/2"), b, 0, uint32(len(b)), &errorCollector{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o := tbl.(*OS2Table)
	if o.WeightClass != 700 {
		t.Errorf("expected weightClass 700, got %d", o.WeightClass)
	}
	if o.TypoAscender != 768 {
		t.Errorf("expected typoAscender 768, got %d", o.TypoAscender)
	}
	if o.TypoDescender != -500 {
		t.Errorf("expected typoDescender -500, got %d", o.TypoDescender)
	}
	if o.WinAscent != 768 || o.WinDescent != 512 {
		t.Errorf("expected winAscent 768 / winDescent 512, got %d/%d", o.WinAscent, o.WinDescent)
	}
}
