package ot

import "testing"

// buildName constructs a name table with a single Windows-platform
// (platform 3, encoding 1, language 0x409) record for NameIDFontFamily
// ("Ab" encoded as UTF-16BE).
func buildName() binarySegm {
	header := binarySegm{
		0, 0, // format
		0, 1, // count
		0, 18, // storageOffset (right after the 1 record, 6+12=18)
	}
	record := binarySegm{
		0, 3, // platformID = 3 (Windows)
		0, 1, // encodingID = 1 (Unicode BMP)
		4, 9, // languageID = 0x0409
		0, 1, // nameID = 1 (font family)
		0, 4, // length = 4 bytes ("Ab" as UTF-16BE)
		0, 0, // offset = 0 (relative to storage area)
	}
	storage := binarySegm{0, 'A', 0, 'b'}
	full := append(binarySegm{}, header...)
	full = append(full, record...)
	full = append(full, storage...)
	return full
}

func TestParseNameAndNameString(t *testing.T) {
	b := buildName()
	tbl, err := parseName(T("name"), b, 0, uint32(len(b)), &errorCollector{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := tbl.(*NameTable)
	s, ok := n.NameString(NameIDFontFamily)
	if !ok || s != "Ab" {
		t.Errorf("expected font family \"Ab\", got %q ok=%v", s, ok)
	}
	if _, ok := n.NameString(NameIDPostScriptName); ok {
		t.Errorf("expected no PostScript name record to be present")
	}
}
