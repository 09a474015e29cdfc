package ot

import (
	"fmt"
	"unicode/utf16"
)

// NameTable holds naming records (font family, subfamily, full name,
// copyright, etc.), each addressed by a (platformID, encodingID,
// languageID, nameID) tuple and stored as raw bytes in the table's string
// storage area. Decoding platform-specific encodings (e.g. UTF-16BE for
// Windows/Unicode platforms, Mac Roman for platform 1) is left to the
// caller via NameBytes; NameString decodes the common UTF-16BE case.
type NameTable struct {
	tableBase
	records []NameRecord
}

// NameRecord is one entry of the name table's name record array.
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	offset     int
	length     int
}

func newNameTable(tag Tag, b binarySegm, offset, size uint32) *NameTable {
	t := &NameTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsName converts a generic TableSelf to a *NameTable, or nil if the
// underlying table is not a name table.
func (tself TableSelf) AsName() *NameTable {
	t, _ := safeSelf(tself).(*NameTable)
	return t
}

// Records returns a copy of all name records.
func (t *NameTable) Records() []NameRecord {
	if t == nil {
		return nil
	}
	recs := make([]NameRecord, len(t.records))
	copy(recs, t.records)
	return recs
}

// NameBytes returns the raw string bytes for the first record matching
// nameID, platformID and encodingID, or (nil, false) if none match.
func (t *NameTable) NameBytes(nameID, platformID, encodingID uint16) ([]byte, bool) {
	if t == nil {
		return nil, false
	}
	for _, r := range t.records {
		if r.NameID == nameID && r.PlatformID == platformID && r.EncodingID == encodingID {
			return t.data[r.offset : r.offset+r.length], true
		}
	}
	return nil, false
}

// NameString returns the UTF-16BE-decoded string for nameID, preferring
// the Windows Unicode BMP encoding (platform 3, encoding 1); it falls
// back to the Unicode platform (platform 0) if no Windows record exists.
func (t *NameTable) NameString(nameID uint16) (string, bool) {
	if b, ok := t.NameBytes(nameID, 3, 1); ok {
		return decodeUTF16BE(b), true
	}
	if b, ok := t.NameBytes(nameID, 0, 3); ok {
		return decodeUTF16BE(b), true
	}
	if b, ok := t.NameBytes(nameID, 0, 4); ok {
		return decodeUTF16BE(b), true
	}
	return "", false
}

func decodeUTF16BE(b []byte) string {
	n := len(b) / 2
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		units[i] = u16(b[i*2:])
	}
	return string(utf16.Decode(units))
}

// name IDs for common records (name table §1).
const (
	NameIDCopyright       = 0
	NameIDFontFamily      = 1
	NameIDFontSubfamily   = 2
	NameIDUniqueID        = 3
	NameIDFullName        = 4
	NameIDVersion         = 5
	NameIDPostScriptName  = 6
)

func parseName(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 6 {
		ec.addError(tag, "Size", "name table too small", SeverityCritical, offset)
		return nil, errFontFormat("name table incomplete")
	}
	t := newNameTable(tag, b, offset, size)
	count := int(b.U16(2))
	storageOffset := int(b.U16(4))
	const recordSize = 12
	need := 6 + count*recordSize
	if need > len(b) {
		return nil, fmt.Errorf("name table: %d records need %d bytes, have %d", count, need, len(b))
	}
	recs := make([]NameRecord, 0, count)
	for i := 0; i < count; i++ {
		rb := b[6+i*recordSize:]
		length := int(u16(rb[8:]))
		strOffset := storageOffset + int(u16(rb[10:]))
		if strOffset+length > len(b) {
			continue // tolerate a corrupt individual record rather than aborting the table
		}
		recs = append(recs, NameRecord{
			PlatformID: u16(rb),
			EncodingID: u16(rb[2:]),
			LanguageID: u16(rb[4:]),
			NameID:     u16(rb[6:]),
			offset:     strOffset,
			length:     length,
		})
	}
	t.records = recs
	return t, nil
}
