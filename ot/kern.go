package ot

import "fmt"

// KernTable holds format-0 kerning sub-tables: ordered glyph-pair kerning
// values, the only format both historic Mac (Apple 'kern' version
// 0x00010000) and Windows/OpenType fonts agree on. Format 2 (class-pair)
// and AAT-only extensions are not supported, matching the scope of the
// rest of the package.
type KernTable struct {
	tableBase
	headers []kernSubTableHeader
}

// kernSubTableHeader locates a format-0 kern sub-table's pair array
// (directory holds nPairs/searchRange/entrySelector/rangeShift, used for
// an optional binary search over sorted pairs).
type kernSubTableHeader struct {
	directory [4]uint16
	offset    uint16 // start position of this sub-table's kern pairs, relative to table start
	length    uint32 // size of the sub-table's pair array in bytes
	coverage  uint16 // info about type of information contained in this sub-table
}

func newKernTable(tag Tag, b binarySegm, offset, size uint32) *KernTable {
	t := &KernTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsKern converts a generic TableSelf to a *KernTable, or nil if the
// underlying table is not a kern table.
func (tself TableSelf) AsKern() *KernTable {
	t, _ := safeSelf(tself).(*KernTable)
	return t
}

// Kerning returns the kerning adjustment (in font design units) for a
// left/right glyph pair, searching every format-0 sub-table in order.
// Returns (0, false) if no sub-table lists the pair.
func (t *KernTable) Kerning(left, right GlyphIndex) (int16, bool) {
	if t == nil {
		return 0, false
	}
	for _, h := range t.headers {
		nPairs := int(h.directory[0])
		pairs := t.data[h.offset:]
		if nPairs*6 > len(pairs) {
			continue
		}
		lo, hi := 0, nPairs
		for lo < hi {
			mid := (lo + hi) / 2
			rec := pairs[mid*6 : mid*6+6]
			l, r := GlyphIndex(u16(rec)), GlyphIndex(u16(rec[2:]))
			switch {
			case l < left || (l == left && r < right):
				lo = mid + 1
			case l > left || (l == left && r > right):
				hi = mid
			default:
				return int16(u16(rec[4:])), true
			}
		}
	}
	return 0, false
}

// TrueType and OpenType slightly differ on formats of kern tables: see
// https://developer.apple.com/fonts/TrueType-Reference-Manual/RM06/Chap6kern.html
// and https://docs.microsoft.com/en-us/typography/opentype/spec/kern.
//
// parseKern parses the kern table. There is significant confusion about
// this table's format across OpenType, TrueType, and fonts in the wild.
// Only format 0 is supported, which every platform agrees on; in
// practice most fonts carry exactly one format-0 sub-table.
func parseKern(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size <= 4 {
		return nil, nil
	}
	var n, suboffset, subheaderlen int
	if version := u32(b); version == 0x00010000 {
		tracer().Debugf("font has Apple TTF kern table format")
		m, _ := b.u32(4)
		n, suboffset, subheaderlen = int(m), 8, 16
	} else {
		tracer().Debugf("font has OTF (MS) kern table format")
		m, _ := b.u16(2)
		n, suboffset, subheaderlen = int(m), 4, 14
	}
	tracer().Debugf("kern table has %d sub-tables", n)
	t := newKernTable(tag, b, offset, size)
	for i := 0; i < n; i++ {
		if suboffset+subheaderlen >= int(size) {
			ec.addError(tag, "Format", fmt.Sprintf("sub-table %d header exceeds table size", i), SeverityCritical, offset+uint32(suboffset))
			return nil, errFontFormat("kern table format")
		}
		h := kernSubTableHeader{
			offset:   uint16(suboffset + subheaderlen),
			length:   uint32(u16(b[suboffset+2:]) - uint16(subheaderlen)),
			coverage: u16(b[suboffset+4:]),
		}
		if format := h.coverage >> 8; format != 0 {
			tracer().Infof("kern sub-table format %d not supported, ignoring sub-table", format)
			suboffset += int(subheaderlen) + int(u16(b[suboffset+2:])-uint16(subheaderlen))
			continue
		}
		h.directory = [4]uint16{
			u16(b[suboffset+subheaderlen-8:]),
			u16(b[suboffset+subheaderlen-6:]),
			u16(b[suboffset+subheaderlen-4:]),
			u16(b[suboffset+subheaderlen-2:]),
		}
		kerncnt := uint32(h.directory[0])
		tracer().Debugf("kern sub-table has %d entries", kerncnt)
		sz, err := checkedMulUint32(kerncnt, 6)
		if err != nil {
			ec.addError(tag, "Size", fmt.Sprintf("sub-table %d size overflow: %v", i, err), SeverityCritical, offset+uint32(suboffset))
			return nil, errFontFormat(fmt.Sprintf("kern sub-table size overflow: %v", err))
		}
		if sz != h.length {
			tracer().Infof("kern sub-table size should be 0x%x, but given as 0x%x; fixing", sz, h.length)
			ec.addWarning(tag, fmt.Sprintf("kern sub-table size mismatch: expected 0x%x, got 0x%x", sz, h.length), offset+uint32(suboffset))
		}
		if uint32(suboffset)+sz >= size {
			ec.addError(tag, "Bounds", fmt.Sprintf("sub-table %d exceeds table bounds", i), SeverityCritical, offset+uint32(suboffset))
			return nil, errFontFormat("kern sub-table size exceeds kern table bounds")
		}
		t.headers = append(t.headers, h)
		suboffset += int(subheaderlen) + int(h.length)
	}
	tracer().Debugf("table kern has %d sub-table(s)", len(t.headers))
	return t, nil
}
