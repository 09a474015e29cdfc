package ot

// PostTable carries PostScript information: the italic angle and
// underline metrics used for synthetic styling, the fixed-pitch flag, and
// — for version 2.0 — per-glyph PostScript names.
type PostTable struct {
	tableBase
	Version            uint32
	ItalicAngle        int32 // 16.16 fixed-point
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       bool
	glyphNameIndex     []uint16 // version 2.0 only: index into standard Macintosh names or pascalStrings
	pascalStrings      []string
}

func newPostTable(tag Tag, b binarySegm, offset, size uint32) *PostTable {
	t := &PostTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsPost converts a generic TableSelf to a *PostTable, or nil if the
// underlying table is not a post table.
func (tself TableSelf) AsPost() *PostTable {
	t, _ := safeSelf(tself).(*PostTable)
	return t
}

// GlyphName returns the PostScript name for a glyph, if the table is
// version 2.0 and carries a name for it.
func (t *PostTable) GlyphName(g GlyphIndex) (string, bool) {
	if t == nil || t.Version != 0x00020000 || int(g) >= len(t.glyphNameIndex) {
		return "", false
	}
	idx := t.glyphNameIndex[g]
	if idx < 258 {
		if int(idx) < len(macGlyphNames) {
			return macGlyphNames[idx], true
		}
		return "", false
	}
	i := int(idx) - 258
	if i < 0 || i >= len(t.pascalStrings) {
		return "", false
	}
	return t.pascalStrings[i], true
}

func parsePost(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 32 {
		ec.addError(tag, "Size", "post table too small", SeverityCritical, offset)
		return nil, errFontFormat("post table incomplete")
	}
	t := newPostTable(tag, b, offset, size)
	t.Version = u32(b)
	t.ItalicAngle = int32(u32(b[4:]))
	t.UnderlinePosition = int16(b.U16(8))
	t.UnderlineThickness = int16(b.U16(10))
	t.IsFixedPitch = u32(b[12:]) != 0

	if t.Version == 0x00020000 {
		if len(b) < 34 {
			return t, nil // malformed v2 table degrades to header-only fields
		}
		numGlyphs := int(b.U16(32))
		need := 34 + numGlyphs*2
		if len(b) < need {
			return t, nil
		}
		idx := make([]uint16, numGlyphs)
		for i := 0; i < numGlyphs; i++ {
			idx[i] = b.U16(34 + i*2)
		}
		t.glyphNameIndex = idx

		rest := b[need:]
		var names []string
		for len(rest) > 0 {
			n := int(rest[0])
			if n+1 > len(rest) {
				break
			}
			names = append(names, string(rest[1:1+n]))
			rest = rest[1+n:]
		}
		t.pascalStrings = names
	}
	return t, nil
}

// macGlyphNames holds the first 98 names (indices 0-97, .notdef through
// asciitilde) of the standard Macintosh glyph-name order used by post
// table version 2.0 for indices below 258. GlyphName reports no name for
// a standard index of 98-257.
var macGlyphNames = [...]string{
	".notdef", ".null", "nonmarkingreturn", "space", "exclam", "quotedbl",
	"numbersign", "dollar", "percent", "ampersand", "quotesingle",
	"parenleft", "parenright", "asterisk", "plus", "comma", "hyphen",
	"period", "slash", "zero", "one", "two", "three", "four", "five",
	"six", "seven", "eight", "nine", "colon", "semicolon", "less",
	"equal", "greater", "question", "at", "A", "B", "C", "D", "E", "F",
	"G", "H", "I", "J", "K", "L", "M", "N", "O", "P", "Q", "R", "S", "T",
	"U", "V", "W", "X", "Y", "Z", "bracketleft", "backslash",
	"bracketright", "asciicircum", "underscore", "grave", "a", "b", "c",
	"d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p", "q",
	"r", "s", "t", "u", "v", "w", "x", "y", "z", "braceleft", "bar",
	"braceright", "asciitilde",
}
