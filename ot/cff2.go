package ot

// CFF2Table holds a parsed CFF2 table ('CFF2'), the variable-font
// successor to CFF used by variable PostScript-flavored OpenType fonts.
// CFF2 charstrings drop width/hint-replacement operands CFF1 had and add
// a blend operator for variation deltas; ot evaluates only the default
// (unblended) outline; see DESIGN.md for the rationale.
type CFF2Table struct {
	tableBase
	charStrings cffIndex
	globalSubrs cffIndex
	localSubrs  cffIndex
}

func newCFF2Table(tag Tag, b binarySegm, offset, size uint32) *CFF2Table {
	t := &CFF2Table{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsCFF2 converts a generic TableSelf to a *CFF2Table, or nil if the
// underlying table is not a CFF2 table.
func (tself TableSelf) AsCFF2() *CFF2Table {
	t, _ := safeSelf(tself).(*CFF2Table)
	return t
}

// Glyph returns the raw CFF2 charstring for glyph index gid.
func (t *CFF2Table) Glyph(gid GlyphIndex) (binarySegm, bool) {
	if t == nil {
		return nil, false
	}
	return t.charStrings.get(int(gid))
}

// NumGlyphs returns the number of charstrings in this CFF2 table.
func (t *CFF2Table) NumGlyphs() int {
	if t == nil {
		return 0
	}
	return t.charStrings.count()
}

// parseCFF2 reads the CFF2 header, Top DICT (a single DICT, not wrapped
// in an INDEX as CFF1's Top DICT INDEX is), Global Subr INDEX, and the
// CharStrings INDEX it points to. If the Top DICT carries a Private
// entry, that Private DICT's local Subrs INDEX is kept as well. FDArray,
// FDSelect and VariationStore are not read.
func parseCFF2(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if len(b) < 5 {
		ec.addError(tag, "Size", "CFF2 table too small", SeverityCritical, offset)
		return nil, errInvalidCFFTable
	}
	t := newCFF2Table(tag, b, offset, size)
	hdrSize := int(b[2])
	topDictLength := int(b.U16(3))
	if hdrSize > len(b) || hdrSize+topDictLength > len(b) {
		return nil, errInvalidCFFTable
	}
	topDict, err := parseCFFDict(b[hdrSize : hdrSize+topDictLength])
	if err != nil {
		return nil, err
	}
	pos := hdrSize + topDictLength

	globalSubrs, _, err := parseCFFIndex(b[pos:])
	if err != nil {
		return nil, err
	}
	t.globalSubrs = globalSubrs

	charStringsOff, ok := dictOperand0(topDict, 17) // CharStrings, same op as CFF1
	if !ok || charStringsOff < 0 || int(charStringsOff) >= len(b) {
		return nil, errInvalidCFFTable
	}
	charStrings, _, err := parseCFFIndex(b[int(charStringsOff):])
	if err != nil {
		return nil, err
	}
	t.charStrings = charStrings

	// Private DICT (single font, non-CID case): gives the local Subrs
	// INDEX used by callsubr, same encoding as CFF1.
	for _, e := range topDict {
		if e.op == 18 && len(e.operands) == 2 {
			privSize, privOff := int(e.operands[0]), int(e.operands[1])
			if privOff < 0 || privOff+privSize > len(b) {
				break
			}
			privDict, err := parseCFFDict(b[privOff : privOff+privSize])
			if err != nil {
				break
			}
			if subrsOff, ok := dictOperand0(privDict, 19); ok {
				abs := privOff + int(subrsOff)
				if abs >= 0 && abs < len(b) {
					if subrs, _, err := parseCFFIndex(b[abs:]); err == nil {
						t.localSubrs = subrs
					}
				}
			}
		}
	}

	return t, nil
}

// outlineCFF2 interprets glyph gid's CFF2 charstring and emits its
// outline to sink, reusing the Type 2 interpreter: CFF2 charstrings are
// Type 2 charstrings without endchar-as-seac and without the leading
// width operand, and with blend (12 23) treated as a no-op that yields
// the unblended (default-instance) operands already on the stack.
func (otf *Font) outlineCFF2(gid GlyphIndex, sink OutlineSink) bool {
	if otf.CFF2 == nil {
		return false
	}
	cs, ok := otf.CFF2.Glyph(gid)
	if !ok {
		return false
	}
	interp := &type2Interp{
		cff:       &CFFTable{globalSubrs: otf.CFF2.globalSubrs, localSubrs: otf.CFF2.localSubrs, charStrings: otf.CFF2.charStrings},
		sink:      sink,
		widthDone: true, // CFF2 charstrings never carry a leading width operand
	}
	interp.run(cs, 0)
	if interp.open {
		sink.Close()
	}
	return interp.err == nil && interp.hadMoveTo
}
