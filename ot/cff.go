package ot

import (
	"fmt"
	"math"
	"strconv"
)

// CFFTable holds a parsed Compact Font Format table ('CFF '), used by
// PostScript-flavored OpenType fonts in place of glyf/loca. Only the
// pieces needed to evaluate glyph outlines are retained: the CharStrings
// INDEX and the global/local Subrs INDEXes referenced by Type 2
// charstrings. The Name and String INDEXes are walked only to find what
// follows them; Top DICT entries outside that path (Encoding, charset)
// are ignored.
type CFFTable struct {
	tableBase
	charStrings   cffIndex
	globalSubrs   cffIndex
	localSubrs    cffIndex
	fdLocalSubrs  []cffIndex // not populated: parseCFF does not read FDArray
	fdSelect      []uint8    // not populated: parseCFF does not read FDSelect, so CID-keyed fonts use only the Top DICT's Private DICT
	charstringType int32
	fontMatrix    [6]float64
	defaultWidthX float64
	nominalWidthX float64
}

func newCFFTable(tag Tag, b binarySegm, offset, size uint32) *CFFTable {
	t := &CFFTable{charstringType: 2, fontMatrix: [6]float64{0.001, 0, 0, 0.001, 0, 0}}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsCFF converts a generic TableSelf to a *CFFTable, or nil if the
// underlying table is not a CFF table.
func (tself TableSelf) AsCFF() *CFFTable {
	t, _ := safeSelf(tself).(*CFFTable)
	return t
}

// cffIndex is a parsed CFF INDEX: count+1 byte offsets into data, giving
// count variable-length records by slicing data[offsets[i]:offsets[i+1]].
type cffIndex struct {
	data    binarySegm
	offsets []uint32
}

func (idx cffIndex) count() int { return len(idx.offsets) - 1 }

func (idx cffIndex) get(i int) (binarySegm, bool) {
	if i < 0 || i >= idx.count() {
		return nil, false
	}
	return idx.data[idx.offsets[i]:idx.offsets[i+1]], true
}

// bias is the Type 2 charstring subroutine index bias (5177.Type2.pdf §4.7).
func (idx cffIndex) bias() int32 {
	n := idx.count()
	switch {
	case n < 1240:
		return 107
	case n < 33900:
		return 1131
	default:
		return 32768
	}
}

var errInvalidCFFTable = fmt.Errorf("cff: invalid or truncated table")

// parseCFFIndex reads one INDEX structure starting at b[0:], returning the
// parsed index and the byte offset immediately following it.
func parseCFFIndex(b binarySegm) (cffIndex, int, error) {
	if len(b) < 2 {
		return cffIndex{}, 0, errInvalidCFFTable
	}
	count := int(b.U16(0))
	if count == 0 {
		return cffIndex{}, 2, nil
	}
	if len(b) < 3 {
		return cffIndex{}, 0, errInvalidCFFTable
	}
	offSize := int(b[2])
	if offSize < 1 || offSize > 4 {
		return cffIndex{}, 0, errInvalidCFFTable
	}
	offArrayStart := 3
	offArrayLen := (count + 1) * offSize
	if len(b) < offArrayStart+offArrayLen {
		return cffIndex{}, 0, errInvalidCFFTable
	}
	offsets := make([]uint32, count+1)
	for i := 0; i <= count; i++ {
		raw := b[offArrayStart+i*offSize : offArrayStart+(i+1)*offSize]
		var v uint32
		for _, x := range raw {
			v = v<<8 | uint32(x)
		}
		offsets[i] = v
	}
	dataStart := offArrayStart + offArrayLen
	// Offsets are 1-based, relative to the byte before the data area.
	total := int(offsets[count]) - 1
	if total < 0 || dataStart+total > len(b) {
		return cffIndex{}, 0, errInvalidCFFTable
	}
	for i := range offsets {
		offsets[i]--
	}
	idx := cffIndex{data: b[dataStart : dataStart+total], offsets: offsets}
	return idx, dataStart + total, nil
}

// cffDictEntry is one decoded DICT operator with its operand stack, in the
// order pushed (5176.CFF.pdf §4 "DICT Data").
type cffDictEntry struct {
	op       uint16 // 1-byte ops are 0-21; 2-byte (12 x) ops are 1200+x
	operands []float64
}

func parseCFFDict(b binarySegm) ([]cffDictEntry, error) {
	var entries []cffDictEntry
	var operands []float64
	for len(b) > 0 {
		b0 := b[0]
		switch {
		case b0 == 12:
			if len(b) < 2 {
				return nil, errInvalidCFFTable
			}
			entries = append(entries, cffDictEntry{op: 1200 + uint16(b[1]), operands: operands})
			operands = nil
			b = b[2:]
		case b0 <= 21:
			entries = append(entries, cffDictEntry{op: uint16(b0), operands: operands})
			operands = nil
			b = b[1:]
		case b0 == 28:
			if len(b) < 3 {
				return nil, errInvalidCFFTable
			}
			operands = append(operands, float64(int16(b.U16(1))))
			b = b[3:]
		case b0 == 29:
			if len(b) < 5 {
				return nil, errInvalidCFFTable
			}
			operands = append(operands, float64(int32(b.U32(1))))
			b = b[5:]
		case b0 == 30:
			s, rest, err := parseCFFReal(b[1:])
			if err != nil {
				return nil, err
			}
			operands = append(operands, s)
			b = rest
		case b0 >= 32 && b0 <= 246:
			operands = append(operands, float64(int32(b0)-139))
			b = b[1:]
		case b0 >= 247 && b0 <= 250:
			if len(b) < 2 {
				return nil, errInvalidCFFTable
			}
			operands = append(operands, float64((int32(b0)-247)*256+int32(b[1])+108))
			b = b[2:]
		case b0 >= 251 && b0 <= 254:
			if len(b) < 2 {
				return nil, errInvalidCFFTable
			}
			operands = append(operands, float64(-(int32(b0)-251)*256-int32(b[1])-108))
			b = b[2:]
		default:
			return nil, errInvalidCFFTable
		}
	}
	return entries, nil
}

func parseCFFReal(b binarySegm) (float64, binarySegm, error) {
	var s []byte
	for {
		if len(b) == 0 {
			return 0, nil, errInvalidCFFTable
		}
		c := b[0]
		b = b[1:]
		for _, nib := range [2]byte{c >> 4, c & 0x0f} {
			switch {
			case nib <= 9:
				s = append(s, '0'+nib)
			case nib == 0x0a:
				s = append(s, '.')
			case nib == 0x0b:
				s = append(s, 'E')
			case nib == 0x0c:
				s = append(s, 'E', '-')
			case nib == 0x0e:
				s = append(s, '-')
			case nib == 0x0f:
				f, err := strconv.ParseFloat(string(s), 64)
				if err != nil {
					return 0, nil, errInvalidCFFTable
				}
				return f, b, nil
			}
		}
	}
}

func dictOperand0(entries []cffDictEntry, op uint16) (float64, bool) {
	for _, e := range entries {
		if e.op == op && len(e.operands) > 0 {
			return e.operands[0], true
		}
	}
	return 0, false
}

func parseCFF(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if len(b) < 4 {
		ec.addError(tag, "Size", "CFF table too small", SeverityCritical, offset)
		return nil, errInvalidCFFTable
	}
	t := newCFFTable(tag, b, offset, size)
	hdrSize := int(b[2])
	if hdrSize > len(b) {
		return nil, errInvalidCFFTable
	}
	pos := hdrSize

	// Name INDEX: exactly one entry per spec; skipped over, not retained.
	_, next, err := parseCFFIndex(b[pos:])
	if err != nil {
		return nil, err
	}
	pos += next

	topDictIdx, next, err := parseCFFIndex(b[pos:])
	if err != nil {
		return nil, err
	}
	pos += next
	topDictBytes, ok := topDictIdx.get(0)
	if !ok {
		return nil, errInvalidCFFTable
	}
	topDict, err := parseCFFDict(topDictBytes)
	if err != nil {
		return nil, err
	}

	// String INDEX: only referenced by SID-based lookups (glyph names via
	// charset), which ot does not expose; skipped over.
	_, next, err = parseCFFIndex(b[pos:])
	if err != nil {
		return nil, err
	}
	pos += next

	globalSubrs, _, err := parseCFFIndex(b[pos:])
	if err != nil {
		return nil, err
	}
	t.globalSubrs = globalSubrs

	if v, ok := dictOperand0(topDict, 1206); ok { // CharstringType
		t.charstringType = int32(v)
	}
	for _, e := range topDict {
		if e.op == 1207 && len(e.operands) == 6 { // FontMatrix
			for i := 0; i < 6; i++ {
				t.fontMatrix[i] = e.operands[i]
			}
		}
	}

	charStringsOff, ok := dictOperand0(topDict, 17)
	if !ok || charStringsOff < 0 || int(charStringsOff) >= len(b) {
		return nil, errInvalidCFFTable
	}
	charStrings, _, err := parseCFFIndex(b[int(charStringsOff):])
	if err != nil {
		return nil, err
	}
	t.charStrings = charStrings

	for _, e := range topDict {
		if e.op == 18 && len(e.operands) == 2 { // Private: size, offset
			privSize, privOff := int(e.operands[0]), int(e.operands[1])
			if privOff < 0 || privOff+privSize > len(b) {
				break
			}
			privDict, err := parseCFFDict(b[privOff : privOff+privSize])
			if err != nil {
				break
			}
			if dw, ok := dictOperand0(privDict, 20); ok {
				t.defaultWidthX = dw
			}
			if nw, ok := dictOperand0(privDict, 21); ok {
				t.nominalWidthX = nw
			}
			if subrsOff, ok := dictOperand0(privDict, 19); ok { // relative to Private DICT start
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

// Glyph returns the raw Type 2 charstring for glyph index gid.
func (t *CFFTable) Glyph(gid GlyphIndex) (binarySegm, bool) {
	if t == nil {
		return nil, false
	}
	return t.charStrings.get(int(gid))
}

// NumGlyphs returns the number of charstrings (== number of glyphs) in
// this CFF table.
func (t *CFFTable) NumGlyphs() int {
	if t == nil {
		return 0
	}
	return t.charStrings.count()
}

const maxCFFStackDepth = 48
const maxCFFCallDepth = 10

// outlineCFF interprets glyph gid's Type 2 charstring and emits its
// outline to sink. Hinting operators (hstem/vstem/hintmask/cntrmask) are
// recognized only enough to consume their operands correctly; no hints
// are applied, since ot never rasterizes.
func (otf *Font) outlineCFF(gid GlyphIndex, sink OutlineSink) bool {
	if otf.CFF == nil {
		return false
	}
	cs, ok := otf.CFF.Glyph(gid)
	if !ok {
		return false
	}
	interp := &type2Interp{
		cff:  otf.CFF,
		sink: sink,
	}
	interp.run(cs, 0)
	if interp.open {
		sink.Close()
	}
	return interp.err == nil && interp.hadMoveTo
}

type type2Interp struct {
	cff  *CFFTable
	sink OutlineSink

	stack     [maxCFFStackDepth]float64
	sp        int
	x, y      float64
	nStems    int
	widthDone bool
	open      bool
	hadMoveTo bool
	err       error
	transient [32]float64
}

func (ip *type2Interp) push(v float64) {
	if ip.sp < len(ip.stack) {
		ip.stack[ip.sp] = v
		ip.sp++
	}
}

func (ip *type2Interp) clear() { ip.sp = 0 }

// maybeWidth consumes a leading width operand on the first stack-clearing
// operator if the operand count's parity differs from the parity of the
// operator's own operand count (odd for rmoveto/endchar/stem ops, even
// for hmoveto/vmoveto), per 5177.Type2.pdf §2.2.
func (ip *type2Interp) maybeWidth(nArgsExpectedParity int) {
	if ip.widthDone {
		return
	}
	ip.widthDone = true
	if ip.sp > 0 && ip.sp%2 != nArgsExpectedParity {
		copy(ip.stack[0:], ip.stack[1:ip.sp])
		ip.sp--
	}
}

func (ip *type2Interp) moveTo(dx, dy float64) {
	if ip.open {
		ip.sink.Close()
	}
	ip.x += dx
	ip.y += dy
	ip.sink.MoveTo(ip.x, ip.y)
	ip.open = true
	ip.hadMoveTo = true
}

func (ip *type2Interp) lineTo(dx, dy float64) {
	ip.x += dx
	ip.y += dy
	ip.sink.LineTo(ip.x, ip.y)
}

func (ip *type2Interp) curveTo(dx1, dy1, dx2, dy2, dx3, dy3 float64) {
	cx1, cy1 := ip.x+dx1, ip.y+dy1
	cx2, cy2 := cx1+dx2, cy1+dy2
	ip.x, ip.y = cx2+dx3, cy2+dy3
	ip.sink.CubicTo(cx1, cy1, cx2, cy2, ip.x, ip.y)
}

func (ip *type2Interp) run(cs binarySegm, depth int) {
	if ip.err != nil || depth > maxCFFCallDepth {
		if depth > maxCFFCallDepth {
			ip.err = fmt.Errorf("cff: subroutine call nesting too deep")
		}
		return
	}
	for len(cs) > 0 && ip.err == nil {
		b0 := cs[0]
		if b0 >= 32 || b0 == 28 {
			v, rest, err := parseType2Number(cs)
			if err != nil {
				ip.err = err
				return
			}
			ip.push(v)
			cs = rest
			continue
		}
		cs = cs[1:]
		switch b0 {
		case 1, 3, 18, 23: // hstem, vstem, hstemhm, vstemhm
			ip.maybeWidth(0)
			ip.nStems += ip.sp / 2
			ip.clear()
		case 19, 20: // hintmask, cntrmask
			ip.maybeWidth(0)
			ip.nStems += ip.sp / 2
			ip.clear()
			skip := (ip.nStems + 7) / 8
			if skip > len(cs) {
				ip.err = errInvalidCFFTable
				return
			}
			cs = cs[skip:]
		case 21: // rmoveto
			ip.maybeWidth(0)
			if ip.sp < 2 {
				ip.err = errInvalidCFFTable
				return
			}
			ip.moveTo(ip.stack[0], ip.stack[1])
			ip.clear()
		case 22: // hmoveto
			ip.maybeWidth(1)
			if ip.sp < 1 {
				ip.err = errInvalidCFFTable
				return
			}
			ip.moveTo(ip.stack[0], 0)
			ip.clear()
		case 4: // vmoveto
			ip.maybeWidth(1)
			if ip.sp < 1 {
				ip.err = errInvalidCFFTable
				return
			}
			ip.moveTo(0, ip.stack[0])
			ip.clear()
		case 5: // rlineto
			for i := 0; i+1 < ip.sp; i += 2 {
				ip.lineTo(ip.stack[i], ip.stack[i+1])
			}
			ip.clear()
		case 6: // hlineto
			ip.runAlternatingLineto(true)
		case 7: // vlineto
			ip.runAlternatingLineto(false)
		case 8: // rrcurveto
			for i := 0; i+5 < ip.sp; i += 6 {
				ip.curveTo(ip.stack[i], ip.stack[i+1], ip.stack[i+2], ip.stack[i+3], ip.stack[i+4], ip.stack[i+5])
			}
			ip.clear()
		case 24: // rcurveline
			i := 0
			for ; i+5 < ip.sp-2; i += 6 {
				ip.curveTo(ip.stack[i], ip.stack[i+1], ip.stack[i+2], ip.stack[i+3], ip.stack[i+4], ip.stack[i+5])
			}
			if i+1 < ip.sp {
				ip.lineTo(ip.stack[i], ip.stack[i+1])
			}
			ip.clear()
		case 25: // rlinecurve
			i := 0
			for ; i+1 < ip.sp-6; i += 2 {
				ip.lineTo(ip.stack[i], ip.stack[i+1])
			}
			if i+5 < ip.sp {
				ip.curveTo(ip.stack[i], ip.stack[i+1], ip.stack[i+2], ip.stack[i+3], ip.stack[i+4], ip.stack[i+5])
			}
			ip.clear()
		case 26: // vvcurveto
			i := 0
			dx1 := 0.0
			if ip.sp%4 == 1 {
				dx1 = ip.stack[0]
				i = 1
			}
			for ; i+3 < ip.sp; i += 4 {
				ip.curveTo(dx1, ip.stack[i], ip.stack[i+1], ip.stack[i+2], 0, ip.stack[i+3])
				dx1 = 0
			}
			ip.clear()
		case 27: // hhcurveto
			i := 0
			dy1 := 0.0
			if ip.sp%4 == 1 {
				dy1 = ip.stack[0]
				i = 1
			}
			for ; i+3 < ip.sp; i += 4 {
				ip.curveTo(ip.stack[i], dy1, ip.stack[i+1], ip.stack[i+2], ip.stack[i+3], 0)
				dy1 = 0
			}
			ip.clear()
		case 30, 31: // vhcurveto, hvcurveto
			ip.runCurveto(b0 == 31)
		case 10: // callsubr
			ip.callSubr(&ip.cff.localSubrs, depth)
		case 29: // callgsubr
			ip.callSubr(&ip.cff.globalSubrs, depth)
		case 11: // return
			return
		case 14: // endchar
			ip.maybeWidth(0)
			// A 4-argument endchar (seac-like accent composition) is not
			// supported; treat it as a plain close.
			ip.clear()
			return
		case 12: // escape: two-byte operators
			if len(cs) == 0 {
				ip.err = errInvalidCFFTable
				return
			}
			b1 := cs[0]
			cs = cs[1:]
			if b1 == 23 { // blend (CFF2 only): drop the blend count, keep default operands
				if ip.sp > 0 {
					ip.sp--
				}
			} else {
				ip.runEscape(b1)
				ip.clear()
			}
		default:
			ip.clear() // unrecognized operator: drop operands, keep going
		}
	}
}

func (ip *type2Interp) runAlternatingLineto(horizontalFirst bool) {
	horiz := horizontalFirst
	for i := 0; i < ip.sp; i++ {
		if horiz {
			ip.lineTo(ip.stack[i], 0)
		} else {
			ip.lineTo(0, ip.stack[i])
		}
		horiz = !horiz
	}
	ip.clear()
}

func (ip *type2Interp) runCurveto(startHoriz bool) {
	i := 0
	horiz := startHoriz
	for i+3 < ip.sp {
		last := i+4 == ip.sp-1
		var extra float64
		if last {
			extra = ip.stack[ip.sp-1]
		}
		if horiz {
			ip.curveTo(ip.stack[i], 0, ip.stack[i+1], ip.stack[i+2], extra, ip.stack[i+3])
		} else {
			ip.curveTo(0, ip.stack[i], ip.stack[i+1], ip.stack[i+2], ip.stack[i+3], extra)
		}
		horiz = !horiz
		i += 4
	}
	ip.clear()
}

// runEscape handles the flex family (12 34/35/36/37) as two successive
// curveTo calls, ignoring the flex-height operand; all other two-byte
// arithmetic/storage operators are no-ops for outline purposes.
func (ip *type2Interp) runEscape(b1 byte) {
	switch b1 {
	case 34: // hflex
		if ip.sp < 7 {
			return
		}
		s := ip.stack
		ip.curveTo(s[0], 0, s[1], s[2], s[3], 0)
		ip.curveTo(s[4], 0, s[5], -s[2], s[6], 0)
	case 35: // flex
		if ip.sp < 13 {
			return
		}
		s := ip.stack
		ip.curveTo(s[0], s[1], s[2], s[3], s[4], s[5])
		ip.curveTo(s[6], s[7], s[8], s[9], s[10], s[11])
	case 36: // hflex1
		if ip.sp < 9 {
			return
		}
		s := ip.stack
		ip.curveTo(s[0], s[1], s[2], s[3], s[4], 0)
		ip.curveTo(s[5], 0, s[6], s[7], s[8], -(s[1] + s[3] + s[7]))
	case 37: // flex1
		if ip.sp < 11 {
			return
		}
		s := ip.stack
		dx := s[0] + s[2] + s[4] + s[6] + s[8]
		dy := s[1] + s[3] + s[5] + s[7] + s[9]
		ip.curveTo(s[0], s[1], s[2], s[3], s[4], s[5])
		if math.Abs(dx) > math.Abs(dy) {
			ip.curveTo(s[6], s[7], s[8], s[9], s[10], -dy)
		} else {
			ip.curveTo(s[6], s[7], s[8], s[9], -dx, s[10])
		}
	}
}

func (ip *type2Interp) callSubr(idx *cffIndex, depth int) {
	if ip.sp == 0 {
		ip.err = errInvalidCFFTable
		return
	}
	ip.sp--
	n := int32(ip.stack[ip.sp]) + idx.bias()
	cs, ok := idx.get(int(n))
	if !ok {
		ip.err = errInvalidCFFTable
		return
	}
	ip.run(cs, depth+1)
}

// parseType2Number decodes one Type 2 charstring numeric operand
// (5177.Type2.pdf §3).
func parseType2Number(b binarySegm) (float64, binarySegm, error) {
	b0 := b[0]
	switch {
	case b0 == 28:
		if len(b) < 3 {
			return 0, nil, errInvalidCFFTable
		}
		return float64(int16(b.U16(1))), b[3:], nil
	case b0 >= 32 && b0 <= 246:
		return float64(int32(b0) - 139), b[1:], nil
	case b0 >= 247 && b0 <= 250:
		if len(b) < 2 {
			return 0, nil, errInvalidCFFTable
		}
		return float64((int32(b0)-247)*256 + int32(b[1]) + 108), b[2:], nil
	case b0 >= 251 && b0 <= 254:
		if len(b) < 2 {
			return 0, nil, errInvalidCFFTable
		}
		return float64(-(int32(b0)-251)*256 - int32(b[1]) - 108), b[2:], nil
	case b0 == 255:
		if len(b) < 5 {
			return 0, nil, errInvalidCFFTable
		}
		// 16.16 fixed point.
		fixed := int32(b.U32(1))
		return float64(fixed) / 65536, b[5:], nil
	}
	return 0, nil, errInvalidCFFTable
}
