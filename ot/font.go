package ot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Code comments cite passages from the OpenType specification version 1.9;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// Font represents the internal structure of an OpenType or TrueType font:
// the table directory plus every recognized table, all parsed by Parse.
// A Font is immutable once returned from Parse and safe for
// concurrent use by multiple goroutines, provided the backing buffer is not
// mutated.
type Font struct {
	Header        *FontHeader
	tables        map[Tag]Table
	CMap          *CMapTable // cmap table, present whenever the font has one
	Head          *HeadTable
	HHea          *HHeaTable
	VHea          *VHeaTable
	MaxP          *MaxPTable
	HMtx          *HMtxTable
	VMtx          *VMtxTable
	Loca          *LocaTable
	OS2           *OS2Table
	Post          *PostTable
	Name          *NameTable
	Kern          *KernTable
	GDef          *GDefTable
	Glyf          *GlyfTable
	CFF           *CFFTable
	CFF2          *CFF2Table
	FVar          *FVarTable
	AVar          *AVarTable
	GVar          *GVarTable
	HVar          *ItemVarTable
	VVar          *ItemVarTable
	MVar          *MVarTable
	VOrg          *VOrgTable
	numGlyphs     int
	parseErrors   []FontError
	parseWarnings []FontWarning
	parseOptions  map[ParseOption]bool
}

// ParseOption guides and relaxes the parsing process.
type ParseOption int

const (
	// IsTestfont marks a minimal font assembled for unit tests. Parse
	// stores the option; no parsing step consults it.
	IsTestfont ParseOption = iota
	// AllowMissingLayoutTables is the default: GSUB/GPOS are never required.
	// Kept as an explicit, named option for callers migrating from a stricter
	// configuration.
	AllowMissingLayoutTables
	// StrictChecksum is stored by Parse but no parsing step consults it:
	// table checksums are never verified, with or without this option.
	StrictChecksum
)

// FontHeader is the sfnt offset table: a version tag followed by counts
// used to size and align the table directory that immediately follows it.
type FontHeader struct {
	FontType      uint32
	TableCount    uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
}

// ttcHeader is the header of an OpenType font collection ('ttcf').
type ttcHeader struct {
	Tag          uint32
	MajorVersion uint16
	MinorVersion uint16
	NumFonts     uint32
}

var errBufferTooShort = fmt.Errorf("OpenType font format: buffer too short")

// ttcTag is the magic 4-byte tag at the start of a TrueType collection file.
const ttcTag = 0x74746366 // "ttcf"

// FontsInCollection reports the number of fonts in a TrueType/OpenType
// collection file. If buf does not begin with the 'ttcf' tag, it reports
// (0, false) — callers should treat that as "not a collection", not as
// an error; a bare sfnt file always holds exactly one font.
func FontsInCollection(buf []byte) (uint32, bool) {
	if len(buf) < 12 {
		return 0, false
	}
	if u32(buf) != ttcTag {
		return 0, false
	}
	return u32(buf[8:12]), true
}

// Parse parses an OpenType or TrueType font from a byte slice. If buf is a
// font collection ('ttcf'), index selects the member font (0-based); for a
// bare sfnt file index must be 0. The returned Font retains a reference to
// buf; buf must not be mutated while the Font is in use.
func Parse(buf []byte, index int, opts ...ParseOption) (*Font, error) {
	src := binarySegm(buf)
	sfntOffset := uint32(0)
	if n, ok := FontsInCollection(buf); ok {
		if index < 0 || uint32(index) >= n {
			return nil, errFontFormat("collection index out of range")
		}
		var hdr ttcHeader
		if err := binary.Read(bytes.NewReader(buf[:12]), binary.BigEndian, &hdr); err != nil {
			return nil, errFontFormat("TTC header")
		}
		entryOffset := 12 + 4*index
		off, err := src.u32(entryOffset)
		if err != nil {
			return nil, errFontFormat("TTC directory entry out of range")
		}
		sfntOffset = off
	} else if index != 0 {
		return nil, errFontFormat("index given for a non-collection font")
	}

	if len(buf) < int(sfntOffset)+12 {
		return nil, errBufferTooShort
	}
	r := bytes.NewReader(buf[sfntOffset:])
	h := FontHeader{}
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return nil, errFontFormat("offset table")
	}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())

	ec := &errorCollector{}
	if !(h.FontType == 0x4f54544f || // OTTO (CFF/CFF2 outlines)
		h.FontType == 0x00010000 || // TrueType
		h.FontType == 0x74727565) { // 'true', legacy Apple TrueType
		ec.addError(T(""), "Header", fmt.Sprintf("font type not supported: %x", h.FontType), SeverityCritical, sfntOffset)
		return nil, errFontFormat(fmt.Sprintf("font type not supported: %x", h.FontType))
	}

	optSet := make(map[ParseOption]bool, len(opts))
	for _, o := range opts {
		optSet[o] = true
	}
	otf := &Font{Header: &h, tables: make(map[Tag]Table), parseOptions: optSet}

	dirOffset := int(sfntOffset) + 12
	tableRecordsSize, err := checkedMulInt(16, int(h.TableCount))
	if err != nil {
		ec.addError(T(""), "TableRecords", fmt.Sprintf("table count too large: %v", err), SeverityCritical, uint32(dirOffset))
		return nil, errFontFormat(fmt.Sprintf("table count too large: %v", err))
	}
	recBuf, err := src.view(dirOffset, tableRecordsSize)
	if err != nil {
		ec.addError(T(""), "TableRecords", "table record entries", SeverityCritical, uint32(dirOffset))
		return nil, errFontFormat("table record entries")
	}
	for b, prevTag := recBuf, Tag(0); len(b) > 0; b = b[16:] {
		tag := MakeTag(b)
		if tag < prevTag {
			ec.addError(T(""), "TableRecords", "table order", SeverityCritical, uint32(dirOffset))
			return nil, errFontFormat("table order")
		}
		prevTag = tag
		off, size := u32(b[8:12]), u32(b[12:16])
		if off&3 != 0 {
			ec.addError(tag, "Offset", "invalid table offset", SeverityCritical, off)
			return nil, errFontFormat("invalid table offset")
		}
		tableEnd, err := checkedAddUint32(off, size)
		if err != nil {
			ec.addError(tag, "Size", fmt.Sprintf("size calculation overflow: %v", err), SeverityCritical, off)
			return nil, errFontFormat(fmt.Sprintf("table %s: size calculation overflow: %v", tag, err))
		}
		if off > uint32(len(src)) || tableEnd > uint32(len(src)) {
			ec.addError(tag, "Bounds", fmt.Sprintf("bounds [%d:%d] exceed font size %d", off, tableEnd, len(src)), SeverityCritical, off)
			continue // tolerate an out-of-range optional table rather than failing the whole font
		}
		otf.tables[tag], err = parseTable(tag, src[off:tableEnd], off, size, ec)
		if err != nil {
			ec.addWarning(tag, fmt.Sprintf("table could not be parsed: %v", err), off)
			continue
		}
	}
	if err := wireMandatoryTables(otf, ec); err != nil {
		return nil, err
	}
	wireOptionalTables(otf)

	otf.parseErrors = ec.errors
	otf.parseWarnings = ec.warnings
	return otf, nil
}

// RequiredTables lists the only tables whose absence makes font
// construction fail: head, hhea, maxp (§4.2 of the table-directory spec).
// Every other table, including cmap, is optional at the container level.
var RequiredTables = []string{"head", "hhea", "maxp"}

// wireMandatoryTables enforces presence of the mandatory tables and fills
// in the Font's typed shortcut fields for them.
func wireMandatoryTables(otf *Font, ec *errorCollector) error {
	for _, tag := range RequiredTables {
		h := otf.tables[T(tag)]
		if h == nil {
			ec.addError(T(tag), "Missing", "missing required table", SeverityCritical, 0)
			return errFontFormat("missing required table " + tag)
		}
	}
	otf.Head = otf.tables[T("head")].Self().AsHead()
	otf.HHea = otf.tables[T("hhea")].Self().AsHHea()
	otf.MaxP = otf.tables[T("maxp")].Self().AsMaxP()
	if otf.MaxP.NumGlyphs <= 0 {
		ec.addError(T("maxp"), "NumGlyphs", "font must contain at least one glyph", SeverityCritical, 0)
		return errFontFormat("font with zero glyphs")
	}
	otf.numGlyphs = otf.MaxP.NumGlyphs
	return nil
}

// wireOptionalTables fills in the Font's typed shortcut fields for every
// table that parsed successfully, and resolves the cross-table
// dependencies named in the data-model invariants (hmtx/vmtx need
// hhea/vhea + maxp; loca needs head.indexToLocFormat + maxp).
func wireOptionalTables(otf *Font) {
	if h := otf.tables[T("cmap")]; h != nil {
		otf.CMap = h.Self().AsCMap()
		if otf.CMap != nil {
			otf.CMap.numGlyphs = otf.numGlyphs
		}
	}
	if h := otf.tables[T("OS/2")]; h != nil {
		otf.OS2 = h.Self().AsOS2()
	}
	if h := otf.tables[T("post")]; h != nil {
		otf.Post = h.Self().AsPost()
	}
	if h := otf.tables[T("name")]; h != nil {
		otf.Name = h.Self().AsName()
	}
	if h := otf.tables[T("kern")]; h != nil {
		otf.Kern = h.Self().AsKern()
	}
	if h := otf.tables[T("GDEF")]; h != nil {
		otf.GDef = h.Self().AsGDef()
	}
	if h := otf.tables[T("CFF ")]; h != nil {
		otf.CFF = h.Self().AsCFF()
	}
	if h := otf.tables[T("CFF2")]; h != nil {
		otf.CFF2 = h.Self().AsCFF2()
	}
	if h := otf.tables[T("fvar")]; h != nil {
		otf.FVar = h.Self().AsFVar()
	}
	if h := otf.tables[T("avar")]; h != nil {
		otf.AVar = h.Self().AsAVar()
	}
	if h := otf.tables[T("HVAR")]; h != nil {
		otf.HVar = h.Self().AsItemVar()
	}
	if h := otf.tables[T("VVAR")]; h != nil {
		otf.VVar = h.Self().AsItemVar()
	}
	if h := otf.tables[T("MVAR")]; h != nil {
		otf.MVar = h.Self().AsMVar()
	}
	if h := otf.tables[T("VORG")]; h != nil {
		otf.VOrg = h.Self().AsVOrg()
	}

	if h := otf.tables[T("vhea")]; h != nil {
		otf.VHea = h.Self().AsVHea()
	}

	if h := otf.tables[T("hmtx")]; h != nil {
		otf.HMtx = h.Self().AsHMtx()
		if otf.HMtx != nil {
			otf.HMtx.parseAll(otf.numGlyphs, otf.HHea.NumberOfHMetrics)
		}
	}
	if h := otf.tables[T("vmtx")]; h != nil && otf.VHea != nil {
		otf.VMtx = h.Self().AsVMtx()
		if otf.VMtx != nil {
			otf.VMtx.parseAll(otf.numGlyphs, otf.VHea.NumOfLongVerMetrics)
		}
	}
	if h := otf.tables[T("loca")]; h != nil && otf.Head != nil {
		loca := h.Self().AsLoca()
		if loca != nil {
			if otf.Head.IndexToLocFormat == 1 {
				loca.inx2loc = longLocaVersion
			}
			loca.locCnt = otf.numGlyphs + 1 // loca carries one trailing entry past the last glyph
			otf.Loca = loca
		}
	}
	if h := otf.tables[T("glyf")]; h != nil {
		otf.Glyf = h.Self().AsGlyf()
	}
	if h := otf.tables[T("gvar")]; h != nil {
		otf.GVar = h.Self().AsGVar()
	}
}

// --- Table dispatch ----------------------------------------------------

func parseTable(t Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	switch t {
	case T("head"):
		return parseHead(t, b, offset, size, ec)
	case T("hhea"):
		return parseHHea(t, b, offset, size, ec)
	case T("vhea"):
		return parseVHea(t, b, offset, size, ec)
	case T("maxp"):
		return parseMaxP(t, b, offset, size, ec)
	case T("OS/2"):
		return parseOS2(t, b, offset, size, ec)
	case T("post"):
		return parsePost(t, b, offset, size, ec)
	case T("name"):
		return parseName(t, b, offset, size, ec)
	case T("cmap"):
		return parseCMap(t, b, offset, size, ec)
	case T("hmtx"):
		return parseHMtx(t, b, offset, size, ec)
	case T("vmtx"):
		return parseVMtx(t, b, offset, size, ec)
	case T("loca"):
		return parseLoca(t, b, offset, size, ec)
	case T("kern"):
		return parseKern(t, b, offset, size, ec)
	case T("glyf"):
		return parseGlyf(t, b, offset, size, ec)
	case T("CFF "):
		return parseCFF(t, b, offset, size, ec)
	case T("CFF2"):
		return parseCFF2(t, b, offset, size, ec)
	case T("GDEF"):
		return parseGDef(t, b, offset, size, ec)
	case T("fvar"):
		return parseFVar(t, b, offset, size, ec)
	case T("avar"):
		return parseAVar(t, b, offset, size, ec)
	case T("gvar"):
		return parseGVar(t, b, offset, size, ec)
	case T("HVAR"), T("VVAR"):
		return parseItemVarTable(t, b, offset, size, ec)
	case T("MVAR"):
		return parseMVar(t, b, offset, size, ec)
	case T("VORG"):
		return parseVOrg(t, b, offset, size, ec)
	}
	tracer().Infof("font contains table (%s), will not be interpreted", t)
	ec.addWarning(t, "table not interpreted", offset)
	return newTable(t, b, offset, size), nil
}

// Table returns the font table for a given tag, or nil if not present.
func (otf *Font) Table(tag Tag) Table {
	if t, ok := otf.tables[tag]; ok {
		return t
	}
	return nil
}

// TableTags returns a list of tags, one for each table contained in the font.
func (otf *Font) TableTags() []Tag {
	tags := make([]Tag, 0, len(otf.tables))
	for tag := range otf.tables {
		tags = append(tags, tag)
	}
	return tags
}

// HasTable reports whether the font contains a table with the given tag.
func (otf *Font) HasTable(tag Tag) bool {
	return otf.Table(tag) != nil
}

// IsVariable reports whether the font is a variable font, i.e. carries an
// fvar table with at least one axis.
func (otf *Font) IsVariable() bool {
	return otf.FVar != nil && len(otf.FVar.Axes) > 0
}

// NumGlyphs returns the number of glyphs in the font. Never zero for a
// successfully parsed Font.
func (otf *Font) NumGlyphs() uint16 {
	return uint16(otf.numGlyphs)
}

// Errors returns all errors encountered during font parsing.
func (otf *Font) Errors() []FontError {
	if otf.parseErrors == nil {
		return []FontError{}
	}
	return otf.parseErrors
}

// Warnings returns all warnings encountered during font parsing.
func (otf *Font) Warnings() []FontWarning {
	if otf.parseWarnings == nil {
		return []FontWarning{}
	}
	return otf.parseWarnings
}

// CriticalErrors returns all errors with critical severity.
func (otf *Font) CriticalErrors() []FontError {
	critical := make([]FontError, 0)
	for _, err := range otf.parseErrors {
		if err.Severity == SeverityCritical {
			critical = append(critical, err)
		}
	}
	return critical
}

// HasCriticalErrors returns true if any critical errors were encountered.
func (otf *Font) HasCriticalErrors() bool {
	for _, err := range otf.parseErrors {
		if err.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

func (otf *Font) hasOption(o ParseOption) bool {
	return otf.parseOptions[o]
}

// --- Table interface & generic table base ------------------------------

// Table represents one of the various OpenType/TrueType font tables.
type Table interface {
	Extent() (uint32, uint32) // offset and byte size within the font's binary data
	Binary() []byte           // the bytes of this table; read-only for clients
	Fields() Navigator        // start for navigation calls
	Self() TableSelf          // reference to itself
}

func newTable(tag Tag, b binarySegm, offset, size uint32) *genericTable {
	t := &genericTable{tableBase{data: b, name: tag, offset: offset, length: size}}
	t.self = t
	return t
}

type genericTable struct {
	tableBase
}

// tableBase is a common parent for all kinds of OpenType tables.
type tableBase struct {
	data   binarySegm // a table is a slice of font data
	name   Tag        // 4-byte name as an integer
	offset uint32     // from offset
	length uint32     // to offset + length
	self   any
}

// Extent returns offset and byte size of this table within the font.
func (tb *tableBase) Extent() (uint32, uint32) {
	return tb.offset, tb.length
}

// Binary returns the bytes of this table. Read-only view into the font.
func (tb *tableBase) Binary() []byte {
	return tb.data
}

func (tb *tableBase) Self() TableSelf {
	return TableSelf{tableBase: tb}
}

func (tb *tableBase) Fields() Navigator {
	tableTag := tb.name.String()
	return NavigatorFactory(tableTag, tb.data, tb.data)
}

// TableSelf is a reference to a table, used to convert a generic table to a
// concrete table flavour via its AsXxx methods.
type TableSelf struct {
	tableBase *tableBase
}

// NameTag returns the 4-letter name of a table.
func (tself TableSelf) NameTag() Tag {
	return tself.tableBase.name
}

func safeSelf(tself TableSelf) any {
	if tself.tableBase == nil || tself.tableBase.self == nil {
		return TableSelf{}
	}
	return tself.tableBase.self
}

// --- Checked arithmetic --------------------------------------------------
//
// Prevents malicious fonts claiming unreasonably large counts from causing
// out-of-bounds reads or excessive allocation.

func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > 0 && b > 0 && a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	if a < 0 && b < 0 && a < math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	if (a < 0 && b > 0 && a < math.MinInt/b) || (a > 0 && b < 0 && b < math.MinInt/a) {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

func checkedAddInt(a, b int) (int, error) {
	if b > 0 && a > math.MaxInt-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	if b < 0 && a < math.MinInt-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

func checkedMulUint32(a, b uint32) (uint32, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > math.MaxUint32/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// errFontFormat produces a user-level error for font parsing failures.
func errFontFormat(message string) error {
	return fmt.Errorf("OpenType font format: %s", message)
}
