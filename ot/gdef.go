package ot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// versionHeader is the common major/minor version pair many OpenType
// layout-adjacent tables (GDEF among them) start with.
type versionHeader struct {
	Major uint16
	Minor uint16
}

func (h versionHeader) Version() (int, int) {
	return int(h.Major), int(h.Minor)
}

// GDefTable, the Glyph Definition (GDEF) table, provides glyph properties
// (classes, attachment points, mark-attachment classes, mark glyph sets)
// consulted by shaping engines during OpenType Layout processing. Package
// ot parses GDEF as a data source for such clients; it does not itself
// apply GSUB/GPOS lookups.
type GDefTable struct {
	tableBase
	header                 GDefHeader
	GlyphClassDef          ClassDefinitions
	AttachmentPointList    AttachmentPointList
	MarkAttachmentClassDef ClassDefinitions
	MarkGlyphSets          []GlyphRange
}

func newGDefTable(tag Tag, b binarySegm, offset, size uint32) *GDefTable {
	t := &GDefTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// Header returns the Glyph Definition header for t.
func (t *GDefTable) Header() GDefHeader {
	return t.header
}

// AsGDef converts a generic TableSelf to a *GDefTable, or nil if the
// underlying table is not a GDEF table.
func (tself TableSelf) AsGDef() *GDefTable {
	t, _ := safeSelf(tself).(*GDefTable)
	return t
}

// GlyphClass returns the GDEF glyph class for a glyph (0 if the glyph has
// no class assignment, i.e. GlyphClassDef is absent or the glyph is
// unlisted). Non-zero values map to BaseGlyph+1 .. ComponentGlyph+1.
func (t *GDefTable) GlyphClass(g GlyphIndex) int {
	if t == nil {
		return 0
	}
	return t.GlyphClassDef.Class(g)
}

// MarkAttachmentClass returns the mark-attachment class for a glyph, or 0
// if unassigned.
func (t *GDefTable) MarkAttachmentClass(g GlyphIndex) int {
	if t == nil {
		return 0
	}
	return t.MarkAttachmentClassDef.Class(g)
}

// IsMarkGlyph reports whether g is classified as a combining mark, either
// through GlyphClassDef (class 3) or through membership in any mark glyph
// set. setIndex selects a specific mark glyph set (as referenced by a
// lookup's MarkFilteringSet); pass -1 to check GlyphClassDef only.
func (t *GDefTable) IsMarkGlyph(g GlyphIndex, setIndex int) bool {
	if t == nil {
		return false
	}
	if t.GlyphClassDef.Class(g) == int(MarkGlyph)+1 {
		return true
	}
	if setIndex < 0 || setIndex >= len(t.MarkGlyphSets) {
		return false
	}
	_, ok := t.MarkGlyphSets[setIndex].Match(g)
	return ok
}

// GDefHeader contains general information for a Glyph Definition table (GDEF).
type GDefHeader struct {
	gDefHeader
}

// gDefHeader starts with a version number. Three versions are defined:
// 1.0, 1.2 and 1.3.
type gDefHeader struct {
	gDefHeaderV1_0
	MarkGlyphSetsDefOffset uint16
	ItemVarStoreOffset     uint32
	headerSize             uint8 // header size in bytes
}

type gDefHeaderV1_0 struct {
	versionHeader
	GlyphClassDefOffset      uint16
	AttachListOffset         uint16
	LigCaretListOffset       uint16
	MarkAttachClassDefOffset uint16
}

// Sections of a GDEF table.
const (
	GDefGlyphClassDefSection    = "GlyphClassDef"
	GDefAttachListSection       = "AttachList"
	GDefLigCaretListSection     = "LigCaretList"
	GDefMarkAttachClassSection  = "MarkAttachClassDef"
	GDefMarkGlyphSetsDefSection = "MarkGlyphSetsDef"
	GDefItemVarStoreSection     = "ItemVarStore"
)

// offsetFor returns an offset for a table section within the GDEF table.
// A GDEF table contains six sections:
// ▪︎ glyph class definitions,
// ▪︎ attachment list definitions,
// ▪︎ ligature carets lists,
// ▪︎ mark attachment class definitions,
// ▪︎ mark glyph sets definitions,
// ▪︎ item variant section.
// (see https://docs.microsoft.com/en-us/typography/opentype/spec/gdef#gdef-header)
func (h GDefHeader) offsetFor(which string) int {
	switch which {
	case GDefGlyphClassDefSection:
		return int(h.GlyphClassDefOffset)
	case GDefAttachListSection:
		return int(h.AttachListOffset)
	case GDefLigCaretListSection:
		return int(h.LigCaretListOffset)
	case GDefMarkAttachClassSection:
		return int(h.MarkAttachClassDefOffset)
	case GDefMarkGlyphSetsDefSection:
		return int(h.MarkGlyphSetsDefOffset)
	case GDefItemVarStoreSection:
		return int(h.ItemVarStoreOffset)
	}
	tracer().Errorf("illegal section offset type into GDEF table: %s", which)
	return 0
}

// An AttachmentPointList holds the GDEF AttachList: the Coverage of glyphs
// with attachment points, their count, and the raw array of offsets to the
// per-glyph AttachPoint tables (which are not decoded further).
type AttachmentPointList struct {
	Coverage           GlyphRange
	Count              int
	attachPointOffsets binarySegm
}

func parseGDef(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	var err error
	gdef := newGDefTable(tag, b, offset, size)
	err = parseGDefHeader(gdef, b, err, tag, offset, ec)
	err = parseGlyphClassDefinitions(gdef, b, err)
	err = parseAttachmentPointList(gdef, b, err, tag, offset, ec)
	// Ligature Caret List is not parsed: it serves text-editing cursor
	// positioning, not glyph metrics or class lookups.
	err = parseMarkAttachmentClassDef(gdef, b, err)
	err = parseMarkGlyphSets(gdef, b, err, tag, offset, ec)
	// Item Variation Store (GDEF v1.3, variable-width class metrics) is not
	// parsed: no SPEC_FULL component consumes per-instance GDEF deltas.
	if err != nil {
		tracer().Errorf("error parsing GDEF table: %v", err)
		return gdef, err
	}
	mj, mn := gdef.Header().Version()
	tracer().Debugf("GDEF table has version %d.%d", mj, mn)
	return gdef, err
}

// The GDEF table begins with a header that starts with a version number.
// Three versions are defined. Version 1.0 contains an offset to a Glyph
// Class Definition table, an Attachment List table, a Ligature Caret List
// table, and a Mark Attachment Class Definition table. Version 1.2 adds an
// offset to a Mark Glyph Sets Definition table. Version 1.3 adds an offset
// to an Item Variation Store table.
func parseGDefHeader(gdef *GDefTable, b binarySegm, err error, tag Tag, offset uint32, ec *errorCollector) error {
	if err != nil {
		return err
	}
	if len(b) < 12 {
		ec.addError(tag, "Header", fmt.Sprintf("GDEF header too small: %d bytes (need 12)", len(b)), SeverityCritical, offset)
		return errFontFormat("GDEF table header too small")
	}

	h := GDefHeader{}
	r := bytes.NewReader(b)
	if err = binary.Read(r, binary.BigEndian, &h.gDefHeaderV1_0); err != nil {
		return err
	}
	headerlen := 12

	if h.Major != 1 || h.Minor > 3 {
		return fmt.Errorf("unsupported GDEF version %d.%d", h.Major, h.Minor)
	}

	if h.versionHeader.Minor >= 2 {
		if len(b) < headerlen+2 {
			ec.addError(tag, "Header", "GDEF v1.2+ header incomplete", SeverityCritical, offset)
			return errFontFormat("GDEF v1.2+ header incomplete")
		}
		h.MarkGlyphSetsDefOffset, _ = b.u16(headerlen)
		headerlen += 2
	}
	if h.versionHeader.Minor >= 3 {
		if len(b) < headerlen+4 {
			ec.addError(tag, "Header", "GDEF v1.3+ header incomplete", SeverityCritical, offset)
			return errFontFormat("GDEF v1.3+ header incomplete")
		}
		h.ItemVarStoreOffset, _ = b.u32(headerlen)
		headerlen += 4
	}

	tableSize := len(b)
	if h.GlyphClassDefOffset > 0 && int(h.GlyphClassDefOffset) >= tableSize {
		return fmt.Errorf("GDEF GlyphClassDef offset out of bounds: %d >= %d", h.GlyphClassDefOffset, tableSize)
	}
	if h.AttachListOffset > 0 && int(h.AttachListOffset) >= tableSize {
		return fmt.Errorf("GDEF AttachList offset out of bounds: %d >= %d", h.AttachListOffset, tableSize)
	}
	if h.LigCaretListOffset > 0 && int(h.LigCaretListOffset) >= tableSize {
		return fmt.Errorf("GDEF LigCaretList offset out of bounds: %d >= %d", h.LigCaretListOffset, tableSize)
	}
	if h.MarkAttachClassDefOffset > 0 && int(h.MarkAttachClassDefOffset) >= tableSize {
		return fmt.Errorf("GDEF MarkAttachClassDef offset out of bounds: %d >= %d", h.MarkAttachClassDefOffset, tableSize)
	}
	if h.Minor >= 2 && h.MarkGlyphSetsDefOffset > 0 && int(h.MarkGlyphSetsDefOffset) >= tableSize {
		return fmt.Errorf("GDEF MarkGlyphSetsDef offset out of bounds: %d >= %d", h.MarkGlyphSetsDefOffset, tableSize)
	}
	if h.Minor >= 3 && h.ItemVarStoreOffset > 0 && int(h.ItemVarStoreOffset) >= tableSize {
		return fmt.Errorf("GDEF ItemVarStore offset out of bounds: %d >= %d", h.ItemVarStoreOffset, tableSize)
	}

	gdef.header = h
	gdef.header.headerSize = uint8(headerlen)
	return err
}

// This table uses the same format as the Class Definition table (defined
// in the OpenType Layout Common Table Formats chapter).
func parseGlyphClassDefinitions(gdef *GDefTable, b binarySegm, err error) error {
	if err != nil {
		return err
	}
	offset := gdef.Header().offsetFor(GDefGlyphClassDefSection)
	if offset == 0 {
		return nil
	}
	if offset >= len(b) {
		return io.ErrUnexpectedEOF
	}
	cdef, err := parseClassDefinitions(b[offset:])
	if err != nil {
		return err
	}
	gdef.GlyphClassDef = cdef
	return nil
}

// parseAttachmentPointList reads a GDEF AttachList table:
//
//	Offset16  coverageOffset                  Offset to Coverage table, from beginning of AttachList table
//	uint16    glyphCount                      Number of glyphs with attachment points
//	Offset16  attachPointOffsets[glyphCount]   Offsets to AttachPoint tables, in Coverage Index order
func parseAttachmentPointList(gdef *GDefTable, b binarySegm, err error, tag Tag, tableOffset uint32, ec *errorCollector) error {
	if err != nil {
		return err
	}
	offset := gdef.Header().offsetFor(GDefAttachListSection)
	if offset == 0 {
		return nil
	}
	if offset >= len(b) {
		return io.ErrUnexpectedEOF
	}
	b = b[offset:]
	if len(b) < 4 {
		ec.addError(tag, "AttachList", "attachment point list header too small", SeverityCritical, tableOffset+uint32(offset))
		return errFontFormat("GDEF attachment point list header too small")
	}

	count, err := b.u16(2)
	if err != nil {
		ec.addError(tag, "AttachList", "corrupt attachment point list", SeverityCritical, tableOffset+uint32(offset))
		return errFontFormat("GDEF has corrupt attachment point list")
	}
	if count == 0 {
		return nil
	}

	requiredSize := 4 + int(count)*2
	if requiredSize > len(b) {
		return fmt.Errorf("GDEF attachment point list: count %d requires %d bytes, have %d",
			count, requiredSize, len(b))
	}

	covOffset := u16(b)
	if int(covOffset) >= len(b) {
		ec.addError(tag, "AttachList", "coverage offset out of bounds", SeverityCritical, tableOffset+uint32(offset))
		return errFontFormat("GDEF attachment point coverage offset out of bounds")
	}
	coverage := parseCoverage(b[covOffset:])
	if coverage.GlyphRange == nil {
		ec.addError(tag, "AttachList", "coverage table unreadable", SeverityCritical, tableOffset+uint32(offset)+uint32(covOffset))
		return errFontFormat("GDEF attachment point coverage table unreadable")
	}

	gdef.AttachmentPointList = AttachmentPointList{
		Count:              int(count),
		Coverage:           coverage.GlyphRange,
		attachPointOffsets: b[4:],
	}
	return nil
}

// A Mark Attachment Class Definition Table defines the class to which a
// mark glyph may belong. This table uses the same format as the Class
// Definition table.
func parseMarkAttachmentClassDef(gdef *GDefTable, b binarySegm, err error) error {
	if err != nil {
		return err
	}
	offset := gdef.Header().offsetFor(GDefMarkAttachClassSection)
	if offset == 0 {
		return nil
	}
	if offset >= len(b) {
		return io.ErrUnexpectedEOF
	}
	cdef, err := parseClassDefinitions(b[offset:])
	if err != nil {
		return err
	}
	gdef.MarkAttachmentClassDef = cdef
	return nil
}

// Mark glyph sets are defined in a MarkGlyphSets table, which contains
// offsets to individual sets each represented by a standard Coverage
// table.
func parseMarkGlyphSets(gdef *GDefTable, b binarySegm, err error, tag Tag, tableOffset uint32, ec *errorCollector) error {
	if err != nil {
		return err
	}
	offset := gdef.Header().offsetFor(GDefMarkGlyphSetsDefSection)
	if offset == 0 {
		return nil
	}
	if offset >= len(b) {
		return io.ErrUnexpectedEOF
	}
	b = b[offset:]
	if len(b) < 4 {
		ec.addError(tag, "MarkGlyphSets", "mark glyph sets header too small", SeverityCritical, tableOffset+uint32(offset))
		return errFontFormat("GDEF mark glyph sets header too small")
	}

	count, _ := b.u16(2)
	requiredSize := 4 + int(count)*4
	if requiredSize > len(b) {
		return fmt.Errorf("GDEF mark glyph sets: count %d requires %d bytes, have %d",
			count, requiredSize, len(b))
	}

	for i := 0; i < int(count); i++ {
		covOffset, _ := b.u32(4 + i*4)
		if int(covOffset) >= len(b) {
			return fmt.Errorf("GDEF mark glyph set %d: coverage offset %d out of bounds", i, covOffset)
		}
		coverage := parseCoverage(b[covOffset:])
		if coverage.GlyphRange == nil {
			ec.addError(tag, "MarkGlyphSets", fmt.Sprintf("mark glyph set %d coverage table unreadable", i), SeverityCritical, tableOffset+uint32(offset)+covOffset)
			return errFontFormat("GDEF mark glyph set coverage table unreadable")
		}
		gdef.MarkGlyphSets = append(gdef.MarkGlyphSets, coverage.GlyphRange)
	}
	return nil
}
