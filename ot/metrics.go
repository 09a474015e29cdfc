package ot

// This file is the font-level query surface spec.md's external interface
// names (glyph_hor_advance, glyph_hor_side_bearing, glyphs_kerning, and
// friends): thin wrappers that pick the right table, apply HVAR/VVAR/MVAR
// variation deltas when the caller supplies normalized coordinates, and
// return a single (value, ok) pair rather than requiring callers to know
// which table a metric lives in.

// GlyphHorAdvance returns a glyph's horizontal advance width in font
// design units, applying HVAR's variation delta if coords is non-empty.
func (otf *Font) GlyphHorAdvance(gid GlyphIndex, coords []float64) (int, bool) {
	if otf.HMtx == nil {
		return 0, false
	}
	adv, _, ok := otf.HMtx.HMetrics(gid)
	if !ok {
		return 0, false
	}
	v := float64(adv)
	if len(coords) > 0 && otf.HVar != nil {
		v += otf.HVar.AdvanceDelta(gid, coords)
	}
	return int(v), true
}

// GlyphHorSideBearing returns a glyph's left side bearing in font design
// units, applying HVAR's variation delta if coords is non-empty.
func (otf *Font) GlyphHorSideBearing(gid GlyphIndex, coords []float64) (int, bool) {
	if otf.HMtx == nil {
		return 0, false
	}
	_, lsb, ok := otf.HMtx.HMetrics(gid)
	if !ok {
		return 0, false
	}
	v := float64(lsb)
	if len(coords) > 0 && otf.HVar != nil {
		v += otf.HVar.SideBearingDelta(gid, coords)
	}
	return int(v), true
}

// GlyphVerAdvance returns a glyph's vertical advance height in font
// design units, applying VVAR's variation delta if coords is non-empty.
func (otf *Font) GlyphVerAdvance(gid GlyphIndex, coords []float64) (int, bool) {
	if otf.VMtx == nil {
		return 0, false
	}
	adv, _, ok := otf.VMtx.VMetrics(gid)
	if !ok {
		return 0, false
	}
	v := float64(adv)
	if len(coords) > 0 && otf.VVar != nil {
		v += otf.VVar.AdvanceDelta(gid, coords)
	}
	return int(v), true
}

// GlyphVerSideBearing returns a glyph's top side bearing in font design
// units, applying VVAR's variation delta if coords is non-empty.
func (otf *Font) GlyphVerSideBearing(gid GlyphIndex, coords []float64) (int, bool) {
	if otf.VMtx == nil {
		return 0, false
	}
	_, tsb, ok := otf.VMtx.VMetrics(gid)
	if !ok {
		return 0, false
	}
	v := float64(tsb)
	if len(coords) > 0 && otf.VVar != nil {
		v += otf.VVar.SideBearingDelta(gid, coords)
	}
	return int(v), true
}

// GlyphsKerning returns the kerning adjustment (in font design units) to
// apply between a left/right glyph pair, or (0, false) if the font has
// no kern table or no pair entry for this combination.
func (otf *Font) GlyphsKerning(left, right GlyphIndex) (int16, bool) {
	if otf.Kern == nil {
		return 0, false
	}
	return otf.Kern.Kerning(left, right)
}

// GlyphClass returns the GDEF glyph class (base/ligature/mark/component)
// for gid, or 0 if the font has no GDEF table or no classification for
// gid.
func (otf *Font) GlyphClass(gid GlyphIndex) int {
	if otf.GDef == nil {
		return 0
	}
	return otf.GDef.GlyphClass(gid)
}

// GlyphMarkAttachmentClass returns the GDEF mark-attachment class for
// gid, or 0 if the font has no GDEF table or no classification for gid.
func (otf *Font) GlyphMarkAttachmentClass(gid GlyphIndex) int {
	if otf.GDef == nil {
		return 0
	}
	return otf.GDef.MarkAttachmentClass(gid)
}

// IsMarkGlyph reports whether gid is a mark: either GDEF's GlyphClassDef
// gives it the mark class, or it belongs to the GDEF mark glyph set at
// setIndex (an index into a GSUB/GPOS lookup's MarkFilteringSet, which
// ot itself does not interpret — callers supply the index). Pass -1 to
// check GlyphClassDef only.
func (otf *Font) IsMarkGlyph(gid GlyphIndex, setIndex int) bool {
	if otf.GDef == nil {
		return false
	}
	return otf.GDef.IsMarkGlyph(gid, setIndex)
}

// GlyphName returns a glyph's PostScript name, trying the post table
// (version 2.0) first and falling back to CFF's charset-derived naming
// if present. ot's CFF reader does not retain the charset/SID tables
// needed for charset-derived names, so the CFF fallback is a no-op; see
// DESIGN.md.
func (otf *Font) GlyphName(gid GlyphIndex) (string, bool) {
	if otf.Post != nil {
		if name, ok := otf.Post.GlyphName(gid); ok {
			return name, true
		}
	}
	return "", false
}

// FamilyName returns the font's family name (name ID 1), preferring the
// Windows platform record.
func (otf *Font) FamilyName() (string, bool) {
	if otf.Name == nil {
		return "", false
	}
	return otf.Name.NameString(NameIDFontFamily)
}

// PostScriptName returns the font's PostScript name (name ID 6).
func (otf *Font) PostScriptName() (string, bool) {
	if otf.Name == nil {
		return "", false
	}
	return otf.Name.NameString(NameIDPostScriptName)
}

// UnitsPerEm returns the font's design-unit scale (head.unitsPerEm), or 0
// if the font has no head table.
func (otf *Font) UnitsPerEm() uint16 {
	if otf.Head == nil {
		return 0
	}
	return otf.Head.UnitsPerEm
}

// Ascender, Descender and LineGap return the font's horizontal typographic
// metrics (hhea), with MVAR's variation delta applied if coords is
// non-empty.
func (otf *Font) Ascender(coords []float64) (int, bool) {
	if otf.HHea == nil {
		return 0, false
	}
	v := float64(otf.HHea.Ascender)
	if len(coords) > 0 && otf.MVar != nil {
		v += otf.MVar.Delta(MVarTagHHeaAscender, coords)
	}
	return int(v), true
}

func (otf *Font) Descender(coords []float64) (int, bool) {
	if otf.HHea == nil {
		return 0, false
	}
	v := float64(otf.HHea.Descender)
	if len(coords) > 0 && otf.MVar != nil {
		v += otf.MVar.Delta(MVarTagHHeaDescender, coords)
	}
	return int(v), true
}

func (otf *Font) LineGap(coords []float64) (int, bool) {
	if otf.HHea == nil {
		return 0, false
	}
	v := float64(otf.HHea.LineGap)
	if len(coords) > 0 && otf.MVar != nil {
		v += otf.MVar.Delta(MVarTagHHeaLineGap, coords)
	}
	return int(v), true
}

// GlyphIndex maps a Unicode code point to a glyph index via the font's
// best cmap subtable, or (0, false) if the font has no cmap or r is
// unmapped.
func (otf *Font) GlyphIndex(r rune) (GlyphIndex, bool) {
	if otf.CMap == nil {
		return 0, false
	}
	return otf.CMap.GlyphIndex(r)
}

// GlyphVariationIndex maps a (base rune, variation selector) pair to a
// glyph index via the font's cmap format 14 variation sequences table,
// or (0, false) if the font has no cmap, no format 14 subtable, or the
// sequence is unregistered.
func (otf *Font) GlyphVariationIndex(base, selector rune) (GlyphIndex, bool) {
	if otf.CMap == nil {
		return 0, false
	}
	return otf.CMap.GlyphVariationIndex(base, selector)
}

// GlyphVerticalOrigin returns the vertical-layout origin Y coordinate for
// gid (VORG), or (0, false) if the font has no VORG table.
func (otf *Font) GlyphVerticalOrigin(gid GlyphIndex) (int16, bool) {
	if otf.VOrg == nil {
		return 0, false
	}
	return otf.VOrg.VertOriginY(gid), true
}

// Height returns the font's overall line height (typographic
// ascender - descender + line gap), with MVAR's variation deltas applied
// if coords is non-empty. Falls back to hhea when OS/2 is absent.
func (otf *Font) Height(coords []float64) (int, bool) {
	if otf.OS2 != nil {
		asc := float64(otf.OS2.TypoAscender)
		desc := float64(otf.OS2.TypoDescender)
		gap := float64(otf.OS2.TypoLineGap)
		if len(coords) > 0 && otf.MVar != nil {
			asc += otf.MVar.Delta(MVarTagHHeaAscender, coords)
			desc += otf.MVar.Delta(MVarTagHHeaDescender, coords)
			gap += otf.MVar.Delta(MVarTagHHeaLineGap, coords)
		}
		return int(asc - desc + gap), true
	}
	return otf.lineHeightFromHHea(coords)
}

func (otf *Font) lineHeightFromHHea(coords []float64) (int, bool) {
	asc, ok := otf.Ascender(coords)
	if !ok {
		return 0, false
	}
	desc, _ := otf.Descender(coords)
	gap, _ := otf.LineGap(coords)
	return asc - desc + gap, true
}

// XHeight returns the font's x-height (OS/2.sxHeight, version 2+), with
// MVAR's variation delta applied if coords is non-empty. Returns
// (0, false) if the font has no OS/2 table or OS/2 predates version 2.
func (otf *Font) XHeight(coords []float64) (int, bool) {
	if otf.OS2 == nil || !otf.OS2.HasSxHeight {
		return 0, false
	}
	v := float64(otf.OS2.SxHeight)
	if len(coords) > 0 && otf.MVar != nil {
		v += otf.MVar.Delta(MVarTagXHeight, coords)
	}
	return int(v), true
}

// Weight returns the font's nominal weight class (OS/2.usWeightClass,
// 1-1000, 400 = normal, 700 = bold), or (0, false) if the font has no
// OS/2 table. Variable fonts vary weight through fvar's "wght" axis
// rather than an MVAR delta, so this takes no coords argument — query
// the "wght" axis via FVar.AxisIndex/NormalizeCoordinates instead.
func (otf *Font) Weight() (int, bool) {
	if otf.OS2 == nil {
		return 0, false
	}
	return int(otf.OS2.WeightClass), true
}

// Width returns the font's nominal width class (OS/2.usWidthClass, 1-9,
// 5 = normal), or (0, false) if the font has no OS/2 table.
func (otf *Font) Width() (int, bool) {
	if otf.OS2 == nil {
		return 0, false
	}
	return int(otf.OS2.WidthClass), true
}

// IsRegular, IsItalic, IsBold and IsOblique report the font's nominal
// style, preferring OS/2.fsSelection when present (it is the more
// precise, more recently specified bitfield) and falling back to
// head.macStyle otherwise. They return false across the board if the
// font has neither table.
func (otf *Font) IsRegular() bool {
	if otf.OS2 != nil {
		return otf.OS2.FsSelection&FsSelectionRegular != 0
	}
	if otf.Head != nil {
		return otf.Head.MacStyle&(MacStyleBold|MacStyleItalic) == 0
	}
	return false
}

func (otf *Font) IsItalic() bool {
	if otf.OS2 != nil {
		return otf.OS2.FsSelection&FsSelectionItalic != 0
	}
	if otf.Head != nil {
		return otf.Head.MacStyle&MacStyleItalic != 0
	}
	return false
}

func (otf *Font) IsBold() bool {
	if otf.OS2 != nil {
		return otf.OS2.FsSelection&FsSelectionBold != 0
	}
	if otf.Head != nil {
		return otf.Head.MacStyle&MacStyleBold != 0
	}
	return false
}

// IsOblique reports whether the font is flagged oblique. OS/2's oblique
// bit was only added with fsSelection's extended use (no head.macStyle
// equivalent exists), so this is false whenever OS/2 is absent.
func (otf *Font) IsOblique() bool {
	if otf.OS2 == nil {
		return false
	}
	return otf.OS2.FsSelection&FsSelectionOblique != 0
}

// UnderlineMetrics returns the underline position and thickness in font
// design units (post table, with MVAR's variation deltas applied if
// coords is non-empty), or (0, 0, false) if the font has no post table.
func (otf *Font) UnderlineMetrics(coords []float64) (position, thickness int, ok bool) {
	if otf.Post == nil {
		return 0, 0, false
	}
	pos := float64(otf.Post.UnderlinePosition)
	thick := float64(otf.Post.UnderlineThickness)
	if len(coords) > 0 && otf.MVar != nil {
		pos += otf.MVar.Delta(MVarTagUnderlineOffset, coords)
		thick += otf.MVar.Delta(MVarTagUnderlineSize, coords)
	}
	return int(pos), int(thick), true
}

// StrikeoutMetrics returns the strikeout position and thickness in font
// design units (OS/2 table, with MVAR's variation deltas applied if
// coords is non-empty), or (0, 0, false) if the font has no OS/2 table.
func (otf *Font) StrikeoutMetrics(coords []float64) (position, size int, ok bool) {
	if otf.OS2 == nil {
		return 0, 0, false
	}
	pos := float64(otf.OS2.StrikeoutPosition)
	sz := float64(otf.OS2.StrikeoutSize)
	if len(coords) > 0 && otf.MVar != nil {
		pos += otf.MVar.Delta(MVarTagStrikeoutOffset, coords)
		sz += otf.MVar.Delta(MVarTagStrikeoutSize, coords)
	}
	return int(pos), int(sz), true
}

// SubscriptMetrics returns the subscript em size (x, y) and offset
// (x, y) in font design units (OS/2 table, with MVAR's variation deltas
// applied if coords is non-empty), or the zero value and false if the
// font has no OS/2 table.
func (otf *Font) SubscriptMetrics(coords []float64) (xSize, ySize, xOffset, yOffset int, ok bool) {
	if otf.OS2 == nil {
		return 0, 0, 0, 0, false
	}
	xs := float64(otf.OS2.SubscriptXSize)
	ys := float64(otf.OS2.SubscriptYSize)
	xo := float64(otf.OS2.SubscriptXOffset)
	yo := float64(otf.OS2.SubscriptYOffset)
	if len(coords) > 0 && otf.MVar != nil {
		xs += otf.MVar.Delta(MVarTagSubscriptXSize, coords)
		ys += otf.MVar.Delta(MVarTagSubscriptYSize, coords)
		xo += otf.MVar.Delta(MVarTagSubscriptXOffset, coords)
		yo += otf.MVar.Delta(MVarTagSubscriptYOffset, coords)
	}
	return int(xs), int(ys), int(xo), int(yo), true
}

// SuperscriptMetrics returns the superscript em size (x, y) and offset
// (x, y) in font design units (OS/2 table, with MVAR's variation deltas
// applied if coords is non-empty), or the zero value and false if the
// font has no OS/2 table.
func (otf *Font) SuperscriptMetrics(coords []float64) (xSize, ySize, xOffset, yOffset int, ok bool) {
	if otf.OS2 == nil {
		return 0, 0, 0, 0, false
	}
	xs := float64(otf.OS2.SuperscriptXSize)
	ys := float64(otf.OS2.SuperscriptYSize)
	xo := float64(otf.OS2.SuperscriptXOffset)
	yo := float64(otf.OS2.SuperscriptYOffset)
	if len(coords) > 0 && otf.MVar != nil {
		xs += otf.MVar.Delta(MVarTagSuperscriptXSize, coords)
		ys += otf.MVar.Delta(MVarTagSuperscriptYSize, coords)
		xo += otf.MVar.Delta(MVarTagSuperscriptXOffset, coords)
		yo += otf.MVar.Delta(MVarTagSuperscriptYOffset, coords)
	}
	return int(xs), int(ys), int(xo), int(yo), true
}

// NormalizeCoordinates converts user-space design-variation coordinates
// (e.g. {"wght": 600}) into the normalized (-1..0..+1) space gvar/HVAR/
// VVAR/MVAR deltas are expressed in, applying fvar's linear
// min/default/max normalization and then avar's piecewise-linear
// remapping, in fvar axis order. Axes absent from userCoords use their
// fvar default (which normalizes to 0).
func (otf *Font) NormalizeCoordinates(userCoords map[string]float64) []float64 {
	if otf.FVar == nil {
		return nil
	}
	coords := make([]float64, len(otf.FVar.Axes))
	for i, axis := range otf.FVar.Axes {
		v, ok := userCoords[axis.Tag.String()]
		if !ok {
			v = axis.DefaultValue
		}
		var n float64
		switch {
		case v < axis.DefaultValue:
			if axis.MinValue == axis.DefaultValue {
				n = 0
			} else {
				n = -(axis.DefaultValue - v) / (axis.DefaultValue - axis.MinValue)
			}
		case v > axis.DefaultValue:
			if axis.MaxValue == axis.DefaultValue {
				n = 0
			} else {
				n = (v - axis.DefaultValue) / (axis.MaxValue - axis.DefaultValue)
			}
		}
		if otf.AVar != nil {
			n = otf.AVar.Apply(i, n)
		}
		coords[i] = n
	}
	return coords
}
