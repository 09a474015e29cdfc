package ot

import (
	"bytes"
	"errors"
	"io"
)

// Reading bytes from a font's binary representation.

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// --- Locations, i.e. byte segments/slices -----------------------------------

// NavLocation is a position at a byte within a font's binary data. It
// represents the start of a segment/slice of binary data.
//
// NavLocation is the destination of a Navigator field lookup, giving
// access to underlying (unstructured) font data. It is the client's
// responsibility to interpret the structure and impose it onto the
// NavLocation's bytes.
type NavLocation interface {
	Size() int                  // size in bytes
	Bytes() []byte              // return as a byte slice
	Slice(int, int) NavLocation // return a sub-segment of this location
	U16(int) uint16             // convenience access to 16 bit data at byte index
	U32(int) uint32             // convenience access to 32 bit data at byte index
	Glyphs() []GlyphIndex       // convenience conversion to slice of glyphs
}

// binarySegm is a segment of byte data. It implements the NavLocation
// interface. Every table in package ot is parsed as a binarySegm view
// into the font's original byte buffer — nothing is copied.
type binarySegm []byte

func (b binarySegm) Size() int {
	return len(b)
}

func (b binarySegm) Bytes() []byte {
	return b
}

// Slice returns a sub-segment of this location.
func (b binarySegm) Slice(from int, to int) NavLocation {
	if from < 0 {
		from = 0
	}
	if to > len(b) {
		to = len(b)
	}
	return b[from:to]
}

func (b binarySegm) Reader() io.Reader {
	return bytes.NewReader(b)
}

func (b binarySegm) U16(i int) uint16 {
	n, err := b.u16(i)
	if err != nil {
		return 0
	}
	return n
}

func (b binarySegm) U32(i int) uint32 {
	n, err := b.u32(i)
	if err != nil {
		return 0
	}
	return n
}

// Glyphs reinterprets b as a sequence of big-endian glyph indices, e.g.
// a cmap format 4 glyphIdArray or a GSUB/GPOS-free glyph-ID list.
func (b binarySegm) Glyphs() []GlyphIndex {
	l := len(b)
	if l|0x1 > 0 {
		l += 1
	}
	glyphs := make([]GlyphIndex, l/2)
	j := 0
	for i := 0; i < len(b); i += 2 {
		glyphs[j] = GlyphIndex(b[i])<<8 + GlyphIndex(b[i+1])
		j++
	}
	return glyphs
}

// view returns n bytes at the given offset. The byte segment returned is
// a sub-slice of b.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n <= 0 || offset+n > len(b) {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// u16 returns the uint16 in b at the relative offset i.
func (b binarySegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

// u32 returns the uint32 in b at the relative offset i.
func (b binarySegm) u32(i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return u32(buf), nil
}

// --- Ranges of glyphs --------------------------------------------------

// GlyphRange is a set of glyph IDs stored compactly in a table's binary
// data, as used by Coverage (formats 1 and 2) and GDEF's mark-glyph
// sets. If an input glyph g is contained in the range, its coverage
// index and true are returned, false otherwise.
type GlyphRange interface {
	Match(g GlyphIndex) (int, bool) // is glyph ID g in range?
	ByteSize() int
}

// glyphRangeArray backs Coverage format 1: a sorted block of individual
// glyph IDs, returned index is position within the block.
type glyphRangeArray struct {
	is32     bool // keys are 32 bit
	count    int  // number of glyph keys
	data     binarySegm
	byteSize int
}

func (r *glyphRangeArray) Match(g GlyphIndex) (int, bool) {
	if r.count <= 0 {
		return 0, false
	}
	if r.is32 {
		for i := 0; i < r.count; i++ {
			k, err := r.data.u32(i * 4)
			if err != nil {
				return 0, false
			} else if GlyphIndex(k) == g {
				return i, true
			}
		}
	} else {
		for i := 0; i < r.count; i++ {
			k, err := r.data.u16(i * 2)
			if err != nil {
				return 0, false
			} else if GlyphIndex(k) == g {
				return i, true
			}
		}
	}
	return 0, false
}

func (r *glyphRangeArray) ByteSize() int {
	return r.byteSize
}

type rangeRecord struct {
	from, to GlyphIndex
	index    uint16
}

// glyphRangeRecords backs Coverage format 2: glyph IDs stored as
// (startGlyph, endGlyph, startCoverageIndex) range records.
type glyphRangeRecords struct {
	is32     bool // keys are 32 bit
	count    int  // number of range records
	data     binarySegm
	byteSize int
}

func (r *glyphRangeRecords) Match(g GlyphIndex) (int, bool) {
	if r.count <= 0 {
		return 0, false
	}
	record := rangeRecord{}
	if r.is32 {
		for i := 0; i < r.count; i++ {
			k, err := r.data.u32(i * (4 + 4 + 2))
			if err != nil {
				return 0, false
			}
			record.from = GlyphIndex(k)
			k, _ = r.data.u32(i*(2+2+2) + 4)
			record.to = GlyphIndex(k)
			v, _ := r.data.u16(i*(2+2+2) + 6)
			record.index = v
			if record.from <= g && g <= record.to {
				return int(record.index + uint16(g-record.from)), true
			}
		}
	} else {
		for i := 0; i < r.count; i++ {
			k, err := r.data.u16(i * (2 + 2 + 2))
			if err != nil {
				return 0, false
			}
			record.from = GlyphIndex(k)
			k, _ = r.data.u16(i*(2+2+2) + 2)
			record.to = GlyphIndex(k)
			k, _ = r.data.u16(i*(2+2+2) + 4)
			record.index = k
			if record.from <= g && g <= record.to {
				return int(record.index + uint16(g-record.from)), true
			}
		}
	}
	return 0, false
}

func (r *glyphRangeRecords) ByteSize() int {
	return r.byteSize
}

// --- Arrays --------------------------------------------------------------

// array is a view onto a linear sequence of equal-sized records, used by
// ClassDef (format 1's glyph-to-class values, format 2's class-range
// records) to avoid allocating a Go slice per table.
type array struct {
	recordSize int
	length     int
	loc        binarySegm
}

// Len returns the number of entries in the array.
func (a array) Len() int {
	return a.length
}

// Get returns entry #i as a byte location. An out-of-range index yields
// entry 0 rather than an error; callers such as ClassDef check their own
// bounds before calling Get.
func (a array) Get(i int) NavLocation {
	if i < 0 || (i+1)*a.recordSize > len(a.loc.Bytes()) {
		i = 0
	}
	b, _ := a.loc.view(i*a.recordSize, a.recordSize)
	return b
}
