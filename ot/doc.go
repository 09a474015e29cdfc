/*
Package ot provides a stateless reader for OpenType and TrueType font
containers.

Given an immutable byte slice holding a font file (or one member of a font
collection), Parse reads the table directory, parses every table it
recognizes, checks that the mandatory tables (head, hhea, maxp) are present,
and returns a *Font. Tables are not parsed lazily: all of this happens
inside Parse. Parsed tables keep sub-slices of the caller's buffer rather
than copies of it, but Parse does allocate the records it decodes (the
table map, metric arrays, CFF INDEX offsets, fvar/avar arrays, and a
256-byte copy for a cmap format 0 subtable). Package ot never mutates the
input, and every multi-byte read is bounds-checked.

# Scope

The package covers table parsing and glyph outline evaluation: character to
glyph resolution (cmap, all formats except the mixed-coverage format 8),
glyph outlines from glyf, CFF and CFF2, horizontal/vertical metrics,
kerning, font-level metrics, naming records, and the OpenType variation
subsystem (fvar/avar/gvar/HVAR/VVAR/MVAR). A small GDEF/Coverage/ClassDef
skeleton is kept for shaping-adjacent clients, but GSUB/GPOS lookup
application itself is not part of this package — text shaping and layout
belong to a calling library such as HarfBuzz, which parses font bytes
independently.

Font file acquisition, rasterization, Unicode normalization, color-font
tables (CPAL/COLR/SVG), and font writing are out of scope.

# Failure model

Every fallible query returns an absent result (a boolean or error) rather
than panicking. A Font additionally accumulates non-fatal FontError/
FontWarning values during Parse, inspectable via Errors/Warnings/
CriticalErrors — these are advisory diagnostics and never change what a
query returns. outline_glyph (OutlineGlyph) may have already written
commands to the caller's sink even when it ultimately returns an absent
bounding box; callers must check the returned bool before trusting them.

# Status

Font collections (TTC) and variable fonts are supported. GSUB/GPOS lookup
application (shaping) is not: callers needing that should consult HarfBuzz
or a sister shaping package built on top of ot.

Some cmap-decoding code traces its lineage to
golang.org/x/image/font/sfnt/cmap.go (Copyright 2017 The Go Authors,
BSD-style license).
*/
package ot

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

func assertEqualInt(name string, a, b int) {
	if a != b {
		panic(fmt.Sprintf("assertion [%s] failed: %d != %d", name, a, b))
	}
}

func assertEqualUint16(name string, a, b uint16) {
	if a != b {
		panic(fmt.Sprintf("assertion [%s] failed: %d != %d", name, a, b))
	}
}

func assertIsType[T any](name string, x any) {
	if _, ok := x.(T); !ok {
		panic(fmt.Sprintf("assertion [%s] failed: wrong type for %v: %T", name, x, x))
	}
}
