// Package fontload is a thin file-loading helper used by cmd/otdump to get
// font bytes into memory; actual font parsing is
// always done by ot.Parse — reading files from disk is explicitly out of
// scope for package ot itself.
package fontload

import (
	"os"

	"github.com/opentype-go/otfcore/ot"
)

// ScalableFont pairs a font's raw bytes with its parsed ot.Font view. The
// raw bytes must outlive Font, since ot.Font never copies table data.
type ScalableFont struct {
	Fontname string
	Binary   []byte
	Font     *ot.Font
}

// LoadOpenTypeFont reads an OpenType/TrueType font (or font collection
// member 0) from a file and parses it with ot.Parse.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	return ParseOpenTypeFont(bytez)
}

// ParseOpenTypeFont parses an OpenType/TrueType font already loaded into
// memory.
func ParseOpenTypeFont(fbytes []byte) (*ScalableFont, error) {
	f, err := ot.Parse(fbytes, 0)
	if err != nil {
		return nil, err
	}
	sf := &ScalableFont{Binary: fbytes, Font: f}
	if name, ok := f.FamilyName(); ok {
		sf.Fontname = name
	}
	return sf, nil
}
