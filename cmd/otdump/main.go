// Command otdump is a small interactive REPL for inspecting a parsed
// OpenType/TrueType font: its table directory, naming, and per-glyph
// metrics. It exists as a demonstration harness for package ot, not as a
// shaping or rendering tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"

	"github.com/opentype-go/otfcore/internal/fontload"
	"github.com/opentype-go/otfcore/ot"
)

func tracer() tracing.Trace {
	return tracing.Select("otdump")
}

func main() {
	pterm.Info.Prefix = pterm.Prefix{Text: " !  ", Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)}
	pterm.Error.Prefix = pterm.Prefix{Text: " Error", Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack)}

	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{"tracing.adapter": "go", "trace.otdump": "Info"}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Println("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().SetTraceLevel(tracing.LevelInfo)

	fontname := flag.String("font", "", "font file to load")
	flag.Parse()
	if *fontname == "" {
		pterm.Error.Println("usage: otdump -font <path>")
		os.Exit(2)
	}

	sf, err := fontload.LoadOpenTypeFont(*fontname)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(3)
	}
	pterm.Info.Printf("loaded %s, tables: %v\n", sf.Fontname, sf.Font.TableTags())

	repl, err := readline.New("ot > ")
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(4)
	}
	defer repl.Close()

	pterm.Info.Println("commands: tables | name | glyphs | metrics <gid> | bbox <gid> | kern <l> <r> | quit")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF on ctrl-D
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !dispatch(sf.Font, line) {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func dispatch(otf *ot.Font, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "quit":
		return false
	case "tables":
		pterm.Println(otf.TableTags())
	case "name":
		family, _ := otf.FamilyName()
		ps, _ := otf.PostScriptName()
		pterm.Printf("family=%q postscript=%q unitsPerEm=%d numGlyphs=%d variable=%v\n",
			family, ps, otf.UnitsPerEm(), otf.NumGlyphs(), otf.IsVariable())
	case "glyphs":
		pterm.Printf("numGlyphs=%d\n", otf.NumGlyphs())
	case "metrics":
		gid, ok := parseGlyphArg(fields, 1)
		if !ok {
			pterm.Error.Println("usage: metrics <gid>")
			return true
		}
		adv, ok1 := otf.GlyphHorAdvance(gid, nil)
		lsb, ok2 := otf.GlyphHorSideBearing(gid, nil)
		if !ok1 || !ok2 {
			pterm.Error.Println("no hmtx metrics for glyph")
			return true
		}
		pterm.Printf("glyph %d: advance=%d lsb=%d\n", gid, adv, lsb)
	case "bbox":
		gid, ok := parseGlyphArg(fields, 1)
		if !ok {
			pterm.Error.Println("usage: bbox <gid>")
			return true
		}
		box, ok := otf.GlyphBoundingBox(gid)
		if !ok {
			pterm.Error.Println("no outline for glyph")
			return true
		}
		pterm.Printf("glyph %d bbox: [%.1f %.1f %.1f %.1f]\n", gid, box.XMin, box.YMin, box.XMax, box.YMax)
	case "kern":
		l, ok1 := parseGlyphArg(fields, 1)
		r, ok2 := parseGlyphArg(fields, 2)
		if !ok1 || !ok2 {
			pterm.Error.Println("usage: kern <left-gid> <right-gid>")
			return true
		}
		adj, ok := otf.GlyphsKerning(l, r)
		if !ok {
			pterm.Println("no kern pair entry")
			return true
		}
		pterm.Printf("kern(%d,%d) = %d\n", l, r, adj)
	default:
		pterm.Error.Printf("unknown command: %s\n", fields[0])
	}
	return true
}

func parseGlyphArg(fields []string, i int) (ot.GlyphIndex, bool) {
	if i >= len(fields) {
		return 0, false
	}
	n, err := strconv.Atoi(fields[i])
	if err != nil || n < 0 {
		return 0, false
	}
	return ot.GlyphIndex(n), true
}
