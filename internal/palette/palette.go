// Package palette holds the ANSI SGR sequences behind the built-in themes.
package palette

import (
	"fmt"
	"strconv"
)

const (
	Reset     = "\x1b[0m"
	Bold      = "\x1b[1m"
	Italic    = "\x1b[3m"
	Underline = "\x1b[4m"
)

// Palette assigns SGR prefixes to the semantic parts of a help page.
type Palette struct {
	Text       string
	H1         string
	H2         string
	H3         string
	Paragraph  string
	Strong     string
	Emphasis   string
	CodeInline string
	CodeBlock  string
	ListMarker string
}

// FG returns a 24-bit foreground sequence for a "#rrggbb" colour.
func FG(hex string) string {
	r, g, b := rgb(hex)
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

// BG returns a 24-bit background sequence for a "#rrggbb" colour.
func BG(hex string) string {
	r, g, b := rgb(hex)
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
}

func rgb(hex string) (uint8, uint8, uint8) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

var (
	// PaletteDefault uses the 16 base colours so it suits any terminal scheme.
	PaletteDefault = Palette{
		H1:         Bold + "\x1b[95m",
		H2:         Bold + "\x1b[94m",
		H3:         Bold + "\x1b[96m",
		Strong:     Bold,
		Emphasis:   Italic,
		CodeInline: "\x1b[33m",
		CodeBlock:  "\x1b[32m",
		ListMarker: "\x1b[36m",
	}

	// PaletteIdle follows the colours of the classic IDLE help window on a
	// light background.
	PaletteIdle = Palette{
		Text:       FG("#000000"),
		H1:         Bold + FG("#000000"),
		H2:         Bold + FG("#000000"),
		H3:         Bold + FG("#000000"),
		Paragraph:  FG("#000000"),
		Strong:     Bold,
		Emphasis:   Italic,
		CodeInline: FG("#000000") + BG("#f6f6ff"),
		CodeBlock:  FG("#000000") + BG("#eeffcc"),
		ListMarker: FG("#000000"),
	}

	PaletteSolarizedDark = Palette{
		Text:       FG("#839496"),
		H1:         Bold + FG("#b58900"),
		H2:         Bold + FG("#cb4b16"),
		H3:         Bold + FG("#268bd2"),
		Paragraph:  FG("#839496"),
		Strong:     Bold + FG("#93a1a1"),
		Emphasis:   Italic + FG("#93a1a1"),
		CodeInline: FG("#2aa198"),
		CodeBlock:  FG("#859900") + BG("#073642"),
		ListMarker: FG("#6c71c4"),
	}

	PaletteGruvbox = Palette{
		Text:       FG("#ebdbb2"),
		H1:         Bold + FG("#fb4934"),
		H2:         Bold + FG("#fabd2f"),
		H3:         Bold + FG("#b8bb26"),
		Paragraph:  FG("#ebdbb2"),
		Strong:     Bold + FG("#fe8019"),
		Emphasis:   Italic + FG("#d3869b"),
		CodeInline: FG("#8ec07c"),
		CodeBlock:  FG("#8ec07c") + BG("#3c3836"),
		ListMarker: FG("#83a598"),
	}
)
