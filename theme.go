package helptext

import (
	"sort"
	"strings"

	"pkt.systems/helptext/internal/palette"
)

// Style describes a terminal style as an ANSI prefix sequence.
type Style struct {
	Prefix string
}

// Styles groups the semantic styles used by the display.
type Styles struct {
	Text      Style
	Heading   [3]Style
	Paragraph Style
	Strong    Style
	Emphasis  Style
	Code      Style
	CodeBlock Style
	List      [4]Style
}

// Theme provides named styles for help rendering.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

// BoringTheme returns a theme without any escape sequences.
func BoringTheme() Theme {
	return NewTheme("boring", Styles{})
}

func style(prefixes ...string) Style {
	var b strings.Builder
	for _, p := range prefixes {
		b.WriteString(p)
	}
	return Style{Prefix: b.String()}
}

func stylesFromPalette(p palette.Palette) Styles {
	marker := style(p.ListMarker)
	return Styles{
		Text:      style(p.Text),
		Heading:   [3]Style{style(p.H1), style(p.H2), style(p.H3)},
		Paragraph: style(p.Paragraph),
		Strong:    style(p.Strong),
		Emphasis:  style(p.Emphasis),
		Code:      style(p.CodeInline),
		CodeBlock: style(p.CodeBlock),
		List:      [4]Style{marker, marker, marker, marker},
	}
}

var builtinThemes = map[string]Theme{
	"default":        theme{name: "default", styles: stylesFromPalette(palette.PaletteDefault)},
	"idle":           theme{name: "idle", styles: stylesFromPalette(palette.PaletteIdle)},
	"solarized-dark": theme{name: "solarized-dark", styles: stylesFromPalette(palette.PaletteSolarizedDark)},
	"gruvbox":        theme{name: "gruvbox", styles: stylesFromPalette(palette.PaletteGruvbox)},
	"boring":         BoringTheme(),
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

// Layout maps tags to left margins.
type Layout map[Tag]Margins

// DefaultLayout scales the help window's pixel margins to terminal columns.
func DefaultLayout() Layout {
	return Layout{
		TagParagraph: {First: 2, Rest: 2},
		TagCodeBlock: {First: 4, Rest: 4},
		ListTag(1):   {First: 2, Rest: 4},
		ListTag(2):   {First: 4, Rest: 6},
		ListTag(3):   {First: 6, Rest: 8},
		ListTag(4):   {First: 8, Rest: 10},
	}
}

// TagConfigurer stores display styles per tag. Buffer and StyleTable
// implement it.
type TagConfigurer interface {
	Configure(tag Tag, style TagStyle)
}

// StyleTable is a tag style table kept apart from any buffer, so one
// rendered buffer can be shown with several themes at once.
type StyleTable map[Tag]TagStyle

// NewStyleTable returns the styles of theme laid out by layout.
func NewStyleTable(t Theme, layout Layout) StyleTable {
	st := make(StyleTable)
	ConfigureTags(st, t, layout)
	return st
}

// Configure sets the style for tag.
func (st StyleTable) Configure(tag Tag, style TagStyle) { st[tag] = style }

// TagStyle returns the style for tag, or the zero style.
func (st StyleTable) TagStyle(tag Tag) TagStyle { return st[tag] }

// ConfigureTags fills the style table of buf from theme and layout. It is
// called once by the display side before or after rendering.
func ConfigureTags(buf TagConfigurer, t Theme, layout Layout) {
	s := t.Styles()
	prefixes := map[Tag]Style{
		TagH1:        s.Heading[0],
		TagH2:        s.Heading[1],
		TagH3:        s.Heading[2],
		TagParagraph: s.Paragraph,
		TagStrong:    s.Strong,
		TagEmphasis:  s.Emphasis,
		TagCode:      s.Code,
		TagCodeBlock: s.CodeBlock,
	}
	for i, ls := range s.List {
		prefixes[ListTag(i+1)] = ls
	}
	for tag, st := range prefixes {
		buf.Configure(tag, TagStyle{Prefix: st.Prefix, Margins: layout[tag]})
	}
	for tag, m := range layout {
		if _, ok := prefixes[tag]; !ok {
			buf.Configure(tag, TagStyle{Margins: m})
		}
	}
	buf.Configure(TagText, TagStyle{Prefix: s.Text.Prefix})
}
