package helptext

import (
	"io"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"pkt.systems/helptext/internal/palette"
)

const ansiReset = palette.Reset

// Display writes styled runs to a terminal-like writer, applying tag
// prefixes and margins and wrapping lines at a fixed width.
type Display struct {
	w        io.Writer
	width    int
	softWrap bool
}

// NewDisplay returns a display writing to w. A width of zero or less
// disables wrapping.
func NewDisplay(w io.Writer, width int, opts ...RenderOption) *Display {
	cfg := newRenderConfig(opts)
	return &Display{w: w, width: width, softWrap: cfg.softWrap}
}

// Width returns the configured wrap width.
func (d *Display) Width() int {
	return d.width
}

// SetWidth updates the wrap width.
func (d *Display) SetWidth(width int) {
	d.width = width
}

// Write formats runs with the styles resolved by styles. Blank lines before
// the first and after the last visible line are dropped and trailing blanks
// on every line are trimmed.
func (d *Display) Write(styles TagStyler, runs []Run) error {
	lines := Lines(runs)
	for i := range lines {
		lines[i] = trimLineEnd(lines[i])
	}
	for len(lines) > 0 && len(lines[0]) == 0 {
		lines = lines[1:]
	}
	for len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	var out strings.Builder
	for _, line := range lines {
		out.WriteString(d.formatLine(styles, line))
		out.WriteByte('\n')
	}
	_, err := io.WriteString(d.w, out.String())
	return err
}

func (d *Display) formatLine(styles TagStyler, line []Run) string {
	if len(line) == 0 {
		return ""
	}
	m := lineMargins(styles, line)
	base := styles.TagStyle(TagText).Prefix
	var b strings.Builder
	for _, seg := range line {
		prefix := runPrefix(styles, base, seg.Tags)
		if prefix == "" {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(prefix)
		b.WriteString(seg.Text)
		b.WriteString(ansiReset)
	}
	s := b.String()
	if d.width > 0 {
		if limit := d.width - max(m.First, m.Rest); limit > 0 {
			s = wordwrap.String(s, limit)
			if d.softWrap {
				s = wrap.String(s, limit)
			}
		}
	}
	first, rest, wrapped := strings.Cut(s, "\n")
	s = strings.Repeat(" ", m.First) + first
	if wrapped {
		s += "\n" + indent.String(rest, uint(m.Rest))
	}
	return s
}

func runPrefix(styles TagStyler, base string, tags TagSet) string {
	var b strings.Builder
	b.WriteString(base)
	for _, t := range tags.tags {
		b.WriteString(styles.TagStyle(t).Prefix)
	}
	return b.String()
}

// lineMargins takes the margins of the first run on the line; among its tags
// the last one with a margin wins.
func lineMargins(styles TagStyler, line []Run) Margins {
	tags := line[0].Tags.tags
	for i := len(tags) - 1; i >= 0; i-- {
		if m := styles.TagStyle(tags[i]).Margins; m != (Margins{}) {
			return m
		}
	}
	return Margins{}
}

func trimLineEnd(line []Run) []Run {
	for len(line) > 0 {
		last := len(line) - 1
		if t := strings.TrimRightFunc(line[last].Text, trailingBlank); t != "" {
			line[last].Text = t
			return line
		}
		line = line[:last]
	}
	return line
}
