package helptext

import (
	"strconv"
	"strings"
)

// Position is a location in a Buffer. Line is 1-based, Column counts runes
// from the start of the line and Offset counts bytes from the start of the
// buffer.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + "." + strconv.Itoa(p.Column)
}

// Margins are left margins in terminal columns for the first line of a
// logical line and for its wrapped continuation lines.
type Margins struct {
	First int
	Rest  int
}

// TagStyle is the display rule configured for a tag.
type TagStyle struct {
	Prefix  string
	Margins Margins
}

// TagStyler resolves tag styles for display.
type TagStyler interface {
	TagStyle(Tag) TagStyle
}

// Buffer is an append-only styled text store. It implements Sink.
type Buffer struct {
	runs       []Run
	starts     []int
	lineStarts []int
	size       int
	end        Position
	styles     map[Tag]TagStyle
}

// NewBuffer returns an empty buffer positioned at 1.0.
func NewBuffer() *Buffer {
	return &Buffer{
		lineStarts: []int{0},
		end:        Position{Line: 1},
	}
}

// Insert appends text with tags. Empty text is ignored.
func (b *Buffer) Insert(text string, tags TagSet) {
	if text == "" {
		return
	}
	if b.lineStarts == nil {
		b.lineStarts = []int{0}
		b.end = Position{Line: 1}
	}
	b.runs = append(b.runs, Run{Text: text, Tags: tags})
	b.starts = append(b.starts, b.size)
	for i, r := range text {
		if r == '\n' {
			b.end.Line++
			b.end.Column = 0
			b.lineStarts = append(b.lineStarts, b.size+i+1)
			continue
		}
		b.end.Column++
	}
	b.size += len(text)
	b.end.Offset = b.size
}

// End returns the position just after the last inserted rune.
func (b *Buffer) End() Position {
	if b.lineStarts == nil {
		return Position{Line: 1}
	}
	return b.end
}

// Len returns the buffer size in bytes.
func (b *Buffer) Len() int { return b.size }

// Runs returns a copy of all runs in insertion order.
func (b *Buffer) Runs() []Run {
	out := make([]Run, len(b.runs))
	copy(out, b.runs)
	return out
}

// Text returns the concatenated text of all runs.
func (b *Buffer) Text() string {
	var sb strings.Builder
	sb.Grow(b.size)
	for _, r := range b.runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// LineStart returns the position of the first rune on pos's line. Lines past
// the end resolve to the end of the buffer.
func (b *Buffer) LineStart(pos Position) Position {
	if pos.Line < 1 {
		return Position{Line: 1}
	}
	if pos.Line > len(b.lineStarts) {
		return b.End()
	}
	return Position{Line: pos.Line, Offset: b.lineStarts[pos.Line-1]}
}

// RunsFrom returns the runs from the start of pos's line to the end.
func (b *Buffer) RunsFrom(pos Position) []Run {
	return b.slice(b.LineStart(pos).Offset, b.size)
}

// RunsBetween returns the runs from the start of from's line up to the start
// of to's line.
func (b *Buffer) RunsBetween(from, to Position) []Run {
	return b.slice(b.LineStart(from).Offset, b.LineStart(to).Offset)
}

func (b *Buffer) slice(from, to int) []Run {
	if from < 0 {
		from = 0
	}
	if to > b.size {
		to = b.size
	}
	if from >= to {
		return nil
	}
	var out []Run
	for i, r := range b.runs {
		start := b.starts[i]
		end := start + len(r.Text)
		if end <= from {
			continue
		}
		if start >= to {
			break
		}
		lo, hi := 0, len(r.Text)
		if start < from {
			lo = from - start
		}
		if end > to {
			hi = to - start
		}
		out = append(out, Run{Text: r.Text[lo:hi], Tags: r.Tags})
	}
	return out
}

// Configure sets the display style for tag.
func (b *Buffer) Configure(tag Tag, style TagStyle) {
	if b.styles == nil {
		b.styles = make(map[Tag]TagStyle)
	}
	b.styles[tag] = style
}

// TagStyle returns the configured style for tag, or the zero style.
func (b *Buffer) TagStyle(tag Tag) TagStyle {
	return b.styles[tag]
}

// Lines splits runs at newlines. Each line holds the non-empty run pieces
// that fall on it; a trailing newline does not start an extra line.
func Lines(runs []Run) [][]Run {
	var (
		lines [][]Run
		cur   []Run
		open  bool
	)
	for _, r := range runs {
		text := r.Text
		for text != "" {
			open = true
			i := strings.IndexByte(text, '\n')
			if i < 0 {
				cur = append(cur, Run{Text: text, Tags: r.Tags})
				break
			}
			if i > 0 {
				cur = append(cur, Run{Text: text[:i], Tags: r.Tags})
			}
			lines = append(lines, cur)
			cur = nil
			open = false
			text = text[i+1:]
		}
	}
	if open {
		lines = append(lines, cur)
	}
	return lines
}
