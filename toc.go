package helptext

import (
	"strconv"
	"strings"
)

// TOCEntry is one heading in the table of contents. Label carries the
// level indent ("" for h1, two spaces for h2, four for h3) followed by the
// heading text as written. Start is where the heading line begins in the
// rendered output and Position is the end of the heading text.
type TOCEntry struct {
	Label    string
	Level    int
	Start    Position
	Position Position
}

var labelFolder = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// DisplayLabel returns the label on a single line.
func (e TOCEntry) DisplayLabel() string {
	return labelFolder.Replace(e.Label)
}

// Title returns the single-line label without its level indent.
func (e TOCEntry) Title() string {
	return strings.TrimLeft(e.DisplayLabel(), " ")
}

// TOC lists headings in document order.
type TOC []TOCEntry

// Labels returns the indented single-line labels in order.
func (t TOC) Labels() []string {
	out := make([]string, len(t))
	for i, e := range t {
		out[i] = e.DisplayLabel()
	}
	return out
}

// Entry returns entry i and whether it exists.
func (t TOC) Entry(i int) (TOCEntry, bool) {
	if i < 0 || i >= len(t) {
		return TOCEntry{}, false
	}
	return t[i], true
}

// Find returns the index of the first entry whose title equals title,
// ignoring surrounding blanks and case, or -1.
func (t TOC) Find(title string) int {
	title = strings.TrimSpace(title)
	for i, e := range t {
		if strings.EqualFold(e.Title(), title) {
			return i
		}
	}
	return -1
}

// MenuLabels returns labels fitted to width columns for a TOC menu. A width
// of zero or less leaves labels untouched.
func (t TOC) MenuLabels(width int) []string {
	out := t.Labels()
	if width <= 0 {
		return out
	}
	for i, l := range out {
		out[i] = truncateWithEllipsis(l, width)
	}
	return out
}

// String lists the entries one per line as index, label and position
// separated by tabs.
func (t TOC) String() string {
	var b strings.Builder
	for i, e := range t {
		b.WriteString(strconv.Itoa(i))
		b.WriteByte('\t')
		b.WriteString(e.DisplayLabel())
		b.WriteByte('\t')
		b.WriteString(e.Position.String())
		b.WriteByte('\n')
	}
	return b.String()
}
