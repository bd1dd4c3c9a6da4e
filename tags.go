package helptext

import (
	"strconv"
	"strings"
)

// Tag names a style rule applied to emitted text.
type Tag string

const (
	// TagH1 styles level one headings.
	TagH1 Tag = "h1"
	// TagH2 styles level two headings.
	TagH2 Tag = "h2"
	// TagH3 styles level three headings.
	TagH3 Tag = "h3"
	// TagParagraph styles paragraph text.
	TagParagraph Tag = "p"
	// TagCodeBlock styles preformatted blocks.
	TagCodeBlock Tag = "preblock"
	// TagCode styles inline code.
	TagCode Tag = "code"
	// TagStrong is added on top of the active tags for <strong> and <b>.
	TagStrong Tag = "strong"
	// TagEmphasis is added on top of the active tags for <em> and <i>.
	TagEmphasis Tag = "em"
	// TagText styles every run below its own tags. It never appears in a
	// TagSet.
	TagText Tag = ""
)

// ListTag returns the indent tag for a list nesting level ("l1", "l2", ...).
func ListTag(level int) Tag {
	return Tag("l" + strconv.Itoa(level))
}

// TagSet is an ordered set of tags. The zero value is empty.
//
// A TagSet is a value: With returns a new set and never modifies the
// receiver, so snapshots handed out with emitted runs stay unchanged.
type TagSet struct {
	tags []Tag
}

// TagSetOf returns a set holding tags in order, dropping duplicates.
func TagSetOf(tags ...Tag) TagSet {
	var s TagSet
	for _, t := range tags {
		s = s.With(t)
	}
	return s
}

// With returns a copy of s with tag appended. Empty tags and tags already
// present leave the set unchanged.
func (s TagSet) With(tag Tag) TagSet {
	if tag == "" || s.Has(tag) {
		return s
	}
	out := make([]Tag, len(s.tags), len(s.tags)+1)
	copy(out, s.tags)
	return TagSet{tags: append(out, tag)}
}

// Has reports whether tag is in the set.
func (s TagSet) Has(tag Tag) bool {
	for _, t := range s.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Len returns the number of tags.
func (s TagSet) Len() int { return len(s.tags) }

// Tags returns a copy of the tags in order.
func (s TagSet) Tags() []Tag {
	if len(s.tags) == 0 {
		return nil
	}
	out := make([]Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// Equal reports whether both sets hold the same tags in the same order.
func (s TagSet) Equal(o TagSet) bool {
	if len(s.tags) != len(o.tags) {
		return false
	}
	for i := range s.tags {
		if s.tags[i] != o.tags[i] {
			return false
		}
	}
	return true
}

func (s TagSet) String() string {
	var b strings.Builder
	for i, t := range s.tags {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(t))
	}
	return b.String()
}

// Run is a contiguous span of text emitted with one set of tags.
type Run struct {
	Text string
	Tags TagSet
}
