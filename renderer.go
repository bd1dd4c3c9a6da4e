package helptext

import (
	"strconv"
	"strings"
)

// TagEventConsumer receives tokenizer events in document order.
type TagEventConsumer interface {
	StartTag(name string, attrs map[string]string)
	EndTag(name string)
	Text(data string)
}

type listKind uint8

const (
	listNone listKind = iota
	listUnordered
	listOrdered
)

type renderState struct {
	active      TagSet
	inSection   bool
	suppress    bool
	listLevel   int
	list        listKind
	itemCounter int
	heading     Tag
	headingText strings.Builder
	headingAt   Position
	inParagraph bool
	inListItem  bool
}

// Renderer turns tag events into styled runs on a Sink and collects the
// table of contents. A Renderer is used for one document; create a new one
// per render.
type Renderer struct {
	sink        Sink
	iconClasses map[string]struct{}
	st          renderState
	toc         TOC
}

var _ TagEventConsumer = (*Renderer)(nil)

// NewRenderer returns a renderer writing to sink.
func NewRenderer(sink Sink, opts ...RenderOption) *Renderer {
	cfg := newRenderConfig(opts)
	icons := make(map[string]struct{}, len(cfg.iconClasses))
	for _, c := range cfg.iconClasses {
		if c = strings.TrimSpace(c); c != "" {
			icons[c] = struct{}{}
		}
	}
	return &Renderer{sink: sink, iconClasses: icons}
}

// TOC returns a copy of the entries recorded so far.
func (r *Renderer) TOC() TOC {
	out := make(TOC, len(r.toc))
	copy(out, r.toc)
	return out
}

// ListLevel reports the current list nesting depth.
func (r *Renderer) ListLevel() int { return r.st.listLevel }

func (r *Renderer) showing() bool {
	return r.st.inSection && !r.st.suppress
}

func (r *Renderer) emit(text string, tags TagSet) {
	r.sink.Insert(text, tags)
}

// StartTag handles an opening tag. Unknown tags are ignored.
func (r *Renderer) StartTag(name string, attrs map[string]string) {
	st := &r.st
	switch name {
	case "section":
		st.inSection = true
	case "nav":
		st.suppress = true
	case "h1", "h2", "h3":
		st.heading = Tag(name)
		st.headingText.Reset()
		st.active = TagSetOf(Tag(name))
		if r.showing() {
			r.emit("\n\n", TagSet{})
		}
		st.headingAt = r.sink.End()
	case "p":
		if r.showing() {
			st.inParagraph = true
			st.active = TagSetOf(TagParagraph)
		}
	case "ul", "ol":
		if r.showing() {
			st.listLevel++
			st.itemCounter = 0
			st.list = listUnordered
			if name == "ol" {
				st.list = listOrdered
			}
			st.active = TagSetOf(ListTag(st.listLevel))
		}
	case "li":
		if r.showing() {
			st.inListItem = true
			prefix := "\n• "
			if st.list == listOrdered {
				st.itemCounter++
				prefix = "\n" + strconv.Itoa(st.itemCounter) + ". "
			}
			tags := st.active
			if st.listLevel > 0 {
				tags = TagSetOf(ListTag(st.listLevel))
			}
			r.emit(prefix, tags)
		}
	case "pre":
		if r.showing() {
			st.active = TagSetOf(TagCodeBlock)
			r.emit("\n\n", TagSet{})
		}
	case "code":
		if r.showing() {
			st.active = TagSetOf(TagCode)
		}
	case "strong", "b":
		st.active = st.active.With(TagStrong)
	case "em", "i":
		st.active = st.active.With(TagEmphasis)
	case "span":
		if r.isIcon(attrs["class"]) {
			st.suppress = true
		}
	}
}

// EndTag handles a closing tag. Mismatched closes clamp state.
func (r *Renderer) EndTag(name string) {
	st := &r.st
	switch name {
	case "section":
		st.inSection = false
	case "nav":
		st.suppress = false
	case "h1", "h2", "h3":
		// An icon span left open inside the heading does not drop the entry.
		if st.inSection && st.headingText.Len() > 0 {
			r.toc = append(r.toc, TOCEntry{
				Label:    headingIndent(name) + st.headingText.String(),
				Level:    headingLevel(name),
				Start:    st.headingAt,
				Position: r.sink.End(),
			})
		}
		st.heading = ""
		st.headingText.Reset()
		st.active = TagSet{}
	case "p":
		st.inParagraph = false
		st.active = TagSet{}
	case "li":
		st.inListItem = false
	case "ul", "ol":
		if st.listLevel > 0 {
			st.listLevel--
		}
		st.active = TagSet{}
		if st.listLevel > 0 {
			st.active = TagSetOf(ListTag(st.listLevel))
		}
		st.list = listNone
	case "pre", "code":
		st.active = TagSet{}
	case "strong", "b", "em", "i":
		// Resets the whole set, not just the closed tag.
		st.active = TagSet{}
	case "span":
		st.suppress = false
	}
}

// Text handles character data between tags.
func (r *Renderer) Text(data string) {
	if !r.showing() {
		return
	}
	st := &r.st
	switch {
	case st.heading != "":
		d := strings.TrimSpace(data)
		st.headingText.WriteString(d)
		if d != "" {
			r.emit(d, st.active)
		}
	case st.inListItem:
		if d := strings.TrimSpace(data); d != "" {
			r.emit(d, st.active)
		}
	case st.inParagraph:
		if d := strings.TrimSpace(strings.ReplaceAll(data, "\n", " ")); d != "" {
			r.emit(d+" ", st.active)
		}
	default:
		if d := strings.TrimSpace(strings.ReplaceAll(data, "\n", " ")); d != "" {
			r.emit(d, st.active)
		}
	}
}

func (r *Renderer) isIcon(class string) bool {
	for _, c := range strings.Fields(class) {
		if _, ok := r.iconClasses[c]; ok {
			return true
		}
	}
	return false
}

func headingLevel(name string) int {
	switch name {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	}
	return 0
}

func headingIndent(name string) string {
	switch name {
	case "h2":
		return "  "
	case "h3":
		return "    "
	}
	return ""
}
