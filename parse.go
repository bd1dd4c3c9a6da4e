package helptext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Format selects how a help source is read.
type Format uint8

const (
	// FormatHTML feeds the source straight to the tokenizer.
	FormatHTML Format = iota
	// FormatMarkdown converts the source to HTML first.
	FormatMarkdown
)

// FormatForPath picks a format from a file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	}
	return FormatHTML
}

// ParseRequest configures Parse.
type ParseRequest struct {
	Reader  io.Reader
	Sink    Sink
	Format  Format
	Options []RenderOption
}

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Width   int
	Theme   Theme
	Format  Format
	Options []RenderOption
}

// Document is a rendered help source: its styled text and table of contents.
type Document struct {
	Buffer *Buffer
	TOC    TOC
}

// Section returns the runs of TOC entry i, from the first line of its heading
// up to the first line of the next entry's heading. It returns nil for an
// unknown entry.
func (d *Document) Section(i int) []Run {
	e, ok := d.TOC.Entry(i)
	if !ok {
		return nil
	}
	if next, ok := d.TOC.Entry(i + 1); ok {
		return d.Buffer.RunsBetween(e.Start, next.Start)
	}
	return d.Buffer.RunsFrom(e.Start)
}

// Feed tokenizes HTML from r and passes every tag and text event to c.
// Self-closing tags produce a start and an end event. Character references
// are decoded; comments and doctypes are dropped.
func Feed(r io.Reader, c TagEventConsumer) error {
	z := html.NewTokenizer(&validatingReader{r: r})
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return err
			}
			return nil
		case html.TextToken:
			c.Text(string(z.Text()))
		case html.StartTagToken:
			name, attrs := tagWithAttrs(z)
			c.StartTag(name, attrs)
		case html.SelfClosingTagToken:
			name, attrs := tagWithAttrs(z)
			c.StartTag(name, attrs)
			c.EndTag(name)
		case html.EndTagToken:
			name, _ := z.TagName()
			c.EndTag(string(name))
		}
	}
}

func tagWithAttrs(z *html.Tokenizer) (string, map[string]string) {
	name, more := z.TagName()
	attrs := make(map[string]string)
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		if _, seen := attrs[string(key)]; !seen {
			attrs[string(key)] = string(val)
		}
	}
	return string(name), attrs
}

// Parse renders a help source into req.Sink and returns its table of
// contents. Malformed markup never fails; only read and encoding errors do.
func Parse(req ParseRequest) (TOC, error) {
	if req.Reader == nil {
		return nil, fmt.Errorf("parse: reader is nil")
	}
	if req.Sink == nil {
		return nil, fmt.Errorf("parse: sink is nil")
	}
	src := req.Reader
	if req.Format == FormatMarkdown {
		data, err := io.ReadAll(&validatingReader{r: req.Reader})
		if err != nil {
			return nil, fmt.Errorf("parse: read: %w", err)
		}
		converted, err := markdownToHTML(data)
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		src = bytes.NewReader(converted)
	}
	r := NewRenderer(req.Sink, req.Options...)
	if err := Feed(src, r); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return r.TOC(), nil
}

// Render parses a help source and writes it to req.Writer styled by
// req.Theme and wrapped at req.Width (0 disables wrapping).
func Render(req RenderRequest) (TOC, error) {
	if req.Reader == nil {
		return nil, fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return nil, fmt.Errorf("render: writer is nil")
	}
	theme := req.Theme
	if theme == nil {
		theme = DefaultTheme()
	}
	buf := NewBuffer()
	ConfigureTags(buf, theme, DefaultLayout())
	toc, err := Parse(ParseRequest{
		Reader:  req.Reader,
		Sink:    buf,
		Format:  req.Format,
		Options: req.Options,
	})
	if err != nil {
		return nil, err
	}
	d := NewDisplay(req.Writer, req.Width, req.Options...)
	if err := d.Write(buf, buf.Runs()); err != nil {
		return nil, fmt.Errorf("render: write: %w", err)
	}
	return toc, nil
}

// Load renders the help file at path. The format follows the extension. A
// missing file yields an error matching fs.ErrNotExist, so callers can skip
// showing help without treating it as a failure.
func Load(path string, opts ...RenderOption) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()
	return ReadDocument(f, FormatForPath(path), opts...)
}

// ReadDocument renders a help source from r into a new Document.
func ReadDocument(r io.Reader, format Format, opts ...RenderOption) (*Document, error) {
	buf := NewBuffer()
	toc, err := Parse(ParseRequest{Reader: r, Sink: buf, Format: format, Options: opts})
	if err != nil {
		return nil, err
	}
	return &Document{Buffer: buf, TOC: toc}, nil
}
