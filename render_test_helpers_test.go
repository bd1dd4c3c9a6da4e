package helptext

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type insertCall struct {
	text string
	tags string
}

// captureSink records every Insert and tracks the end position through a
// real Buffer.
type captureSink struct {
	buf   *Buffer
	calls []insertCall
}

func newCaptureSink() *captureSink {
	return &captureSink{buf: NewBuffer()}
}

func (c *captureSink) Insert(text string, tags TagSet) {
	c.calls = append(c.calls, insertCall{text: text, tags: tags.String()})
	c.buf.Insert(text, tags)
}

func (c *captureSink) End() Position {
	return c.buf.End()
}

func (c *captureSink) texts() []string {
	out := make([]string, len(c.calls))
	for i, call := range c.calls {
		out[i] = call.text
	}
	return out
}

func parseHTML(t *testing.T, src string, opts ...RenderOption) (*captureSink, TOC) {
	t.Helper()
	sink := newCaptureSink()
	toc, err := Parse(ParseRequest{
		Reader:  strings.NewReader(src),
		Sink:    sink,
		Options: opts,
	})
	require.NoError(t, err)
	return sink, toc
}

func renderBoring(t *testing.T, src string, width int) string {
	t.Helper()
	var out bytes.Buffer
	_, err := Render(RenderRequest{
		Reader: strings.NewReader(src),
		Writer: &out,
		Width:  width,
		Theme:  BoringTheme(),
	})
	require.NoError(t, err)
	return out.String()
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
