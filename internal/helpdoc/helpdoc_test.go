package helpdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkt.systems/helptext"
)

func TestBundledPageRenders(t *testing.T) {
	doc, err := helptext.ReadDocument(Reader(), helptext.FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"helptext",
		"  Usage",
		"    Serving",
		"  Help sources",
		"  Themes",
	}, doc.TOC.Labels())

	text := doc.Buffer.Text()
	assert.NotContains(t, text, "dns", "icon glyph names must be hidden")
	assert.NotContains(t, text, "#usage")
	assert.Contains(t, text, "helptext --serve 127.0.0.1:8095 manual.html")
}

func TestBytesReturnsCopy(t *testing.T) {
	b := Bytes()
	require.NotEmpty(t, b)
	b[0] = 'X'
	assert.NotEqual(t, byte('X'), Bytes()[0])
}
