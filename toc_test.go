package helptext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTOC() TOC {
	return TOC{
		{Label: "Intro", Level: 1, Position: Position{Line: 3, Column: 5}},
		{Label: "  Keybindings", Level: 2, Position: Position{Line: 9, Column: 11}},
		{Label: "    Mouse", Level: 3, Position: Position{Line: 14, Column: 5}},
	}
}

func TestTOCFind(t *testing.T) {
	toc := sampleTOC()
	assert.Equal(t, 1, toc.Find(" keybindings "))
	assert.Equal(t, -1, toc.Find("missing"))
	assert.Equal(t, "Mouse", toc[2].Title())
}

func TestTOCEntryBounds(t *testing.T) {
	toc := sampleTOC()
	_, ok := toc.Entry(-1)
	assert.False(t, ok, "negative index must not resolve")
	_, ok = toc.Entry(3)
	assert.False(t, ok, "index past the end must not resolve")
	e, ok := toc.Entry(0)
	assert.True(t, ok)
	assert.Equal(t, "Intro", e.Label)
}

func TestTOCMenuLabels(t *testing.T) {
	toc := sampleTOC()
	assert.Equal(t, toc.Labels(), toc.MenuLabels(0))
	assert.Equal(t, []string{"Intro", "  Ke…", "    …"}, toc.MenuLabels(5))
}

func TestTOCFoldsMultiLineLabels(t *testing.T) {
	toc := TOC{
		{Label: "  Two\nlines", Level: 2, Position: Position{Line: 7, Column: 5}},
		{Label: "    Tab\tand\r\nCRLF", Level: 3, Position: Position{Line: 9, Column: 4}},
	}
	assert.Equal(t, []string{"  Two lines", "    Tab and CRLF"}, toc.Labels())
	assert.Equal(t, "Two lines", toc[0].Title())
	assert.Equal(t, 0, toc.Find("two lines"))
	assert.Equal(t, []string{"  Two …", "    Ta…"}, toc.MenuLabels(7))
	assert.Equal(t, "0\t  Two lines\t7.5\n1\t    Tab and CRLF\t9.4\n", toc.String())
}
