package helptext

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

var markdown = goldmark.New()

// markdownToHTML converts a Markdown help page into HTML wrapped in a single
// section so the renderer shows it. Leading front matter is dropped.
func markdownToHTML(src []byte) ([]byte, error) {
	var out bytes.Buffer
	out.WriteString("<section>\n")
	if err := markdown.Convert(stripFrontMatter(src), &out); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	out.WriteString("</section>\n")
	return out.Bytes(), nil
}
