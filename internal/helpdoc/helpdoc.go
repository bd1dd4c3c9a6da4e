// Package helpdoc bundles the help page shown when no source is given.
package helpdoc

import (
	"bytes"
	_ "embed"
	"io"
)

// Name is the file name reported for the bundled page.
const Name = "help.html"

//go:embed help.html
var page []byte

// Reader returns a reader over the bundled HTML help page.
func Reader() io.Reader {
	return bytes.NewReader(page)
}

// Bytes returns a copy of the bundled page.
func Bytes() []byte {
	return bytes.Clone(page)
}
