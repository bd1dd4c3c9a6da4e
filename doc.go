// Package helptext renders a bundled HTML help document to styled text.
//
// The renderer is a single-pass state machine driven by tokenizer events. It
// appends positioned, tag-annotated runs to an append-only Sink and records a
// table of contents with the position of every closed h1, h2 and h3 heading
// found inside a <section>. Content outside sections, inside <nav> and inside
// icon-marker spans is never emitted.
//
// Core properties:
//   - Tokenizer-driven, no lookahead or backtracking
//   - Append-only output; recorded positions stay valid
//   - Tag styles are configured by the display, not the renderer
//   - Markdown help sources are converted and rendered the same way
//
// Example:
//
//	doc, err := helptext.Load("help.html")
//	if errors.Is(err, fs.ErrNotExist) {
//		return // nothing to show
//	}
//	if err != nil {
//		log.Fatal(err)
//	}
//	helptext.ConfigureTags(doc.Buffer, helptext.DefaultTheme(), helptext.DefaultLayout())
//	d := helptext.NewDisplay(os.Stdout, 80)
//	err = d.Write(doc.Buffer, doc.Buffer.RunsFrom(doc.TOC[2].Start))
package helptext
