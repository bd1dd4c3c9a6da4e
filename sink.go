package helptext

// Sink receives styled runs from the renderer.
type Sink interface {
	// Insert appends text tagged with tags at the end of the output.
	Insert(text string, tags TagSet)
	// End reports the current end of the output.
	End() Position
}
