package helptext

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
)

// HTTPLoadRequest configures HTTPLoad.
type HTTPLoadRequest struct {
	URL    string
	Client *http.Client
	// Format is used when the response does not say otherwise. A
	// text/markdown content type or a .md/.markdown path selects Markdown.
	Format  Format
	Options []RenderOption
}

// HTTPLoad fetches a help source over HTTP(S) and renders it into a Document.
func HTTPLoad(ctx context.Context, req HTTPLoadRequest) (*Document, error) {
	if req.URL == "" {
		return nil, fmt.Errorf("http load: URL is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("http load: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return nil, fmt.Errorf("http load: unsupported scheme %q", httpReq.URL.Scheme)
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http load: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("http load: status %s", resp.Status)
	}
	format := req.Format
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/markdown") {
		format = FormatMarkdown
	} else if FormatForPath(path.Base(httpReq.URL.Path)) == FormatMarkdown {
		format = FormatMarkdown
	}
	doc, err := ReadDocument(resp.Body, format, req.Options...)
	if err != nil {
		return nil, fmt.Errorf("http load: %w", err)
	}
	return doc, nil
}
