package helpd

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkt.systems/helptext"
)

const testPage = `<section><h1>Intro</h1><p>Hello <strong>world</strong>.</p>` +
	`<h2>Keys</h2><ul><li>alpha beta gamma</li></ul></section>`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	doc, err := helptext.ReadDocument(strings.NewReader(testPage), helptext.FormatHTML)
	require.NoError(t, err)
	return NewServer(doc, nil)
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestTOC(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/api/toc")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Entries []tocEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Entries, 2)
	assert.Equal(t, tocEntry{Index: 0, Label: "Intro", Title: "Intro", Level: 1, StartLine: 3, Line: 3, Column: 5}, body.Entries[0])
	assert.Equal(t, "  Keys", body.Entries[1].Label)
	assert.Equal(t, 2, body.Entries[1].Level)
}

func TestRuns(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/api/runs")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Runs []runJSON `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Runs)
	assert.Equal(t, runJSON{Text: "\n\n", Tags: []string{}}, body.Runs[0])
	assert.Equal(t, runJSON{Text: "world ", Tags: []string{"p", "strong"}}, body.Runs[3])
}

func TestText(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/text")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "IntroHello world .\n\nKeys\n  • alpha beta gamma\n", rec.Body.String())

	rec = get(t, s, "/text?width=16")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "  • alpha beta\n    gamma\n")

	rec = get(t, s, "/text?theme=gruvbox")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "\x1b[")
}

func TestTextRejectsBadParameters(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/text?width=wide").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/text?width=-3").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/text?theme=neon").Code)
}

func TestSectionText(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/api/toc/1/text")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Keys\n  • alpha beta gamma\n", rec.Body.String())

	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/toc/2/text").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/toc/x/text").Code)
}

func TestSectionTextMultiLineHeading(t *testing.T) {
	doc, err := helptext.ReadDocument(strings.NewReader(
		"<section><h1>Intro</h1><p>a</p><h2>Two\nlines</h2><p>b</p></section>"), helptext.FormatHTML)
	require.NoError(t, err)
	s := NewServer(doc, nil)

	rec := get(t, s, "/api/toc/1/text")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Two\nlinesb\n", rec.Body.String())

	var body struct {
		Entries []tocEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(get(t, s, "/api/toc").Body.Bytes(), &body))
	require.Len(t, body.Entries, 2)
	assert.Equal(t, tocEntry{Index: 1, Label: "  Two lines", Title: "Two lines", Level: 2, StartLine: 5, Line: 6, Column: 5}, body.Entries[1])
}

func TestRevisionETag(t *testing.T) {
	s := newTestServer(t)
	_, err := ulid.ParseStrict(s.Revision())
	require.NoError(t, err)

	rec := get(t, s, "/api/toc")
	etag := rec.Header().Get("ETag")
	assert.Equal(t, `"`+s.Revision()+`"`, etag)

	rec = get(t, s, "/api/toc", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = get(t, s, "/api/toc", "If-None-Match", `"other", W/`+etag)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	rec = get(t, s, "/api/toc", "If-None-Match", `"stale"`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRevisionDiffersPerServer(t *testing.T) {
	assert.NotEqual(t, newTestServer(t).Revision(), newTestServer(t).Revision())
}

func TestListenAndServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, addr) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + addr + "/health")
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
