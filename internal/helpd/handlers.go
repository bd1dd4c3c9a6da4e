package helpd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pkt.systems/helptext"
)

type tocEntry struct {
	Index     int    `json:"index"`
	Label     string `json:"label"`
	Title     string `json:"title"`
	Level     int    `json:"level"`
	StartLine int    `json:"start_line"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
}

type runJSON struct {
	Text string   `json:"text"`
	Tags []string `json:"tags"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	entries := make([]tocEntry, len(s.doc.TOC))
	for i, e := range s.doc.TOC {
		entries[i] = tocEntry{
			Index:     i,
			Label:     e.DisplayLabel(),
			Title:     e.Title(),
			Level:     e.Level,
			StartLine: e.Start.Line,
			Line:      e.Position.Line,
			Column:    e.Position.Column,
		}
	}
	writeJSON(w, map[string]any{"entries": entries})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs := s.doc.Buffer.Runs()
	out := make([]runJSON, len(runs))
	for i, run := range runs {
		tags := make([]string, 0, run.Tags.Len())
		for _, t := range run.Tags.Tags() {
			tags = append(tags, string(t))
		}
		out[i] = runJSON{Text: run.Text, Tags: tags}
	}
	writeJSON(w, map[string]any{"runs": out})
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	s.writeText(w, r, s.doc.Buffer.Runs())
}

func (s *Server) handleSectionText(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		jsonError(w, "index must be a number", http.StatusBadRequest)
		return
	}
	if _, ok := s.doc.TOC.Entry(index); !ok {
		jsonError(w, "no such toc entry", http.StatusNotFound)
		return
	}
	s.writeText(w, r, s.doc.Section(index))
}

func (s *Server) writeText(w http.ResponseWriter, r *http.Request, runs []helptext.Run) {
	q := r.URL.Query()
	width := 0
	if v := q.Get("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, "width must be a non-negative number", http.StatusBadRequest)
			return
		}
		width = n
	}
	theme := helptext.BoringTheme()
	if name := q.Get("theme"); name != "" {
		t, ok := helptext.ThemeByName(name)
		if !ok {
			jsonError(w, "unknown theme "+strconv.Quote(name), http.StatusBadRequest)
			return
		}
		theme = t
	}

	var out bytes.Buffer
	styles := helptext.NewStyleTable(theme, helptext.DefaultLayout())
	if err := helptext.NewDisplay(&out, width, s.renderOpts...).Write(styles, runs); err != nil {
		s.log.Error("render text", "error", err)
		jsonError(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(out.Bytes())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
