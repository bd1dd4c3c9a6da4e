// Package helpd serves one rendered help document read-only over HTTP.
package helpd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oklog/ulid/v2"

	"pkt.systems/helptext"
)

// Server is the HTTP view of a rendered document. The document is never
// modified after NewServer, so handlers share it without locking.
type Server struct {
	router     chi.Router
	doc        *helptext.Document
	log        *slog.Logger
	revision   string
	renderOpts []helptext.RenderOption
}

// NewServer creates the server for doc. opts apply to text rendering.
func NewServer(doc *helptext.Document, log *slog.Logger, opts ...helptext.RenderOption) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		doc:        doc,
		log:        log,
		revision:   ulid.Make().String(),
		renderOpts: opts,
	}
	s.setupRoutes()
	return s
}

// Revision identifies this rendering of the document. It is sent as the
// ETag of every response.
func (s *Server) Revision() string {
	return s.revision
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(RevisionTag(s.revision))

	r.Get("/health", s.handleHealth)
	r.Get("/text", s.handleText)

	r.Route("/api", func(r chi.Router) {
		r.Get("/toc", s.handleTOC)
		r.Get("/toc/{index}/text", s.handleSectionText)
		r.Get("/runs", s.handleRuns)
	})

	s.router = r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("serving help", "addr", addr, "revision", s.revision, "entries", len(s.doc.TOC))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
