// Package server provides the HTTP server and handlers.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bryan-buckman/mvphub/internal/action"
	"github.com/bryan-buckman/mvphub/internal/app"
	"github.com/bryan-buckman/mvphub/internal/hub"
	"github.com/bryan-buckman/mvphub/internal/metrics"
	"github.com/bryan-buckman/mvphub/internal/opml"
	"github.com/bryan-buckman/mvphub/internal/view"
)

//go:embed static/*
var staticFS embed.FS

// maxUpload bounds OPML uploads.
const maxUpload = 4 << 20

// Options configures New.
type Options struct {
	Logger  *slog.Logger
	Metrics metrics.Recorder
	// Gatherer is served on /metrics when set.
	Gatherer prometheus.Gatherer
	// Controller is passed to app.New. When Schedule is nil the server
	// supplies one that runs deferred work under its lock.
	Controller app.Options
}

// Server is the main HTTP server. Every request that reads or changes
// dashboard state holds mu, so handlers never interleave.
type Server struct {
	mu       sync.Mutex
	hub      *hub.Hub
	ctrl     *app.Controller
	renderer *view.Renderer
	router   chi.Router
	logger   *slog.Logger
	metrics  metrics.Recorder
	now      func() time.Time
	gatherer prometheus.Gatherer
}

// New creates a new server around h.
func New(h *hub.Hub, opts Options) (*Server, error) {
	renderer, err := view.New()
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Nop{}
	}
	s := &Server{
		hub:      h,
		renderer: renderer,
		logger:   opts.Logger.With("component", "server"),
		metrics:  opts.Metrics,
		gatherer: opts.Gatherer,
	}

	ctrlOpts := opts.Controller
	if ctrlOpts.Logger == nil {
		ctrlOpts.Logger = opts.Logger
	}
	if ctrlOpts.Metrics == nil {
		ctrlOpts.Metrics = opts.Metrics
	}
	if ctrlOpts.Schedule == nil {
		ctrlOpts.Schedule = s.schedule
	}
	if ctrlOpts.Now == nil {
		ctrlOpts.Now = time.Now
	}
	s.now = ctrlOpts.Now
	s.ctrl = app.New(h, ctrlOpts)
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	staticSub, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	r.Get("/", s.handleHome)
	r.Get("/section/{name}", s.handleSection)

	r.Route("/api", func(r chi.Router) {
		r.Post("/events", s.handleEvent)
		r.Get("/view", s.handleView)
		r.Get("/export", s.handleExport)
		r.Get("/export-opml", s.handleExportOPML)
		r.Post("/import-opml", s.handleImportOPML)
	})

	if s.gatherer != nil {
		r.Handle("/metrics", metrics.Handler(s.gatherer))
	}
	s.router = r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// schedule runs fn after d while holding the request lock.
func (s *Server) schedule(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		fn()
	})
}

// --- Page Handlers ---

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.ctrl.Snapshot()
	s.mu.Unlock()
	s.renderPage(w, snap)
}

func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.mu.Lock()
	_, err := s.ctrl.Handle(action.Navigate{Section: name})
	snap := s.ctrl.Snapshot()
	s.mu.Unlock()
	if err != nil {
		http.NotFound(w, r)
		return
	}
	s.renderPage(w, snap)
}

// --- API Handlers ---

// viewResponse is what the page script applies after every event.
type viewResponse struct {
	Body    string `json:"body"`
	Theme   string `json:"theme"`
	Section string `json:"section"`
	// Clipboard is text the script copies for the user.
	Clipboard string `json:"clipboard,omitempty"`
	// Download is a URL the script navigates to.
	Download string `json:"download,omitempty"`
	// RefreshAfter asks the script to fetch /api/view again after this many
	// milliseconds.
	RefreshAfter int64 `json:"refreshAfter,omitempty"`
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var ev action.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid event")
		return
	}
	a, ok := action.Classify(ev)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := s.ctrl.Handle(a)
	if err != nil && !errors.Is(err, app.ErrUnknownSection) {
		s.logger.Error("action failed", "action", a.Kind(), "error", err)
		writeError(w, http.StatusInternalServerError, "action failed")
		return
	}
	s.writeView(w, out)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeView(w, app.Outcome{})
}

// writeView renders the application body. The caller holds mu.
func (s *Server) writeView(w http.ResponseWriter, out app.Outcome) {
	snap := s.ctrl.Snapshot()
	var buf bytes.Buffer
	start := time.Now()
	if err := s.renderer.App(&buf, snap); err != nil {
		s.logger.Error("render failed", "section", snap.Section, "error", err)
		writeError(w, http.StatusInternalServerError, "render error")
		return
	}
	s.metrics.RecordRender(snap.Section, time.Since(start))
	writeJSON(w, http.StatusOK, viewResponse{
		Body:         buf.String(),
		Theme:        string(snap.Theme),
		Section:      snap.Section,
		Clipboard:    out.Clipboard,
		Download:     out.Download,
		RefreshAfter: s.ctrl.NextRefresh().Milliseconds(),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := s.hub.Export()
	s.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+hub.ExportFilename(s.now()))
	w.Write(data)
}

func (s *Server) handleExportOPML(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	feeds := s.hub.Feeds()
	s.mu.Unlock()

	data, err := opml.Export("MVP Hub Feeds", feeds, s.now())
	if err != nil {
		s.logger.Error("opml export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", "attachment; filename=mvp-hub-feeds.opml")
	w.Write(data)
}

func (s *Server) handleImportOPML(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	file, _, err := r.FormFile("opml")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	feeds, err := opml.Parse(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse OPML: %v", err))
		return
	}

	s.mu.Lock()
	imported := s.ctrl.ImportFeeds(feeds)
	s.mu.Unlock()
	s.logger.Info("opml imported", "imported", imported, "total", len(feeds))

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"imported": imported,
		"total":    len(feeds),
	})
}

// --- Helpers ---

func (s *Server) renderPage(w http.ResponseWriter, snap view.Snapshot) {
	var buf bytes.Buffer
	start := time.Now()
	if err := s.renderer.Page(&buf, snap); err != nil {
		s.logger.Error("template error", "error", err)
		http.Error(w, "Render error", http.StatusInternalServerError)
		return
	}
	s.metrics.RecordRender(snap.Section, time.Since(start))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
