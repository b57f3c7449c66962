package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jonathan/resume-builder/internal/presets"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/state"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/transfer"
	"github.com/jonathan/resume-builder/internal/types"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds graceful shutdown
const shutdownTimeout = 10 * time.Second

// PDFPrinter turns a standalone HTML page into PDF bytes
type PDFPrinter interface {
	Print(ctx context.Context, html string, size types.PageSize) ([]byte, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      *state.Store
	service    *storage.Service
	autosave   *storage.Autosaver
	importer   *transfer.Importer
	renderer   *rendering.Renderer
	catalog    presets.Catalog
	printer    PDFPrinter
	broker     *Broker
	logger     *slog.Logger
	now        func() time.Time
}

// Config holds server configuration
type Config struct {
	Addr     string
	Store    *state.Store
	Service  *storage.Service
	Autosave *storage.Autosaver
	Renderer *rendering.Renderer
	Catalog  presets.Catalog
	// Printer is optional; without it PDF export answers 503
	Printer PDFPrinter
	Logger  *slog.Logger
	Now     func() time.Time
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("server requires a store")
	}
	if cfg.Renderer == nil {
		return nil, fmt.Errorf("server requires a renderer")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	s := &Server{
		store:    cfg.Store,
		service:  cfg.Service,
		autosave: cfg.Autosave,
		importer: transfer.NewImporter(cfg.Store, cfg.Service, logger),
		renderer: cfg.Renderer,
		catalog:  cfg.Catalog,
		printer:  cfg.Printer,
		logger:   logger,
		now:      now,
	}
	s.broker = NewBroker(cfg.Store, s.renderer.Render, logger)

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Document endpoints
	mux.HandleFunc("GET /document", s.handleGetDocument)
	mux.HandleFunc("PUT /document", s.handleSetDocument)
	mux.HandleFunc("DELETE /document", s.handleResetDocument)
	mux.HandleFunc("PUT /document/sections/{section}", s.handleUpdateSection)
	mux.HandleFunc("PATCH /document/personal", s.handleUpdatePersonal)
	mux.HandleFunc("PUT /document/summary", s.handleUpdateSummary)
	mux.HandleFunc("PATCH /document/meta", s.handleUpdateMeta)
	mux.HandleFunc("POST /document/skills", s.handleAddSkill)
	mux.HandleFunc("DELETE /document/skills/{skill}", s.handleRemoveSkill)
	mux.HandleFunc("POST /document/{collection}", s.handleAddEntry)
	mux.HandleFunc("PATCH /document/{collection}/{id}", s.handleUpdateEntry)
	mux.HandleFunc("DELETE /document/{collection}/{id}", s.handleRemoveEntry)

	// Preview endpoints
	mux.HandleFunc("GET /preview", s.handlePreview)
	mux.HandleFunc("GET /preview/events", s.handlePreviewEvents)

	// Persistence and transfer endpoints
	mux.HandleFunc("POST /save", s.handleSave)
	mux.HandleFunc("GET /export/json", s.handleExportJSON)
	mux.HandleFunc("GET /export/pdf", s.handleExportPDF)
	mux.HandleFunc("POST /import", s.handleImport)

	// Preset endpoints
	mux.HandleFunc("GET /presets", s.handleListPresets)
	mux.HandleFunc("POST /presets/{key}", s.handleApplyPreset)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           middleware.RequestID(s.withLogging(s.withCORS(mux))),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens on the configured address and serves until ctx is done
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully: open streams are closed, in-flight requests finish and any
// pending autosave is flushed.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		// SSE handlers only return once their streams end
		s.broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		if s.autosave != nil {
			s.autosave.Flush()
		}
		s.logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logs
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps SSE streaming working through the logging wrapper
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"request_id", middleware.GetRequestID(r.Context()),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok"}
	if s.service != nil {
		resp["storage"] = s.service.Available(r.Context())
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFrom writes err with the status HTTPStatus picks for it
func (s *Server) errorFrom(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.errorResponse(w, status, err.Error())
}
