// Package api provides HTTP handlers and the main API server logic for
// MarketForge.
//
// It exposes RESTful endpoints for managing projects, sending and
// streaming messages through the guided flows, refining documents, and
// exporting conversations. The API integrates with the flow orchestrator
// and the store module.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ForgeLabs/MarketForge/internal/flow"
	"github.com/ForgeLabs/MarketForge/internal/models"
)

// Server configuration defaults.
const (
	DefaultAddr = ":8080"
	// DefaultReadTimeout bounds request header/body reads.
	DefaultReadTimeout = 30 * time.Second
	// Streamed completions can run up to the gateway timeout, so the
	// write timeout must comfortably exceed it.
	DefaultWriteTimeout = 120 * time.Second
)

// Server hosts the MarketForge HTTP API.
type Server struct {
	orch *flow.Orchestrator
	addr string
}

// Opts holds configuration options for the API server.
type Opts struct {
	Addr string
}

// Option configures the server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// NewServer creates an API server around the given orchestrator.
func NewServer(orch *flow.Orchestrator, opts ...Option) *Server {
	cfg := Opts{Addr: DefaultAddr}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{orch: orch, addr: cfg.Addr}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /projects", s.createProjectHandler)
	mux.HandleFunc("GET /projects", s.listProjectsHandler)
	mux.HandleFunc("GET /projects/{id}", s.getProjectHandler)
	mux.HandleFunc("DELETE /projects/{id}", s.deleteProjectHandler)
	mux.HandleFunc("GET /projects/{id}/prompts", s.availablePromptsHandler)
	mux.HandleFunc("POST /projects/{id}/advance", s.advanceStepHandler)
	mux.HandleFunc("POST /projects/{id}/messages", s.sendMessageHandler)
	mux.HandleFunc("POST /projects/{id}/stream", s.streamMessageHandler)
	mux.HandleFunc("POST /projects/{id}/report", s.generateReportHandler)
	mux.HandleFunc("POST /projects/{id}/image-prompt", s.imagePromptHandler)
	mux.HandleFunc("POST /images/generate", s.generateImageHandler)
	mux.HandleFunc("POST /projects/{id}/refine", s.refineHandler)
	mux.HandleFunc("GET /projects/{id}/export", s.exportHandler)
	mux.HandleFunc("POST /documents/extract", s.extractDocumentHandler)
	mux.HandleFunc("GET /experts/roles", s.expertRolesHandler)
	mux.HandleFunc("POST /experts/chat", s.expertChatHandler)
	return withRequestID(mux)
}

// Run starts the HTTP server and blocks until the context is canceled or
// the listener fails.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("Server.Run: MarketForge API listening", "addr", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server.Run: shutdown failed", "error", err)
			return err
		}
		slog.Info("Server.Run: shutdown complete")
		return nil
	case err := <-errc:
		return err
	}
}

// statusForError maps domain errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrStepNotFound), errors.Is(err, models.ErrPromptNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidFlowName),
		errors.Is(err, models.ErrEmptyProjectName),
		errors.Is(err, models.ErrProjectNameTooLong),
		errors.Is(err, models.ErrEmptyMessage),
		errors.Is(err, models.ErrMessageTooLong),
		errors.Is(err, models.ErrEmptyExpertRole),
		errors.Is(err, models.ErrEmptyImagePrompt),
		errors.Is(err, models.ErrStreamingOnly),
		errors.Is(err, models.ErrStreamingUnsupported):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrPromptNotAvailable),
		errors.Is(err, models.ErrFlowComplete),
		errors.Is(err, models.ErrNoReport):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
