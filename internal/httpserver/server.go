// Package httpserver exposes the transcript service over REST.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Config wires the server to its collaborators.
type Config struct {
	Addr            string
	Service         *engine.Service
	DefaultLanguage string
	AllowedOrigins  []string
}

// Server serves the REST API: health check, /process, /transcripts,
// /transcripts/{id} and /metrics.
type Server struct {
	addr    string
	svc     *engine.Service
	defLang string
	handler http.Handler

	server *http.Server
}

// New builds a server with routes and middleware installed.
func New(cfg Config) *Server {
	s := &Server{
		addr:    cfg.Addr,
		svc:     cfg.Service,
		defLang: cfg.DefaultLanguage,
	}
	if s.defLang == "" {
		s.defLang = "en"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHealth)
	mux.HandleFunc("/process", s.handleProcess)
	mux.HandleFunc("/transcripts", s.handleList)
	mux.HandleFunc("/transcripts/", s.handleGet)
	mux.HandleFunc("/metrics", s.handleMetrics)

	s.handler = withRequestLog(withCORS(mux, cfg.AllowedOrigins))

	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.handler }

// Run listens on the configured address and serves until ctx is
// canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	slog.Info("http server listening", slog.String("address", listener.Addr().String()))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encode response", slog.Any("error", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorResponse{Detail: detail})
}
