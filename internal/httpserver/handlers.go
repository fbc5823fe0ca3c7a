package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

const (
	defaultListLimit = 10
	maxListLimit     = 50
)

// handleHealth answers the health check on "/" and rejects unknown paths.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:    "active",
		Service:   "go_transcript",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// handleProcess runs the fetch orchestration for one URL.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	videoURL := r.URL.Query().Get("video_url")
	if videoURL == "" {
		s.writeError(w, http.StatusBadRequest, "video_url query parameter is required")
		return
	}
	language := r.URL.Query().Get("language")
	if language == "" {
		language = s.defLang
	}

	rec, err := s.svc.Process(r.Context(), videoURL, language)
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, rec)
	case errors.Is(err, engine.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrNotAvailable):
		s.writeError(w, http.StatusNotFound, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// handleList returns a page of stored transcripts in insertion order.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := queryInt(r, "limit", defaultListLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	store := s.svc.Store()
	s.writeJSON(w, http.StatusOK, listResponse{
		Count:   store.Size(),
		Limit:   limit,
		Offset:  offset,
		Results: store.List(offset, limit),
	})
}

// handleGet returns a single stored transcript by video ID.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/transcripts/")
	if id == "" || strings.Contains(id, "/") {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}

	rec, ok := s.svc.Store().Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "transcript not found")
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// handleMetrics serves engine counters as plain text.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(engine.FormatMetrics(s.svc.Store())))
}

// queryInt parses an integer query parameter, falling back to def on
// absence or garbage.
func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
