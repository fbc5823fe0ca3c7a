package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// urlShapesHint is appended to invalid-input errors so callers know
// which URL formats are accepted.
const urlShapesHint = "supported formats: youtube.com/watch?v=ID, youtu.be/ID, youtube.com/embed/ID"

// Service ties the extractor, store and transcript provider together.
// One instance lives for the process lifetime; tests construct their
// own with an isolated store and a fake fetcher.
type Service struct {
	store *Store
	fetch FetchFunc
}

// NewService wires a store and a provider into a processing service.
func NewService(store *Store, fetch FetchFunc) *Service {
	return &Service{store: store, fetch: fetch}
}

// Store returns the underlying transcript store.
func (s *Service) Store() *Store { return s.store }

// Process extracts the video ID from videoURL, serves the transcript
// from the store when present, and otherwise fetches, normalizes and
// caches it. Fails with ErrInvalidInput when no ID can be extracted
// and ErrNotAvailable when the provider fails. Concurrent misses for
// the same ID may both reach the provider; the last Put wins and the
// one-record-per-ID invariant holds either way.
func (s *Service) Process(ctx context.Context, videoURL, language string) (TranscriptRecord, error) {
	IncrTranscriptRequests()

	id, ok := ExtractVideoID(videoURL)
	if !ok {
		return TranscriptRecord{}, fmt.Errorf("%w (%s)", ErrInvalidInput, urlShapesHint)
	}

	if rec, ok := s.store.Get(id); ok {
		slog.Debug("transcript served from store", slog.String("video_id", id))
		return rec, nil
	}

	// The provider call blocks on network I/O; the store lock is only
	// taken for the final Put.
	segments, err := s.fetch(ctx, id, LangPrefs(language))
	if err != nil {
		IncrProviderErrors()
		return TranscriptRecord{}, fmt.Errorf("%w: %s", ErrNotAvailable, TruncateRunes(err.Error(), 300, "…"))
	}

	text := JoinSegments(segments)
	rec := TranscriptRecord{
		VideoID:    id,
		VideoURL:   videoURL,
		Transcript: text,
		Language:   language,
		Timestamp:  time.Now(),
		WordCount:  WordCount(text),
		Status:     StatusSuccess,
	}
	s.store.Put(id, rec)

	slog.Info("transcript fetched",
		slog.String("video_id", id),
		slog.String("language", language),
		slog.Int("word_count", rec.WordCount),
	)
	return rec, nil
}
