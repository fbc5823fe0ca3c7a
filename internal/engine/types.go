package engine

import (
	"context"
	"time"
)

// Segment is a single timed caption line as returned by the provider.
// Start and Duration are seconds. Records keep only the joined text;
// timing never leaves the fetch path.
type Segment struct {
	Text     string
	Start    float64
	Duration float64
}

// StatusSuccess is the only record status currently produced.
// Failed fetches are never stored, so the field is reserved for
// future failure caching.
const StatusSuccess = "success"

// TranscriptRecord is the cached unit of work, one per video ID.
type TranscriptRecord struct {
	VideoID    string    `json:"video_id"`
	VideoURL   string    `json:"video_url"`
	Transcript string    `json:"transcript"`
	Language   string    `json:"language"`
	Timestamp  time.Time `json:"timestamp"`
	WordCount  int       `json:"word_count"`
	Status     string    `json:"status"`
}

// FetchFunc fetches the ordered caption segments for a video.
// langs is a preference list; empty means any available track.
type FetchFunc func(ctx context.Context, videoID string, langs []string) ([]Segment, error)
