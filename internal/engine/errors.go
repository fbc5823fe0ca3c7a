package engine

import "errors"

// Error taxonomy surfaced to the HTTP layer. Handlers map these with
// errors.Is; everything else is a server fault.
var (
	// ErrInvalidInput means the URL did not yield a recognizable video ID.
	ErrInvalidInput = errors.New("invalid YouTube URL")

	// ErrNotAvailable means the provider could not produce a transcript
	// (captions disabled, unsupported language, missing video, transport
	// failure). The wrapped message carries the upstream diagnostic.
	ErrNotAvailable = errors.New("transcript not available")
)
