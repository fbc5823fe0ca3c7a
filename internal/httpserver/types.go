package httpserver

import "github.com/anatolykoptev/go_transcript/internal/engine"

type errorResponse struct {
	Detail string `json:"detail"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

type listResponse struct {
	Count   int                       `json:"count"`
	Limit   int                       `json:"limit"`
	Offset  int                       `json:"offset"`
	Results []engine.TranscriptRecord `json:"results"`
}
