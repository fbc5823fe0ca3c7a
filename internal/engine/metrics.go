package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests atomic.Int64
	ProviderErrors     atomic.Int64
	ProviderFallbacks  atomic.Int64
}

// GetMetrics returns a snapshot of all counters including store stats.
func GetMetrics(store *Store) map[string]int64 {
	hits, misses, evictions := store.Stats()
	return map[string]int64{
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"provider_errors":     metrics.ProviderErrors.Load(),
		"provider_fallbacks":  metrics.ProviderFallbacks.Load(),
		"store_entries":       int64(store.Size()),
		"store_hits":          hits,
		"store_misses":        misses,
		"store_evictions":     evictions,
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics(store *Store) string {
	m := GetMetrics(store)
	var sb strings.Builder
	keys := []string{
		"transcript_requests", "provider_errors", "provider_fallbacks",
		"store_entries", "store_hits", "store_misses", "store_evictions",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// IncrTranscriptRequests increments the request counter.
func IncrTranscriptRequests() { metrics.TranscriptRequests.Add(1) }

// IncrProviderErrors increments the provider failure counter.
func IncrProviderErrors() { metrics.ProviderErrors.Add(1) }

// IncrProviderFallbacks counts fetches that fell through to a backup strategy.
func IncrProviderFallbacks() { metrics.ProviderFallbacks.Add(1) }
