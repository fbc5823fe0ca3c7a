package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// DefaultMaxEntries bounds the store when no explicit capacity is given.
const DefaultMaxEntries = 100

// Store is a fixed-capacity, insertion-ordered transcript cache.
// Eviction is strictly FIFO: when full, the longest-resident entry is
// removed to make room, one out per one in. Entries never expire by
// time — cached transcripts can go stale if captions are corrected
// upstream; only capacity pressure or a restart removes them.
//
// All methods are safe for concurrent use. A single RWMutex serializes
// mutations so evict-plus-insert is observed as one step and at most
// one record exists per video ID.
type Store struct {
	mu         sync.RWMutex
	maxEntries int
	records    map[string]TranscriptRecord
	order      []string // insertion order, oldest first

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewStore creates an empty store holding at most maxEntries records.
// Non-positive maxEntries falls back to DefaultMaxEntries.
func NewStore(maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{
		maxEntries: maxEntries,
		records:    make(map[string]TranscriptRecord, maxEntries),
		order:      make([]string, 0, maxEntries),
	}
}

// Get returns the record for id, if present.
func (s *Store) Get(id string) (TranscriptRecord, bool) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if ok {
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
	}
	return rec, ok
}

// Put inserts or replaces the record for id. Replacing an existing id
// keeps its original eviction position. When the store is full and id
// is new, the oldest-inserted entry is evicted first.
func (s *Store) Put(id string, rec TranscriptRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; exists {
		s.records[id] = rec
		return
	}

	if len(s.order) >= s.maxEntries {
		oldest := s.order[0]
		copy(s.order, s.order[1:])
		s.order = s.order[:len(s.order)-1]
		delete(s.records, oldest)
		s.evictions.Add(1)
		slog.Debug("store: evicted oldest entry", slog.String("video_id", oldest))
	}

	s.records[id] = rec
	s.order = append(s.order, id)
}

// Size returns the current entry count.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// List returns up to limit records starting at offset, in insertion
// order. Out-of-range offsets yield an empty slice, never an error.
func (s *Store) List(offset, limit int) []TranscriptRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]TranscriptRecord, 0, limit)
	if offset < 0 || limit <= 0 || offset >= len(s.order) {
		return out
	}
	end := offset + limit
	if end > len(s.order) {
		end = len(s.order)
	}
	for _, id := range s.order[offset:end] {
		out = append(out, s.records[id])
	}
	return out
}

// Stats returns the store's hit/miss/eviction counters.
func (s *Store) Stats() (hits, misses, evictions int64) {
	return s.hits.Load(), s.misses.Load(), s.evictions.Load()
}
