package engine

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func testRecord(id string) TranscriptRecord {
	return TranscriptRecord{
		VideoID:    id,
		VideoURL:   "https://youtu.be/" + id,
		Transcript: "text for " + id,
		Language:   "en",
		Timestamp:  time.Now(),
		WordCount:  3,
		Status:     StatusSuccess,
	}
}

func TestStoreGetPut(t *testing.T) {
	s := NewStore(10)

	if _, ok := s.Get("missing0000"); ok {
		t.Error("expected miss on empty store")
	}

	s.Put("aaaaaaaaaaa", testRecord("aaaaaaaaaaa"))
	rec, ok := s.Get("aaaaaaaaaaa")
	if !ok {
		t.Fatal("expected hit after put")
	}
	if rec.VideoID != "aaaaaaaaaaa" {
		t.Errorf("got video_id %q, want %q", rec.VideoID, "aaaaaaaaaaa")
	}
	if s.Size() != 1 {
		t.Errorf("size = %d, want 1", s.Size())
	}
}

func TestStoreCapacityInvariant(t *testing.T) {
	s := NewStore(5)
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("video-%05d", i)
		s.Put(id, testRecord(id))
		if s.Size() > 5 {
			t.Fatalf("size = %d after %d puts, capacity is 5", s.Size(), i+1)
		}
	}
	if s.Size() != 5 {
		t.Errorf("size = %d, want 5", s.Size())
	}
}

func TestStoreFIFOEviction(t *testing.T) {
	s := NewStore(3)
	ids := []string{"id-one-0001", "id-two-0002", "id-three-03", "id-four-004"}
	for _, id := range ids {
		s.Put(id, testRecord(id))
	}

	if _, ok := s.Get(ids[0]); ok {
		t.Error("first-inserted entry should have been evicted")
	}
	for _, id := range ids[1:] {
		if _, ok := s.Get(id); !ok {
			t.Errorf("entry %q missing after eviction", id)
		}
	}

	_, _, evictions := s.Stats()
	if evictions != 1 {
		t.Errorf("evictions = %d, want 1", evictions)
	}
}

func TestStoreReplaceKeepsPosition(t *testing.T) {
	s := NewStore(2)
	s.Put("first000001", testRecord("first000001"))
	s.Put("second00002", testRecord("second00002"))

	// Replace the oldest entry; its eviction position must not change.
	updated := testRecord("first000001")
	updated.Transcript = "updated"
	s.Put("first000001", updated)

	if s.Size() != 2 {
		t.Fatalf("size = %d after replace, want 2", s.Size())
	}
	if rec, _ := s.Get("first000001"); rec.Transcript != "updated" {
		t.Errorf("get returned stale record after replace: %q", rec.Transcript)
	}

	// Next insert still evicts the replaced entry, not the second one.
	s.Put("third000003", testRecord("third000003"))
	if _, ok := s.Get("first000001"); ok {
		t.Error("replaced entry should keep its FIFO position and be evicted first")
	}
	if _, ok := s.Get("second00002"); !ok {
		t.Error("second entry should survive")
	}
}

func TestStoreList(t *testing.T) {
	s := NewStore(10)
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("video-%05d", i)
		s.Put(id, testRecord(id))
	}

	tests := []struct {
		name    string
		offset  int
		limit   int
		wantLen int
		first   string
	}{
		{name: "first page", offset: 0, limit: 3, wantLen: 3, first: "video-00000"},
		{name: "second page", offset: 3, limit: 3, wantLen: 2, first: "video-00003"},
		{name: "limit beyond size", offset: 0, limit: 50, wantLen: 5, first: "video-00000"},
		{name: "offset at size", offset: 5, limit: 10, wantLen: 0},
		{name: "offset beyond size", offset: 100, limit: 10, wantLen: 0},
		{name: "negative offset", offset: -1, limit: 10, wantLen: 0},
		{name: "zero limit", offset: 0, limit: 0, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.List(tt.offset, tt.limit)
			if len(got) != tt.wantLen {
				t.Fatalf("List(%d, %d) returned %d records, want %d", tt.offset, tt.limit, len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && got[0].VideoID != tt.first {
				t.Errorf("first record = %q, want %q", got[0].VideoID, tt.first)
			}
		})
	}
}

func TestStoreListInsertionOrder(t *testing.T) {
	s := NewStore(3)
	for _, id := range []string{"id-one-0001", "id-two-0002", "id-three-03", "id-four-004"} {
		s.Put(id, testRecord(id))
	}

	got := s.List(0, 10)
	want := []string{"id-two-0002", "id-three-03", "id-four-004"}
	if len(got) != len(want) {
		t.Fatalf("List returned %d records, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].VideoID != id {
			t.Errorf("List[%d] = %q, want %q", i, got[i].VideoID, id)
		}
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore(8)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id := fmt.Sprintf("vid-%d-%05d", g, i)
				s.Put(id, testRecord(id))
				s.Get(id)
				s.List(0, 10)
				s.Size()
			}
		}(g)
	}
	wg.Wait()

	if s.Size() > 8 {
		t.Errorf("size = %d exceeds capacity 8 after concurrent puts", s.Size())
	}
	if got := len(s.List(0, 50)); got != s.Size() {
		t.Errorf("List length %d disagrees with Size %d", got, s.Size())
	}
}
