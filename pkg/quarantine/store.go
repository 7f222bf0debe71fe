package quarantine

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/brandkit/pkg/filescan"
)

// Record is a quarantined file with the reason it was held.
type Record struct {
	ID        string
	File      filescan.FileHandle
	Reason    string
	CreatedAt time.Time
}

// Store is a keyed in-memory holding area. Concurrent Put, Release, List,
// and Clear calls are serialized by a mutex; List observes a consistent
// snapshot.
type Store struct {
	mu      sync.Mutex
	records map[string]Record
	now     func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

// Put holds a file with a reason and returns the record id.
func (s *Store) Put(file filescan.FileHandle, reason string) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = Record{
		ID:        id,
		File:      file,
		Reason:    reason,
		CreatedAt: s.now(),
	}
	return id
}

// Release atomically removes the record and returns its file. The second
// return is false when the id is unknown; the store is left untouched, so
// double-release is a safe no-op.
func (s *Store) Release(id string) (filescan.FileHandle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, false
	}
	delete(s.records, id)
	return rec.File, true
}

// List returns a snapshot of all current records, ordered by creation time.
func (s *Store) List() []Record {
	s.mu.Lock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Clear empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]Record)
}

// Len returns the number of held records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
