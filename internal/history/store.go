// Package history keeps a bounded, in-memory record of successful prints.
// Process restart clears it; there is deliberately no disk backing.
package history

import (
	"sync"

	"ticketd/internal/model"
)

// Store holds recent entries most-recent-first. Inserts are atomic with
// respect to each other and to reads; the oldest entry is evicted once the
// capacity is exceeded.
type Store struct {
	mu       sync.RWMutex
	capacity int
	entries  []*model.HistoryEntry
}

func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = 10
	}
	return &Store{capacity: capacity}
}

func (s *Store) Insert(entry *model.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]*model.HistoryEntry{entry}, s.entries...)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[:s.capacity]
	}
}

// List returns a copy of the entries, most recent first.
func (s *Store) List() []*model.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Get(id string) (*model.HistoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
