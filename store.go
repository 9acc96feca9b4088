package plotrec

import (
	"sort"
	"sync"

	"github.com/gogpu/plotrec/recording"
)

// Store holds recordings keyed by opaque ids. Ids carry no meaning to
// the store; the collaborator that assigns them owns their lifecycle,
// so the store never evicts on its own.
//
// Store is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	recs map[string]*recording.Recording
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{recs: make(map[string]*recording.Recording)}
}

// Put stores rec under id, replacing any previous recording.
func (s *Store) Put(id string, rec *recording.Recording) {
	s.mu.Lock()
	s.recs[id] = rec
	s.mu.Unlock()
}

// Get returns the recording stored under id.
func (s *Store) Get(id string) (*recording.Recording, bool) {
	s.mu.RLock()
	rec, ok := s.recs[id]
	s.mu.RUnlock()
	return rec, ok
}

// Remove deletes the recording under id and reports whether one existed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	_, ok := s.recs[id]
	delete(s.recs, id)
	s.mu.Unlock()
	return ok
}

// Len returns the number of stored recordings.
func (s *Store) Len() int {
	s.mu.RLock()
	n := len(s.recs)
	s.mu.RUnlock()
	return n
}

// IDs returns the stored ids in sorted order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.recs))
	for id := range s.recs {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
