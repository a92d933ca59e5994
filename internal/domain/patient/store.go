package patient

import "sync"

// Store holds patient records and their request counters in memory.
// It is safe for concurrent use.
type Store struct {
	mu            sync.RWMutex
	byID          map[string]Patient
	order         []string
	requestCounts map[string]int
}

func NewStore() *Store {
	return &Store{
		byID:          make(map[string]Patient),
		requestCounts: make(map[string]int),
	}
}

// UpsertMany inserts or replaces records keyed by id; the last record for a
// given id wins.
func (s *Store) UpsertMany(list []Patient) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range list {
		if _, ok := s.byID[p.ID]; !ok {
			s.order = append(s.order, p.ID)
		}
		s.byID[p.ID] = p
	}
}

// FindAll returns every patient in first-insertion order.
func (s *Store) FindAll() []Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Patient, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *Store) FindByID(id string) (Patient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	return p, ok
}

// Len returns the number of stored patients.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// IncrementRequestCount adds one to the counter of a known patient. Unknown
// ids are ignored so that tracking can never fail a request.
func (s *Store) IncrementRequestCount(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return
	}
	s.requestCounts[id]++
}

// RequestCount returns the counter for id, 0 when never incremented or unknown.
func (s *Store) RequestCount(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requestCounts[id]
}
