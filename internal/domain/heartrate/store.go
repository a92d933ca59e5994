package heartrate

import (
	"sort"
	"sync"
)

// Store holds heart-rate readings grouped by patient, each group sorted by
// timestamp string. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	byPatient map[string][]Reading
}

func NewStore() *Store {
	return &Store{byPatient: make(map[string][]Reading)}
}

// UpsertMany groups the batch by patient and replaces each affected
// patient's readings with that patient's part of the batch. Patients absent
// from the batch keep their readings.
func (s *Store) UpsertMany(list []Reading) {
	batch := make(map[string][]Reading)
	for _, r := range list {
		batch[r.PatientID] = append(batch[r.PatientID], r)
	}
	for _, readings := range batch {
		sort.SliceStable(readings, func(i, j int) bool {
			return readings[i].Timestamp < readings[j].Timestamp
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, readings := range batch {
		s.byPatient[id] = readings
	}
}

// ByPatient returns a copy of the patient's readings in ascending timestamp
// order, or an empty slice.
func (s *Store) ByPatient(id string) []Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.byPatient[id]
	out := make([]Reading, len(stored))
	copy(out, stored)
	return out
}

// Len returns the total number of stored readings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, readings := range s.byPatient {
		n += len(readings)
	}
	return n
}
