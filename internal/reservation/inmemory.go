package reservation

import (
	"context"
	"sort"
	"sync"
)

// InMemory implements Store with in-process concurrency safety. Used in tests
// and for DSN-less runs; the Postgres store is the durable twin.
type InMemory struct {
	mu   sync.RWMutex
	rows map[string]*Reservation
}

// NewInMemory creates an empty store.
func NewInMemory() *InMemory {
	return &InMemory{rows: make(map[string]*Reservation)}
}

// Save inserts or updates the reservation. Updates compare-and-swap on
// Version: a stale caller gets ErrVersionConflict and the stored row is left
// untouched.
func (s *InMemory) Save(ctx context.Context, r *Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rows[r.ID]
	if ok && existing.Version != r.Version {
		return ErrVersionConflict
	}
	stored := *r
	stored.Version++
	s.rows[r.ID] = &stored
	r.Version = stored.Version
	return nil
}

// Find returns a copy of the stored reservation.
func (s *InMemory) Find(ctx context.Context, id string) (*Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *r
	return &out, nil
}

// List returns all reservations ordered by creation.
func (s *InMemory) List(ctx context.Context) ([]*Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(*Reservation) bool { return true }), nil
}

// ListByRequester returns the requester's reservations ordered by creation.
func (s *InMemory) ListByRequester(ctx context.Context, requesterID string) ([]*Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(r *Reservation) bool { return r.RequesterID == requesterID }), nil
}

func (s *InMemory) collect(keep func(*Reservation) bool) []*Reservation {
	var res []*Reservation
	for _, r := range s.rows {
		if keep(r) {
			out := *r
			res = append(res, &out)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}
