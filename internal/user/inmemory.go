package user

import (
	"context"
	"sort"
	"sync"
)

// InMemory is a map-backed Store for tests and local runs.
type InMemory struct {
	mu   sync.RWMutex
	rows map[string]*User
}

func NewInMemory() *InMemory {
	return &InMemory{rows: make(map[string]*User)}
}

func (s *InMemory) Create(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.Email == u.Email {
			return ErrEmailTaken
		}
	}
	cp := *u
	s.rows[u.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (s *InMemory) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, row := range s.rows {
		if row.Email == email {
			cp := *row
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemory) List(ctx context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*User, 0, len(s.rows))
	for _, row := range s.rows {
		cp := *row
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
