package task

import (
	"context"
	"sort"
	"sync"
)

// InMemory implements Store with in-process concurrency safety.
type InMemory struct {
	mu         sync.RWMutex
	tasks      map[string]*Task
	categories map[string]*Category
	// reserved tracks task IDs referenced by reservations; DeleteTask
	// refuses to remove them, mirroring the foreign-key constraint of the
	// Postgres store.
	reserved map[string]int
}

// NewInMemory creates empty stores.
func NewInMemory() *InMemory {
	return &InMemory{
		tasks:      make(map[string]*Task),
		categories: make(map[string]*Category),
		reserved:   make(map[string]int),
	}
}

// MarkReserved registers a reservation reference to the task. Test and
// in-memory wiring helper; the Postgres store gets this for free from FKs.
func (s *InMemory) MarkReserved(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reserved[taskID]++
}

func (s *InMemory) CreateTask(ctx context.Context, t *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *t
	s.tasks[t.ID] = &stored
	return nil
}

func (s *InMemory) FindTask(ctx context.Context, id string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *t
	return &out, nil
}

func (s *InMemory) ListTasks(ctx context.Context) ([]*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out := *t
		res = append(res, &out)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *InMemory) UpdateTask(ctx context.Context, id string, upd TaskUpdate) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.CategoryID != nil {
		t.CategoryID = *upd.CategoryID
	}
	if upd.Available != nil {
		t.Available = *upd.Available
	}
	out := *t
	return &out, nil
}

func (s *InMemory) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	if s.reserved[id] > 0 {
		return ErrInUse
	}
	delete(s.tasks, id)
	return nil
}

func (s *InMemory) Exists(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tasks[id]
	return ok, nil
}

func (s *InMemory) SetAvailability(ctx context.Context, id string, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return ErrNotFound
	}
	t.Available = available
	return nil
}

func (s *InMemory) CreateCategory(ctx context.Context, c *Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *c
	s.categories[c.ID] = &stored
	return nil
}

func (s *InMemory) FindCategory(ctx context.Context, id string) (*Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *c
	return &out, nil
}

func (s *InMemory) ListCategories(ctx context.Context) ([]*Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]*Category, 0, len(s.categories))
	for _, c := range s.categories {
		out := *c
		res = append(res, &out)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *InMemory) UpdateCategory(ctx context.Context, id string, upd CategoryUpdate) (*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	out := *c
	return &out, nil
}

func (s *InMemory) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return ErrNotFound
	}
	for _, t := range s.tasks {
		if t.CategoryID == id {
			return ErrInUse
		}
	}
	delete(s.categories, id)
	return nil
}
