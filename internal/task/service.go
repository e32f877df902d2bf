package task

import (
	"context"
	"strings"
	"time"

	"reserva.org/internal/auth"
	"reserva.org/internal/ids"
)

// Service exposes actor-gated CRUD over tasks and categories. Writes are
// administrator-only, views are open to every authenticated actor, per the
// authorization policy table.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService constructs the task service.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) CreateTask(ctx context.Context, actor *auth.Actor, title, categoryID string) (*Task, error) {
	if err := auth.Require(actor, auth.ActionCreate, auth.SubjectTask); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	now := s.now().UTC()
	t := &Task{
		ID:         ids.New(),
		Title:      title,
		CategoryID: strings.TrimSpace(categoryID),
		Available:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) GetTask(ctx context.Context, actor *auth.Actor, id string) (*Task, error) {
	if err := auth.Require(actor, auth.ActionView, auth.SubjectTask); err != nil {
		return nil, err
	}
	return s.store.FindTask(ctx, id)
}

func (s *Service) ListTasks(ctx context.Context, actor *auth.Actor) ([]*Task, error) {
	if err := auth.Require(actor, auth.ActionView, auth.SubjectTask); err != nil {
		return nil, err
	}
	return s.store.ListTasks(ctx)
}

func (s *Service) UpdateTask(ctx context.Context, actor *auth.Actor, id string, upd TaskUpdate) (*Task, error) {
	if err := auth.Require(actor, auth.ActionEdit, auth.SubjectTask); err != nil {
		return nil, err
	}
	if upd.Title != nil {
		trimmed := strings.TrimSpace(*upd.Title)
		if trimmed == "" {
			return nil, ErrTitleRequired
		}
		upd.Title = &trimmed
	}
	return s.store.UpdateTask(ctx, id, upd)
}

func (s *Service) DeleteTask(ctx context.Context, actor *auth.Actor, id string) error {
	if err := auth.Require(actor, auth.ActionDelete, auth.SubjectTask); err != nil {
		return err
	}
	return s.store.DeleteTask(ctx, id)
}

func (s *Service) CreateCategory(ctx context.Context, actor *auth.Actor, name string) (*Category, error) {
	if err := auth.Require(actor, auth.ActionCreate, auth.SubjectCategory); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	now := s.now().UTC()
	c := &Category{
		ID:        ids.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetCategory(ctx context.Context, actor *auth.Actor, id string) (*Category, error) {
	if err := auth.Require(actor, auth.ActionView, auth.SubjectCategory); err != nil {
		return nil, err
	}
	return s.store.FindCategory(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context, actor *auth.Actor) ([]*Category, error) {
	if err := auth.Require(actor, auth.ActionView, auth.SubjectCategory); err != nil {
		return nil, err
	}
	return s.store.ListCategories(ctx)
}

func (s *Service) UpdateCategory(ctx context.Context, actor *auth.Actor, id string, upd CategoryUpdate) (*Category, error) {
	if err := auth.Require(actor, auth.ActionEdit, auth.SubjectCategory); err != nil {
		return nil, err
	}
	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		upd.Name = &trimmed
	}
	return s.store.UpdateCategory(ctx, id, upd)
}

func (s *Service) DeleteCategory(ctx context.Context, actor *auth.Actor, id string) error {
	if err := auth.Require(actor, auth.ActionDelete, auth.SubjectCategory); err != nil {
		return err
	}
	return s.store.DeleteCategory(ctx, id)
}
