package reservation

import (
	"context"
	"strings"

	"reserva.org/internal/auth"
	"reserva.org/internal/ids"
)

// Service is the boundary facade over the lifecycle manager: every operation
// takes the acting user explicitly, consults the authorization policy, and
// only then touches the state machine. Authorization failures are reported
// before any input validation.
type Service struct {
	mgr   *Manager
	store Store
	tasks TaskGateway
}

// NewService constructs the actor-facing reservation service.
func NewService(store Store, tasks TaskGateway, opts ...ManagerOption) *Service {
	return &Service{
		mgr:   NewManager(store, tasks, opts...),
		store: store,
		tasks: tasks,
	}
}

// Create makes a new pending reservation owned by the actor. The target task
// must exist; the comment is optional and bounded.
func (s *Service) Create(ctx context.Context, actor *auth.Actor, taskID, comment string) (*Reservation, error) {
	if actor == nil {
		return nil, auth.ErrUnauthorized
	}
	if err := auth.Require(actor, auth.ActionCreate, auth.SubjectReservation); err != nil {
		return nil, err
	}

	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return nil, ErrTaskRequired
	}
	if len([]rune(comment)) > MaxCommentLength {
		return nil, ErrCommentTooLong
	}
	ok, err := s.tasks.Exists(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	now := s.mgr.now().UTC()
	r := &Reservation{
		ID:          ids.New(),
		RequesterID: actor.ID,
		TaskID:      taskID,
		Status:      StatusPending,
		Comment:     comment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Approve transitions the reservation to approved. Admin only.
func (s *Service) Approve(ctx context.Context, actor *auth.Actor, id string) (*Reservation, error) {
	if err := auth.Require(actor, auth.ActionChangeStatus, auth.SubjectReservation); err != nil {
		return nil, err
	}
	return s.mgr.Approve(ctx, id)
}

// Reject transitions the reservation to rejected. Admin only.
func (s *Service) Reject(ctx context.Context, actor *auth.Actor, id string) (*Reservation, error) {
	if err := auth.Require(actor, auth.ActionChangeStatus, auth.SubjectReservation); err != nil {
		return nil, err
	}
	return s.mgr.Reject(ctx, id)
}

// Return transitions the reservation to returned. Admin only.
func (s *Service) Return(ctx context.Context, actor *auth.Actor, id string) (*Reservation, error) {
	if err := auth.Require(actor, auth.ActionChangeStatus, auth.SubjectReservation); err != nil {
		return nil, err
	}
	return s.mgr.MarkReturned(ctx, id)
}

// ChangeStatus applies a generic status update with an optional comment
// replacement. Admin only.
func (s *Service) ChangeStatus(ctx context.Context, actor *auth.Actor, id string, rawStatus string, comment *string) (*Reservation, error) {
	if err := auth.Require(actor, auth.ActionChangeStatus, auth.SubjectReservation); err != nil {
		return nil, err
	}
	next, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return s.mgr.ChangeStatus(ctx, id, next, comment)
}

// Get returns a single reservation. Members may only see their own.
func (s *Service) Get(ctx context.Context, actor *auth.Actor, id string) (*Reservation, error) {
	if err := auth.Require(actor, auth.ActionList, auth.SubjectReservation); err != nil {
		return nil, err
	}
	r, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && r.RequesterID != actor.ID {
		return nil, auth.ErrUnauthorized
	}
	return r, nil
}

// List returns every reservation for administrators and only the actor's own
// reservations otherwise.
func (s *Service) List(ctx context.Context, actor *auth.Actor) ([]*Reservation, error) {
	if err := auth.Require(actor, auth.ActionList, auth.SubjectReservation); err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return s.store.List(ctx)
	}
	return s.store.ListByRequester(ctx, actor.ID)
}
