package reservation

import (
	"context"
	"fmt"
	"time"
)

// Manager owns the reservation status state machine: it applies transitions
// and persists the result through the injected store. It performs no
// authorization; callers confirm the actor's permissions first.
//
// Transitions are all-or-nothing: the stored reservation is copied, the copy
// is mutated and saved, and only a successful save is visible to callers. By
// default any status can be overwritten; WithStrictTransitions enforces the
// legality table instead.
type Manager struct {
	store  Store
	tasks  TaskGateway
	strict bool
	now    func() time.Time
}

// ManagerOption configures Manager behavior.
type ManagerOption func(*Manager)

// WithStrictTransitions makes the manager reject transitions outside the
// legality table with ErrInvalidTransition.
func WithStrictTransitions() ManagerOption {
	return func(m *Manager) { m.strict = true }
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ManagerOption {
	return func(m *Manager) {
		if fn != nil {
			m.now = fn
		}
	}
}

// NewManager constructs a Manager. tasks may be nil, in which case the
// availability cascade is skipped.
func NewManager(store Store, tasks TaskGateway, opts ...ManagerOption) *Manager {
	m := &Manager{
		store: store,
		tasks: tasks,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Approve sets the reservation to approved and marks the task unavailable.
func (m *Manager) Approve(ctx context.Context, id string) (*Reservation, error) {
	return m.transition(ctx, id, StatusApproved, nil)
}

// Reject sets the reservation to rejected. The task is left untouched.
func (m *Manager) Reject(ctx context.Context, id string) (*Reservation, error) {
	return m.transition(ctx, id, StatusRejected, nil)
}

// MarkReturned sets the reservation to returned and makes the task available
// again.
func (m *Manager) MarkReturned(ctx context.Context, id string) (*Reservation, error) {
	return m.transition(ctx, id, StatusReturned, nil)
}

// ChangeStatus is the generic update used by the edit flow: it sets the
// status and, when comment is non-nil, replaces the comment.
func (m *Manager) ChangeStatus(ctx context.Context, id string, next Status, comment *string) (*Reservation, error) {
	if _, err := ParseStatus(string(next)); err != nil {
		return nil, err
	}
	if comment != nil && len([]rune(*comment)) > MaxCommentLength {
		return nil, ErrCommentTooLong
	}
	return m.transition(ctx, id, next, comment)
}

func (m *Manager) transition(ctx context.Context, id string, next Status, comment *string) (*Reservation, error) {
	current, err := m.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.strict && current.Status != next {
		if err := ValidateTransition(current.Status, next); err != nil {
			return nil, err
		}
	}

	updated := *current
	updated.Status = next
	if comment != nil {
		updated.Comment = *comment
	}
	updated.UpdatedAt = m.now().UTC()

	if err := m.store.Save(ctx, &updated); err != nil {
		return nil, err
	}
	if err := m.cascade(ctx, &updated); err != nil {
		// Restore the prior row so a failed cascade never leaves the
		// reservation half-transitioned.
		restored := *current
		restored.Version = updated.Version
		restored.UpdatedAt = m.now().UTC()
		if rbErr := m.store.Save(ctx, &restored); rbErr != nil {
			return nil, fmt.Errorf("%w (restore failed: %v)", err, rbErr)
		}
		return nil, err
	}
	return &updated, nil
}

// cascade propagates approve/return to the task's availability flag.
func (m *Manager) cascade(ctx context.Context, r *Reservation) error {
	if m.tasks == nil {
		return nil
	}
	switch r.Status {
	case StatusApproved:
		if err := m.tasks.SetAvailability(ctx, r.TaskID, false); err != nil {
			return fmt.Errorf("mark task unavailable: %w", err)
		}
	case StatusReturned:
		if err := m.tasks.SetAvailability(ctx, r.TaskID, true); err != nil {
			return fmt.Errorf("mark task available: %w", err)
		}
	}
	return nil
}
