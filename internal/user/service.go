package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"reserva.org/internal/auth"
	"reserva.org/internal/ids"
)

// Service exposes account operations with policy enforced at the edge.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates an account. It is unauthenticated so new members can
// sign themselves up; role grants beyond member require an admin seed.
func (s *Service) Register(ctx context.Context, email, name, password string, roles []auth.Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		roles = []auth.Role{auth.RoleMember}
	}
	u := &User{
		ID:           ids.New(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		Roles:        roles,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate checks credentials and returns the account on success.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if err := VerifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}

// List returns the full directory. Admins only.
func (s *Service) List(ctx context.Context, actor *auth.Actor) ([]*User, error) {
	if err := auth.Require(actor, auth.ActionList, auth.SubjectUserList); err != nil {
		return nil, err
	}
	return s.store.List(ctx)
}

// Get returns a single account. Actors may read themselves; anything
// else is admin only.
func (s *Service) Get(ctx context.Context, actor *auth.Actor, id string) (*User, error) {
	if actor == nil {
		return nil, auth.ErrUnauthorized
	}
	if actor.ID != id && !actor.IsAdmin() {
		return nil, auth.ErrUnauthorized
	}
	return s.store.FindByID(ctx, id)
}
