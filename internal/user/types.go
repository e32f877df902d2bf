// Package user holds the account directory: registered users, their
// role grants, and credential verification for token issuance.
package user

import (
	"errors"
	"time"

	"reserva.org/internal/auth"
)

var (
	ErrNotFound       = errors.New("user: not found")
	ErrEmailRequired  = errors.New("user: email required")
	ErrEmailTaken     = errors.New("user: email already registered")
	ErrBadCredentials = errors.New("user: bad credentials")
)

// User is a registered account. PasswordHash never leaves the package
// boundary in API responses.
type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Roles        []auth.Role `json:"roles"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Actor converts the account into the identity policy checks use.
func (u *User) Actor() *auth.Actor {
	return &auth.Actor{ID: u.ID, Email: u.Email, Roles: u.Roles}
}
