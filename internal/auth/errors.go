package auth

import "errors"

var (
	// ErrUnauthorized is returned when the actor is missing or the policy
	// denies the requested action.
	ErrUnauthorized = errors.New("auth: unauthorized")

	// ErrInvalidToken indicates the bearer token failed validation.
	ErrInvalidToken = errors.New("auth: invalid token")
)
