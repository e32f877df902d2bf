package reservation

import (
	"errors"
	"time"
)

// MaxCommentLength bounds the optional free-text comment.
const MaxCommentLength = 255

// Reservation is a request by a user to claim a task, tracked through a
// status lifecycle. RequesterID and TaskID are immutable after creation and
// never empty. Version supports compare-and-swap saves at the storage layer.
type Reservation struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requester_id"`
	TaskID      string    `json:"task_id"`
	Status      Status    `json:"status"`
	Comment     string    `json:"comment,omitempty"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var (
	ErrNotFound          = errors.New("reservation not found")
	ErrInvalidStatus     = errors.New("invalid reservation status")
	ErrInvalidTransition = errors.New("illegal status transition")
	ErrTaskRequired      = errors.New("task reference is required")
	ErrCommentTooLong    = errors.New("comment exceeds 255 characters")
	ErrVersionConflict   = errors.New("reservation was modified concurrently")
)
