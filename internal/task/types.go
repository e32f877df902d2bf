package task

import (
	"errors"
	"time"
)

// Task is a reservable resource. Available tracks whether an approved
// reservation currently holds it.
type Task struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	CategoryID string    `json:"category_id,omitempty"`
	Available  bool      `json:"available"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Category groups tasks.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrNotFound      = errors.New("task: not found")
	ErrTitleRequired = errors.New("task: title is required")
	ErrNameRequired  = errors.New("task: category name is required")
	ErrInUse         = errors.New("task: still referenced")
)

// TaskUpdate carries optional field replacements for a task.
type TaskUpdate struct {
	Title      *string
	CategoryID *string
	Available  *bool
}

// CategoryUpdate carries optional field replacements for a category.
type CategoryUpdate struct {
	Name *string
}
