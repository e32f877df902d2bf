package task

import "context"

// Store describes persistence for tasks and categories. Implementations also
// satisfy reservation.TaskGateway through Exists and SetAvailability.
type Store interface {
	CreateTask(ctx context.Context, t *Task) error
	FindTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	UpdateTask(ctx context.Context, id string, upd TaskUpdate) (*Task, error)
	DeleteTask(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	SetAvailability(ctx context.Context, id string, available bool) error

	CreateCategory(ctx context.Context, c *Category) error
	FindCategory(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	UpdateCategory(ctx context.Context, id string, upd CategoryUpdate) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
}
