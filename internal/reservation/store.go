package reservation

import "context"

// Store describes persistence operations required by the lifecycle manager.
// Save must be atomic per call: it either persists the whole reservation or
// changes nothing. Implementations compare Version and return
// ErrVersionConflict when the stored row has moved on.
type Store interface {
	Save(ctx context.Context, r *Reservation) error
	Find(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context) ([]*Reservation, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*Reservation, error)
}

// TaskGateway is the narrow view of the task store the lifecycle needs:
// existence checks at creation time and the availability cascade on
// approve/return.
type TaskGateway interface {
	Exists(ctx context.Context, taskID string) (bool, error)
	SetAvailability(ctx context.Context, taskID string, available bool) error
}
