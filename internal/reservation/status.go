package reservation

import "strings"

// Status is the closed reservation lifecycle enumeration. Persisted values
// are always one of the constants below, never an arbitrary string.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusReturned Status = "returned"
)

// Statuses lists every member of the enumeration.
func Statuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusRejected, StatusReturned}
}

// ParseStatus normalizes a raw value into a Status.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.TrimSpace(strings.ToLower(raw))) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	case StatusReturned:
		return StatusReturned, nil
	default:
		return "", ErrInvalidStatus
	}
}

// transitions is the legality table enforced in strict mode. Rejected and
// returned are terminal.
var transitions = map[Status]map[Status]bool{
	StatusPending:  {StatusApproved: true, StatusRejected: true},
	StatusApproved: {StatusReturned: true},
	StatusRejected: {},
	StatusReturned: {},
}

// CanTransition reports whether the from→to transition is legal.
func CanTransition(from, to Status) bool {
	next, ok := transitions[from]
	return ok && next[to]
}

// ValidateTransition returns ErrInvalidTransition for an illegal transition.
func ValidateTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return ErrInvalidTransition
	}
	return nil
}

// Terminal reports whether no further transition is defined for the status.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}
