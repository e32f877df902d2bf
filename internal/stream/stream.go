package stream

import (
	"context"
	"sync"
	"time"
)

// ReservationEvent describes a status change broadcast to live listeners
// (the SSE endpoint and the audit trail UI).
type ReservationEvent struct {
	ReservationID string    `json:"reservation_id"`
	TaskID        string    `json:"task_id"`
	ActorID       string    `json:"actor_id"`
	Previous      string    `json:"previous"`
	Next          string    `json:"next"`
	Comment       string    `json:"comment,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Stream fan-outs reservation events to all active subscribers (SSE clients).
type Stream struct {
	mu   sync.RWMutex
	subs map[int]chan ReservationEvent
	next int
}

// New initialises an empty stream.
func New() *Stream {
	return &Stream{subs: make(map[int]chan ReservationEvent)}
}

// Subscribe registers a subscriber and returns a channel which will receive
// events. The channel is closed when the provided context ends.
func (s *Stream) Subscribe(ctx context.Context) <-chan ReservationEvent {
	ch := make(chan ReservationEvent, 16)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

// Publish fan-outs the event to all subscribers.
func (s *Stream) Publish(evt ReservationEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- evt:
		default:
			// Drop when subscriber is slow to avoid blocking.
		}
	}
}
