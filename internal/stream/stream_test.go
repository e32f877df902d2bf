package stream

import (
	"context"
	"testing"
	"time"
)

func TestPublishFanOut(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := s.Subscribe(ctx)
	b := s.Subscribe(ctx)

	evt := ReservationEvent{ReservationID: "res-1", Previous: "pending", Next: "approved", Timestamp: time.Now().UTC()}
	s.Publish(evt)

	for name, ch := range map[string]<-chan ReservationEvent{"a": a, "b": b} {
		select {
		case got := <-ch:
			if got.ReservationID != "res-1" || got.Next != "approved" {
				t.Fatalf("subscriber %s got %+v", name, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %s received nothing", name)
		}
	}
}

func TestSubscribeClosesOnContextEnd(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Subscribe(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected closed channel, got event")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after context cancel")
	}

	// Publishing after unsubscribe must not panic.
	s.Publish(ReservationEvent{ReservationID: "res-2"})
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = s.Subscribe(ctx) // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			s.Publish(ReservationEvent{ReservationID: "res-3"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on slow subscriber")
	}
}
