package events

import (
	"context"
	"testing"
	"time"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventAppointmentBooked, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})
	dispatcher.Subscribe(EventSubjectDeleted, func(_ context.Context, event Event) error {
		t.Fatalf("handler for unrelated event type invoked")
		return nil
	})

	event := Event{
		ID:        "evt-1",
		Type:      EventAppointmentBooked,
		Timestamp: time.Now(),
		Payload:   AppointmentBookedPayload{AppointmentID: 7, ResourceID: 1},
	}
	if err := dispatcher.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(received) != 1 || received[0].ID != "evt-1" {
		t.Fatalf("expected one delivery, got %v", received)
	}
}
