package notification

import (
	"context"
	"errors"
	"log"

	"smart-hotel/models"
)

const (
	EventRoomStatusChanged = "room_status_changed"
	EventLockStatusChanged = "lock_status_changed"
)

// Event is the wire envelope shared by every sink.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

func RoomStatusChanged(room models.Room) Event {
	return Event{Event: EventRoomStatusChanged, Data: room}
}

type Service interface {
	Publish(ctx context.Context, evt Event) error
}

// Multi fans an event out to every sink. Nil sinks are skipped and one
// failing sink does not stop the rest.
type Multi []Service

func (m Multi) Publish(ctx context.Context, evt Event) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Publish(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Notify publishes best effort: delivery failures are logged, never returned.
func Notify(ctx context.Context, s Service, evt Event) {
	if s == nil {
		return
	}
	if err := s.Publish(ctx, evt); err != nil {
		log.Printf("⚠️ notify %s: %v", evt.Event, err)
	}
}
