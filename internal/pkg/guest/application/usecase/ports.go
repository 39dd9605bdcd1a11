package usecase

import (
	"context"

	event "go-wedding/internal/pkg/event/application/domain"
)

// EventReader loads the event a guest belongs to.
type EventReader interface {
	Get(ctx context.Context, id string) (event.Event, error)
}

// Publisher fans a payload out to everyone watching an event.
type Publisher interface {
	Publish(eventID string, payload []byte) int
}
