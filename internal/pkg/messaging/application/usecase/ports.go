package usecase

import (
	"context"
	"time"

	event "go-wedding/internal/pkg/event/application/domain"
	guest "go-wedding/internal/pkg/guest/application/domain"
	guestusecase "go-wedding/internal/pkg/guest/application/usecase"
)

// EventReader loads the event a campaign belongs to.
type EventReader interface {
	Get(ctx context.Context, id string) (event.Event, error)
}

// GuestLister resolves a campaign audience.
type GuestLister interface {
	List(ctx context.Context, eventID string, status *guest.RSVPStatus) ([]guest.GuestView, error)
}

// Scheduler enqueues a job for processing at the given time; zero means now.
type Scheduler interface {
	Schedule(ctx context.Context, jobID string, at time.Time) error
}

// RSVPRecorder stores an RSVP on a guest's behalf.
type RSVPRecorder interface {
	Execute(ctx context.Context, in guestusecase.SetRSVPInput) (*guest.GuestView, error)
}
