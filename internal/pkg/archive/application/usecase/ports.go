package usecase

import (
	"context"

	event "go-wedding/internal/pkg/event/application/domain"
	guest "go-wedding/internal/pkg/guest/application/domain"
	messaging "go-wedding/internal/pkg/messaging/application/domain"
	seating "go-wedding/internal/pkg/seating/application/domain"
	supplier "go-wedding/internal/pkg/supplier/application/domain"
)

// The snapshot is read through each context's own repository.

type EventReader interface {
	Get(ctx context.Context, id string) (event.Event, error)
}

type GuestLister interface {
	List(ctx context.Context, eventID string, status *guest.RSVPStatus) ([]guest.GuestView, error)
}

type TableLister interface {
	ListTables(ctx context.Context, eventID string) ([]seating.Table, error)
}

type SupplierLister interface {
	List(ctx context.Context, eventID string) ([]supplier.Supplier, error)
}

type MessagingExporter interface {
	ListJobs(ctx context.Context, eventID string) ([]messaging.Job, error)
	EventMessages(ctx context.Context, eventID string) ([]messaging.Message, error)
	EventCosts(ctx context.Context, eventID string) ([]messaging.CostLog, error)
}

// Rooms disconnects dashboards watching an event.
type Rooms interface {
	CloseRoom(eventID string)
}

// Sources groups the readers a snapshot is built from.
type Sources struct {
	Events    EventReader
	Guests    GuestLister
	Tables    TableLister
	Suppliers SupplierLister
	Messaging MessagingExporter
}
