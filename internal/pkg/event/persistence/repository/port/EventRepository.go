package repository

import (
	"context"

	event "go-wedding/internal/pkg/event/application/domain"
)

// EventRepository defines persistence operations for events.
// Missing rows are reported as event.ErrEventNotFound.
type EventRepository interface {
	Create(ctx context.Context, e event.Event) (event.Event, error)
	Get(ctx context.Context, id string) (event.Event, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]event.Event, error)
	Update(ctx context.Context, e event.Event) (event.Event, error)
	SetInvitationImage(ctx context.Context, id, url, key string) error
	WorkspaceOf(ctx context.Context, id string) (string, error)
}
