package repository

import (
	"context"

	guest "go-wedding/internal/pkg/guest/application/domain"
)

// GuestRepository defines persistence operations for guests and their RSVPs.
// Lookups scoped by event return guest.ErrGuestNotFound when the guest
// belongs to another event.
type GuestRepository interface {
	// Create inserts the guests with a pending RSVP each, in one transaction.
	Create(ctx context.Context, guests []guest.Guest) ([]guest.Guest, error)
	Get(ctx context.Context, eventID, guestID string) (guest.GuestView, error)
	// List returns the event's guests ordered by name. A nil status returns all.
	List(ctx context.Context, eventID string, status *guest.RSVPStatus) ([]guest.GuestView, error)
	Update(ctx context.Context, g guest.Guest) (guest.Guest, error)
	Delete(ctx context.Context, eventID, guestID string) error

	FindByToken(ctx context.Context, token string) (guest.GuestView, error)
	SaveRSVP(ctx context.Context, r guest.RSVP) error
}
