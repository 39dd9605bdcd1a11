package guest

import (
	"time"

	"go-wedding/internal/pkg/platform/apperr"
)

var (
	ErrGuestNotFound      = apperr.New(apperr.ErrNotFound, "guest: not found")
	ErrInvitationNotFound = apperr.New(apperr.ErrNotFound, "guest: invitation not found")
)

// Invitation is the public view behind an invite link.
type Invitation struct {
	GuestName    string
	InvitedCount int
	RSVP         RSVP
	EventID      string
	EventTitle   string
	EventDate    *time.Time
	Venue        string
	Address      string
	ImageURL     string
}

// RSVPUpdate is the realtime frame published after an answer is stored.
type RSVPUpdate struct {
	Type      string     `json:"type"`
	EventID   string     `json:"event_id"`
	GuestID   string     `json:"guest_id"`
	GuestName string     `json:"guest_name"`
	Status    RSVPStatus `json:"status"`
	PartySize int        `json:"party_size"`
	Stats     RSVPStats  `json:"stats"`
}
