package guest

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"go-wedding/internal/pkg/platform/apperr"
	"go-wedding/internal/pkg/platform/phone"
)

const (
	maxNameLength  = 200
	maxInvitedSize = 50
)

// Guest is one invitation: a person or household invited to an event.
type Guest struct {
	ID           string    `db:"id"`
	EventID      string    `db:"event_id"`
	Name         string    `db:"name"`
	Phone        string    `db:"phone"`
	Group        string    `db:"guest_group"`
	InvitedCount int       `db:"invited_count"`
	InviteToken  string    `db:"invite_token"`
	TableID      *string   `db:"table_id"`
	Notes        string    `db:"notes"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// GuestView is a guest together with its RSVP.
type GuestView struct {
	Guest
	RSVP RSVP
}

// Headcount is the number of seats the guest occupies: the accepted party
// size once known, otherwise the invited count.
func (g GuestView) Headcount() int {
	if g.RSVP.Status == StatusAccepted && g.RSVP.PartySize > 0 {
		return g.RSVP.PartySize
	}
	return g.InvitedCount
}

// Draft is the user-supplied part of a guest.
type Draft struct {
	Name         string
	Phone        string
	Group        string
	InvitedCount int
	Notes        string
}

// Normalize trims fields and converts the phone to E.164. A zero invited count
// defaults to one.
func (d Draft) Normalize() (Draft, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Group = strings.TrimSpace(d.Group)
	if d.Name == "" {
		return d, apperr.Validation("name is required")
	}
	if utf8.RuneCountInString(d.Name) > maxNameLength {
		return d, apperr.Validationf("name must be at most %d characters", maxNameLength)
	}
	if d.InvitedCount == 0 {
		d.InvitedCount = 1
	}
	if d.InvitedCount < 1 || d.InvitedCount > maxInvitedSize {
		return d, apperr.Validationf("invited count must be between 1 and %d", maxInvitedSize)
	}
	if strings.TrimSpace(d.Phone) != "" {
		p, ok := phone.Parse(d.Phone)
		if !ok {
			return d, apperr.Validationf("phone %q is not a valid international number", d.Phone)
		}
		d.Phone = p
	} else {
		d.Phone = ""
	}
	return d, nil
}

// NewGuest builds a guest with a fresh invite token.
func NewGuest(eventID string, d Draft, now time.Time) Guest {
	return Guest{
		EventID:      eventID,
		Name:         d.Name,
		Phone:        d.Phone,
		Group:        d.Group,
		InvitedCount: d.InvitedCount,
		InviteToken:  uuid.NewString(),
		Notes:        d.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Patch is a partial guest update.
type Patch struct {
	Name         *string
	Phone        *string
	Group        *string
	InvitedCount *int
	Notes        *string
}

// Apply merges p into g and re-validates the result.
func (p Patch) Apply(g Guest) (Guest, error) {
	d := Draft{Name: g.Name, Phone: g.Phone, Group: g.Group, InvitedCount: g.InvitedCount, Notes: g.Notes}
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Phone != nil {
		d.Phone = *p.Phone
	}
	if p.Group != nil {
		d.Group = *p.Group
	}
	if p.InvitedCount != nil {
		if *p.InvitedCount < 1 {
			return g, apperr.Validation("invited count must be at least 1")
		}
		d.InvitedCount = *p.InvitedCount
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	d, err := d.Normalize()
	if err != nil {
		return g, err
	}
	g.Name, g.Phone, g.Group, g.InvitedCount, g.Notes = d.Name, d.Phone, d.Group, d.InvitedCount, d.Notes
	return g, nil
}
