package guest

import (
	"strings"
	"time"
	"unicode/utf8"

	"go-wedding/internal/pkg/platform/apperr"
)

type RSVPStatus string

const (
	StatusPending  RSVPStatus = "pending"
	StatusAccepted RSVPStatus = "accepted"
	StatusDeclined RSVPStatus = "declined"
)

func (s RSVPStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

const maxNoteLength = 1000

// RSVP is a guest's answer. Every guest has exactly one, pending until answered.
type RSVP struct {
	GuestID     string     `db:"guest_id"`
	Status      RSVPStatus `db:"status"`
	PartySize   int        `db:"party_size"`
	Note        string     `db:"note"`
	RespondedAt *time.Time `db:"responded_at"`
}

// Answer is an RSVP submission.
type Answer struct {
	Status    RSVPStatus
	PartySize int
	Note      string
}

// Resolve validates an answer against the invited count and returns the RSVP
// to store. Declines force the party size to zero; pending is not an answer.
func (a Answer) Resolve(g Guest, now time.Time) (RSVP, error) {
	note := strings.TrimSpace(a.Note)
	if utf8.RuneCountInString(note) > maxNoteLength {
		return RSVP{}, apperr.Validationf("note must be at most %d characters", maxNoteLength)
	}
	r := RSVP{GuestID: g.ID, Status: a.Status, Note: note, RespondedAt: &now}
	switch a.Status {
	case StatusAccepted:
		if a.PartySize < 1 || a.PartySize > g.InvitedCount {
			return RSVP{}, apperr.Validationf("party size must be between 1 and %d", g.InvitedCount)
		}
		r.PartySize = a.PartySize
	case StatusDeclined:
		r.PartySize = 0
	default:
		return RSVP{}, apperr.Validation("status must be accepted or declined")
	}
	return r, nil
}

// RSVPStats summarizes an event's answers. Attending counts people, the other
// fields count invitations; Invited is the total invited headcount.
type RSVPStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Accepted  int `json:"accepted"`
	Declined  int `json:"declined"`
	Attending int `json:"attending"`
	Invited   int `json:"invited"`
}

// Tally computes stats over a guest list.
func Tally(guests []GuestView) RSVPStats {
	var s RSVPStats
	for _, g := range guests {
		s.Total++
		s.Invited += g.InvitedCount
		switch g.RSVP.Status {
		case StatusAccepted:
			s.Accepted++
			s.Attending += g.RSVP.PartySize
		case StatusDeclined:
			s.Declined++
		default:
			s.Pending++
		}
	}
	return s
}
