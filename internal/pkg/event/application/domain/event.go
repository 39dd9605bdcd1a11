package event

import (
	"strings"
	"time"
	"unicode/utf8"

	"go-wedding/internal/pkg/platform/apperr"
)

var ErrEventNotFound = apperr.New(apperr.ErrNotFound, "event: not found")

const maxTitleLength = 200

// Event is a wedding (or any celebration) planned inside a workspace.
type Event struct {
	ID                 string     `db:"id"`
	WorkspaceID        string     `db:"workspace_id"`
	Title              string     `db:"title"`
	EventDate          *time.Time `db:"event_date"`
	Venue              string     `db:"venue"`
	Address            string     `db:"address"`
	BudgetCents        int64      `db:"budget_cents"`
	Notes              string     `db:"notes"`
	InvitationImageURL string     `db:"invitation_image_url"`
	InvitationImageKey string     `db:"invitation_image_key"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Title       *string
	EventDate   *time.Time
	ClearDate   bool
	Venue       *string
	Address     *string
	BudgetCents *int64
	Notes       *string
}

// Apply returns a copy of e with p applied.
func (p Patch) Apply(e Event) Event {
	if p.Title != nil {
		e.Title = strings.TrimSpace(*p.Title)
	}
	if p.ClearDate {
		e.EventDate = nil
	} else if p.EventDate != nil {
		d := p.EventDate.UTC()
		e.EventDate = &d
	}
	if p.Venue != nil {
		e.Venue = strings.TrimSpace(*p.Venue)
	}
	if p.Address != nil {
		e.Address = strings.TrimSpace(*p.Address)
	}
	if p.BudgetCents != nil {
		e.BudgetCents = *p.BudgetCents
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	return e
}

// Validate checks the invariants shared by create and update.
func (e Event) Validate() error {
	if e.WorkspaceID == "" {
		return apperr.Validation("workspace is required")
	}
	if strings.TrimSpace(e.Title) == "" {
		return apperr.Validation("title is required")
	}
	if utf8.RuneCountInString(e.Title) > maxTitleLength {
		return apperr.Validationf("title must be at most %d characters", maxTitleLength)
	}
	if e.BudgetCents < 0 {
		return apperr.Validation("budget must not be negative")
	}
	return nil
}

// DateLabel formats the event date for guest-facing text.
func (e Event) DateLabel() string {
	if e.EventDate == nil {
		return ""
	}
	return e.EventDate.Format("Monday, January 2, 2006")
}
