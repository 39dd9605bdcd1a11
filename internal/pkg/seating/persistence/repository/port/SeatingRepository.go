package repository

import (
	"context"

	seating "go-wedding/internal/pkg/seating/application/domain"
)

// FitCheck decides whether a change is allowed given the table (as stored
// before the change) and the headcount already seated at it.
type FitCheck func(t seating.Table, occupied int) error

// SeatCheck decides whether a guest needing headcount seats fits at the table
// with occupied seats already taken.
type SeatCheck func(t seating.Table, occupied, headcount int) error

// SeatingRepository defines persistence operations for tables and seat assignments.
type SeatingRepository interface {
	CreateTable(ctx context.Context, t seating.Table) (seating.Table, error)
	GetTable(ctx context.Context, eventID, tableID string) (seating.Table, error)
	ListTables(ctx context.Context, eventID string) ([]seating.Table, error)
	// UpdateTable locks the table, runs check, then writes t.
	UpdateTable(ctx context.Context, t seating.Table, check FitCheck) (seating.Table, error)
	// DeleteTable removes the table; its guests become unseated.
	DeleteTable(ctx context.Context, eventID, tableID string) error

	// SeatedGuests lists the guests assigned to any table of the event.
	SeatedGuests(ctx context.Context, eventID string) ([]seating.SeatedGuest, error)
	// AssignGuest locks the table and the guest with their RSVP, runs check
	// with the headcount seated there (excluding this guest) and the seats the
	// guest needs, then moves the guest to the table.
	AssignGuest(ctx context.Context, eventID, guestID, tableID string, check SeatCheck) error
	UnassignGuest(ctx context.Context, eventID, guestID string) error
}
