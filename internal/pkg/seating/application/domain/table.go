package seating

import (
	"strings"
	"time"

	"go-wedding/internal/pkg/platform/apperr"
)

var (
	ErrTableNotFound = apperr.New(apperr.ErrNotFound, "seating: table not found")
	ErrGuestNotFound = apperr.New(apperr.ErrNotFound, "seating: guest not found in this event")
	ErrTableFull     = apperr.New(apperr.ErrConflict, "seating: table does not have enough free seats")
	ErrBelowSeated   = apperr.New(apperr.ErrConflict, "seating: capacity is below the number of seated guests")
)

type Shape string

const (
	ShapeRound     Shape = "round"
	ShapeRectangle Shape = "rectangle"
	ShapeSquare    Shape = "square"
)

func (s Shape) Valid() bool {
	switch s {
	case ShapeRound, ShapeRectangle, ShapeSquare:
		return true
	}
	return false
}

const (
	MinCapacity = 1
	MaxCapacity = 30
)

// Table is a table on the floor plan. X and Y locate its centre; Rotation is
// in degrees, clockwise.
type Table struct {
	ID        string    `db:"id"`
	EventID   string    `db:"event_id"`
	Name      string    `db:"name"`
	Shape     Shape     `db:"shape"`
	Capacity  int       `db:"capacity"`
	X         float64   `db:"x"`
	Y         float64   `db:"y"`
	Rotation  float64   `db:"rotation"`
	CreatedAt time.Time `db:"created_at"`
}

// Validate normalizes the name and checks shape and capacity.
func (t *Table) Validate() error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return apperr.Validation("table name is required")
	}
	if !t.Shape.Valid() {
		return apperr.Validationf("unknown table shape %q", t.Shape)
	}
	if t.Capacity < MinCapacity || t.Capacity > MaxCapacity {
		return apperr.Validationf("capacity must be between %d and %d", MinCapacity, MaxCapacity)
	}
	return nil
}

// SeatedGuest is a guest assigned to a table with the seats they take.
type SeatedGuest struct {
	GuestID   string `json:"guest_id"`
	Name      string `json:"name"`
	TableID   string `json:"table_id"`
	Headcount int    `json:"headcount"`
}

// CheckFit reports whether a party of headcount fits next to the occupied seats.
func CheckFit(t Table, occupied, headcount int) error {
	if occupied+headcount > t.Capacity {
		return ErrTableFull
	}
	return nil
}

// CheckCapacity reports whether a new capacity still holds everyone seated.
func CheckCapacity(capacity, occupied int) error {
	if capacity < occupied {
		return ErrBelowSeated
	}
	return nil
}

// Layout is a table with its computed seats and current guests.
type Layout struct {
	Table
	Width    float64
	Height   float64
	Seats    []Seat
	Guests   []SeatedGuest
	Occupied int
}

// NewLayout computes seats and hands them out to guests in order, one seat
// per person.
func NewLayout(t Table, guests []SeatedGuest) Layout {
	w, h := Dimensions(t.Shape, t.Capacity)
	seats := Seats(t)
	l := Layout{Table: t, Width: w, Height: h, Seats: seats, Guests: guests}
	next := 0
	for _, g := range guests {
		l.Occupied += g.Headcount
		for i := 0; i < g.Headcount && next < len(seats); i++ {
			seats[next].GuestID = g.GuestID
			next++
		}
	}
	return l
}
