package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-wedding/internal/pkg/platform/apperr"
)

func xy(s []Seat) [][2]float64 {
	out := make([][2]float64, len(s))
	for i, seat := range s {
		out[i] = [2]float64{seat.X, seat.Y}
	}
	return out
}

func TestRoundSeatsStartAtTopClockwise(t *testing.T) {
	seats := Seats(Table{Shape: ShapeRound, Capacity: 4})
	require.Len(t, seats, 4)
	assert.Equal(t, [][2]float64{{0, -75}, {75, 0}, {0, 75}, {-75, 0}}, xy(seats))
	assert.Equal(t, []float64{90, 180, 270, 0}, []float64{seats[0].Angle, seats[1].Angle, seats[2].Angle, seats[3].Angle})
	for i, s := range seats {
		assert.Equal(t, i, s.Index)
	}
}

func TestRoundRadiusGrowsWithCapacity(t *testing.T) {
	small, _ := Dimensions(ShapeRound, 4)
	large, _ := Dimensions(ShapeRound, 12)
	assert.Equal(t, 90.0, small)
	assert.InDelta(t, 229.18, large, 0.01)
}

func TestRectangleSeatsSplitTopAndBottom(t *testing.T) {
	seats := Seats(Table{Shape: ShapeRectangle, Capacity: 5})
	assert.Equal(t, [][2]float64{
		{-60, -70}, {0, -70}, {60, -70},
		{-45, 70}, {45, 70},
	}, xy(seats))
	assert.Equal(t, 90.0, seats[0].Angle)
	assert.Equal(t, 270.0, seats[4].Angle)
}

func TestSquareSeatsRoundRobin(t *testing.T) {
	seats := Seats(Table{Shape: ShapeSquare, Capacity: 6})
	assert.Equal(t, [][2]float64{
		{-30, -90}, {90, -30}, {0, 90}, {-90, 0}, {30, -90}, {90, 30},
	}, xy(seats))
	assert.Equal(t, []float64{90, 180, 270, 0, 90, 180}, []float64{
		seats[0].Angle, seats[1].Angle, seats[2].Angle, seats[3].Angle, seats[4].Angle, seats[5].Angle,
	})
}

func TestSeatsRotateThenTranslate(t *testing.T) {
	seats := Seats(Table{Shape: ShapeRound, Capacity: 4, X: 100, Y: 200, Rotation: 90})
	assert.Equal(t, [][2]float64{{175, 200}, {100, 275}, {25, 200}, {100, 125}}, xy(seats))
	assert.Equal(t, 180.0, seats[0].Angle)
}

func TestSeatsRoundToTwoDecimals(t *testing.T) {
	seats := Seats(Table{Shape: ShapeRound, Capacity: 3})
	// 75 * cos(30deg) = 64.951905...
	assert.Equal(t, 64.95, seats[1].X)
	assert.Equal(t, 37.5, seats[1].Y)
}

func TestZeroCapacityHasNoSeats(t *testing.T) {
	assert.Empty(t, Seats(Table{Shape: ShapeRound}))
	assert.Empty(t, Seats(Table{Shape: "hexagon", Capacity: 4}))
}

func TestNewLayoutAssignsSeatsPerPerson(t *testing.T) {
	table := Table{ID: "t1", Shape: ShapeRound, Capacity: 4}
	l := NewLayout(table, []SeatedGuest{
		{GuestID: "a", Headcount: 2},
		{GuestID: "b", Headcount: 1},
	})
	assert.Equal(t, 3, l.Occupied)
	assert.Equal(t, []string{"a", "a", "b", ""}, []string{l.Seats[0].GuestID, l.Seats[1].GuestID, l.Seats[2].GuestID, l.Seats[3].GuestID})
}

func TestTableValidateAndFit(t *testing.T) {
	tbl := Table{Name: " Family ", Shape: ShapeSquare, Capacity: 8}
	require.NoError(t, tbl.Validate())
	assert.Equal(t, "Family", tbl.Name)

	bad := Table{Name: "x", Shape: ShapeRound, Capacity: 31}
	assert.ErrorIs(t, bad.Validate(), apperr.ErrValidation)
	bad = Table{Name: "x", Shape: "oval", Capacity: 4}
	assert.ErrorIs(t, bad.Validate(), apperr.ErrValidation)

	assert.NoError(t, CheckFit(tbl, 6, 2))
	assert.ErrorIs(t, CheckFit(tbl, 7, 2), apperr.ErrConflict)
	assert.ErrorIs(t, CheckCapacity(3, 4), apperr.ErrConflict)
}
