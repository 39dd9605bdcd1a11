package seating

import "math"

// Floor-plan units: one chair needs seatPitch along a table edge and sits
// chairOffset outside it.
const (
	seatPitch      = 60.0
	chairOffset    = 30.0
	minRoundRadius = 45.0
	minRectWidth   = 120.0
	rectDepth      = 80.0
	minSquareSide  = 90.0
)

// Seat is one chair. Angle is the direction the chair faces, in degrees
// clockwise from the positive x axis, so it always points at the table.
type Seat struct {
	Index   int     `json:"index"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Angle   float64 `json:"angle"`
	GuestID string  `json:"guest_id,omitempty"`
}

// Dimensions returns the table's footprint: the diameter twice for round
// tables, width and depth otherwise.
func Dimensions(shape Shape, capacity int) (w, h float64) {
	switch shape {
	case ShapeRound:
		d := 2 * roundRadius(capacity)
		return d, d
	case ShapeRectangle:
		return math.Max(minRectWidth, float64(ceilHalf(capacity))*seatPitch), rectDepth
	case ShapeSquare:
		s := squareSide(capacity)
		return s, s
	}
	return 0, 0
}

func roundRadius(capacity int) float64 {
	return math.Max(minRoundRadius, float64(capacity)*seatPitch/(2*math.Pi))
}

func squareSide(capacity int) float64 {
	perSide := (capacity + 3) / 4
	return math.Max(minSquareSide, float64(perSide)*seatPitch)
}

func ceilHalf(n int) int { return (n + 1) / 2 }

// Seats places the table's chairs in floor-plan coordinates. Positions are
// computed around the origin, rotated by the table rotation, then moved to
// the table centre. Screen convention: y grows downward, so clockwise means
// increasing angle.
func Seats(t Table) []Seat {
	if t.Capacity <= 0 {
		return []Seat{}
	}
	var local []Seat
	switch t.Shape {
	case ShapeRound:
		local = roundSeats(t.Capacity)
	case ShapeRectangle:
		local = rectangleSeats(t.Capacity)
	case ShapeSquare:
		local = squareSeats(t.Capacity)
	default:
		return []Seat{}
	}

	rad := t.Rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)
	for i := range local {
		x, y := local[i].X, local[i].Y
		local[i].X = round2(x*cos - y*sin + t.X)
		local[i].Y = round2(x*sin + y*cos + t.Y)
		local[i].Angle = round2(normalizeDegrees(local[i].Angle + t.Rotation))
	}
	return local
}

// roundSeats spaces chairs evenly on a circle, the first at the top.
func roundSeats(n int) []Seat {
	r := roundRadius(n) + chairOffset
	out := make([]Seat, n)
	for i := 0; i < n; i++ {
		deg := -90 + float64(i)*360/float64(n)
		rad := deg * math.Pi / 180
		out[i] = Seat{Index: i, X: r * math.Cos(rad), Y: r * math.Sin(rad), Angle: deg + 180}
	}
	return out
}

// rectangleSeats puts ceil(n/2) chairs along the top edge and the rest along
// the bottom edge.
func rectangleSeats(n int) []Seat {
	w, h := Dimensions(ShapeRectangle, n)
	top, bottom := ceilHalf(n), n/2
	out := make([]Seat, 0, n)
	for i := 0; i < top; i++ {
		out = append(out, Seat{Index: len(out), X: edgeOffset(w, i, top), Y: -(h/2 + chairOffset), Angle: 90})
	}
	for i := 0; i < bottom; i++ {
		out = append(out, Seat{Index: len(out), X: edgeOffset(w, i, bottom), Y: h/2 + chairOffset, Angle: 270})
	}
	return out
}

// squareSeats deals chairs round-robin to the top, right, bottom and left
// sides and spaces them evenly along each side, walking clockwise.
func squareSeats(n int) []Seat {
	s := squareSide(n)
	var perSide [4]int
	for i := 0; i < n; i++ {
		perSide[i%4]++
	}
	var slot [4]int
	d := s/2 + chairOffset
	out := make([]Seat, n)
	for i := 0; i < n; i++ {
		side := i % 4
		k := perSide[side]
		pos := edgeOffset(s, slot[side], k)
		slot[side]++
		switch side {
		case 0: // top, left to right
			out[i] = Seat{Index: i, X: pos, Y: -d, Angle: 90}
		case 1: // right, top to bottom
			out[i] = Seat{Index: i, X: d, Y: pos, Angle: 180}
		case 2: // bottom, right to left
			out[i] = Seat{Index: i, X: -pos, Y: d, Angle: 270}
		case 3: // left, bottom to top
			out[i] = Seat{Index: i, X: -d, Y: -pos, Angle: 0}
		}
	}
	return out
}

// edgeOffset is the centre of slot i of k equal slots along an edge of length l.
func edgeOffset(l float64, i, k int) float64 {
	return -l/2 + (float64(i)+0.5)*l/float64(k)
}

func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}
