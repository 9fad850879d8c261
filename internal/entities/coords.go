package entities

import "math"

// Point is a position on the map.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Point) float64 {
	dX := a.X - b.X
	dY := a.Y - b.Y
	return math.Sqrt(dX*dX + dY*dY)
}

// InRange reports whether b falls within radius r of a.
//
// (cX - x)^2 + (cY - y)^2 <= r^2
func InRange(a, b Point, r float64) bool {
	dX := a.X - b.X
	dY := a.Y - b.Y
	return dX*dX+dY*dY <= r*r
}

func lerp(a, b Point, t float64) Point {
	return Point{
		X: (1-t)*a.X + t*b.X,
		Y: (1-t)*a.Y + t*b.Y,
	}
}

// nanMin returns the smaller of a and b, ignoring NaN operands.
func nanMin(a, b float64) float64 {
	if math.IsNaN(a) {
		return b
	}
	if math.IsNaN(b) {
		return a
	}
	return math.Min(a, b)
}
