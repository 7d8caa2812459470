package race

import "math"

// Point is a waypoint in screen pixels.
type Point struct {
	X, Y float64
}

func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Path is an ordered, immutable list of waypoints.
type Path struct {
	points []Point
}

func NewPath(points []Point) Path {
	p := make([]Point, len(points))
	copy(p, points)
	return Path{points: p}
}

func (p Path) Len() int { return len(p.points) }

func (p Path) At(i int) Point { return p.points[i] }

// Points returns a copy of the waypoints.
func (p Path) Points() []Point {
	out := make([]Point, len(p.points))
	copy(out, p.points)
	return out
}
