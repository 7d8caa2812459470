package race

import "math"

// DefaultWaypointRadius is how close the car centre must get to a waypoint
// before the cursor moves on.
const DefaultWaypointRadius = 10.0

// ComputerCar drives a Car along a scripted Path at constant speed.
type ComputerCar struct {
	*Car
	Path           Path
	WaypointRadius float64

	cursor int
}

func NewComputerCar(car *Car, path Path, radius float64) *ComputerCar {
	if radius <= 0 {
		radius = DefaultWaypointRadius
	}
	car.Velocity = car.MaxVelocity
	return &ComputerCar{Car: car, Path: path, WaypointRadius: radius}
}

// Cursor is the index of the waypoint being steered toward.
func (cc *ComputerCar) Cursor() int { return cc.cursor }

// Done reports whether every waypoint has been reached. A finished (or
// empty-path) car stays where it is.
func (cc *ComputerCar) Done() bool { return cc.cursor >= cc.Path.Len() }

// Bearing returns the heading in degrees that points the car centre at
// target, using atan(dx/dy) with a half-turn correction for targets below.
func (cc *ComputerCar) Bearing(target Point) float64 {
	cx, cy := cc.Center()
	dx := target.X - cx
	dy := target.Y - cy
	var rad float64
	switch {
	case dy == 0 && dx > 0:
		rad = -math.Pi / 2
	case dy == 0:
		rad = math.Pi / 2
	default:
		rad = math.Atan(dx / dy)
	}
	if dy > 0 {
		rad += math.Pi
	}
	return rad / degToRad
}

// Update steers toward the current waypoint, advances the cursor once the
// waypoint is within reach and moves at max velocity. It reports whether a
// waypoint was reached this tick.
func (cc *ComputerCar) Update() bool {
	if cc.Done() {
		return false
	}
	target := cc.Path.At(cc.cursor)
	cc.steer(target)

	reached := false
	cx, cy := cc.Center()
	if (Point{X: cx, Y: cy}).Dist(target) <= cc.WaypointRadius {
		cc.cursor++
		reached = true
	}
	cc.Velocity = cc.MaxVelocity
	cc.Move()
	return reached
}

// steer turns toward target by at most the rotation increment.
func (cc *ComputerCar) steer(target Point) {
	diff := angDiff(cc.Angle, cc.Bearing(target))
	step := math.Min(cc.RotationVelocity, math.Abs(diff))
	if diff < 0 {
		step = -step
	}
	cc.Angle += step
}

// Reset returns the car to its start pose at cruising speed and rewinds the path.
func (cc *ComputerCar) Reset() {
	cc.Car.Reset()
	cc.cursor = 0
	cc.Velocity = cc.MaxVelocity
}
