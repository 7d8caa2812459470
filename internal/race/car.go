package race

import (
	"image"
	"math"
)

// Throttle selects the direction of an Accelerate call.
type Throttle int

const (
	Forward Throttle = iota
	Backward
)

// Turn selects the direction of a Rotate call.
type Turn int

const (
	TurnLeft Turn = iota
	TurnRight
)

// CarSpec holds the per-car tuning values.
type CarSpec struct {
	MaxVelocity      float64 // pixels per tick
	Acceleration     float64 // velocity change per throttle tick
	RotationVelocity float64 // degrees per steering tick
	Width, Height    int     // sprite size in pixels
}

// Pose is a position (sprite top-left, screen pixels) and a heading in degrees.
// Heading 0 faces -y; positive headings turn counter-clockwise on screen.
type Pose struct {
	X, Y  float64
	Angle float64
}

type Car struct {
	Name string

	X, Y     float64
	Angle    float64 // degrees, unbounded
	Velocity float64

	MaxVelocity      float64
	Acceleration     float64
	RotationVelocity float64
	Width, Height    int

	Start      Pose
	ResetAngle float64
}

func NewCar(name string, spec CarSpec, start Pose, resetAngle float64) *Car {
	return &Car{
		Name:             name,
		X:                start.X,
		Y:                start.Y,
		Angle:            start.Angle,
		MaxVelocity:      spec.MaxVelocity,
		Acceleration:     spec.Acceleration,
		RotationVelocity: spec.RotationVelocity,
		Width:            spec.Width,
		Height:           spec.Height,
		Start:            start,
		ResetAngle:       resetAngle,
	}
}

// MaxReverseVelocity is the magnitude cap while reversing.
func (c *Car) MaxReverseVelocity() float64 {
	return c.MaxVelocity / 2
}

// Center returns the centre of the car sprite.
func (c *Car) Center() (float64, float64) {
	return c.X + float64(c.Width)*0.5, c.Y + float64(c.Height)*0.5
}

func (c *Car) Rotate(t Turn) {
	switch t {
	case TurnLeft:
		c.Angle += c.RotationVelocity
	case TurnRight:
		c.Angle -= c.RotationVelocity
	}
}

func (c *Car) Accelerate(t Throttle) {
	switch t {
	case Forward:
		c.Velocity += c.Acceleration
	case Backward:
		c.Velocity -= c.Acceleration
	}
	c.Velocity = clampF(c.Velocity, -c.MaxReverseVelocity(), c.MaxVelocity)
	c.Move()
}

// Decelerate is the idle-throttle step: velocity decays toward zero by half
// the acceleration increment and never changes sign.
func (c *Car) Decelerate() {
	c.Velocity = approach(c.Velocity, 0, c.Acceleration/2)
	c.Move()
}

// Move advances the position along the current heading. Every
// position change goes through here.
func (c *Car) Move() {
	rad := normDeg(c.Angle) * degToRad
	c.X -= math.Sin(rad) * c.Velocity
	c.Y -= math.Cos(rad) * c.Velocity
}

// Bounce reflects the direction of travel and pushes the car back out.
func (c *Car) Bounce() {
	c.Velocity = -c.Velocity
	c.Move()
}

func (c *Car) Reset() {
	c.X, c.Y = c.Start.X, c.Start.Y
	c.Angle = c.ResetAngle
	c.Velocity = 0
}

// Collide tests the car's sprite mask, rotated to its heading, against an
// obstacle mask placed at the given offset. The returned point is in the
// obstacle's local space.
func (c *Car) Collide(sprite *SpriteMask, obstacle *Mask, at image.Point) (image.Point, bool) {
	m := sprite.At(c.Angle)
	cx, cy := c.Center()
	off := image.Point{
		X: int(math.Floor(cx-float64(m.W)*0.5)) - at.X,
		Y: int(math.Floor(cy-float64(m.H)*0.5)) - at.Y,
	}
	return Overlap(obstacle, m, off)
}
