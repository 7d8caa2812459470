// Package track loads race course definitions and turns them into sprites
// and a ready-to-run race session.
package track

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"racer/internal/race"
)

var (
	ErrInvalidTrack  = errors.New("invalid track definition")
	ErrTrackNotFound = errors.New("track file not found")
)

//go:embed track.schema.json
var schemaJSON []byte

//go:embed default_track.json
var defaultTrackJSON []byte

// Definition is the JSON description of a course.
type Definition struct {
	Name     string   `json:"name"`
	Seed     uint64   `json:"seed"`
	World    Size     `json:"world"`
	Road     Road     `json:"road"`
	Finish   Finish   `json:"finish"`
	Player   Driver   `json:"player"`
	Computer Computer `json:"computer"`
	Assets   Assets   `json:"assets"`
}

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Road struct {
	HalfWidth   float64 `json:"half_width"`
	BorderWidth float64 `json:"border_width"`
}

// Finish places the finish line. Its width spans the road.
type Finish struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Height int    `json:"height"`
	Entry  string `json:"entry"`
}

type Pose struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

type CarSpec struct {
	MaxVelocity      float64 `json:"max_velocity"`
	Acceleration     float64 `json:"acceleration"`
	RotationVelocity float64 `json:"rotation_velocity"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
}

type Driver struct {
	Start      Pose    `json:"start"`
	ResetAngle float64 `json:"reset_angle"`
	Car        CarSpec `json:"car"`
}

type Computer struct {
	Driver
	WaypointRadius float64      `json:"waypoint_radius"`
	Path           [][2]float64 `json:"path"`
}

// Assets tunes sprites loaded from disk; Scale is keyed by sprite name.
type Assets struct {
	Scale map[string]float64 `json:"scale"`
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	err := compiler.AddResource("track.schema.json", bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	schema, err := compiler.Compile("track.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return schema, nil
})

// Parse validates data against the track schema and decodes it.
func Parse(data []byte) (*Definition, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse JSON: %v", ErrInvalidTrack, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTrack, err)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidTrack, err)
	}
	if err := def.check(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTrack, err)
	}

	return &def, nil
}

// Load reads a definition from path. An empty path returns the built-in course.
func Load(path string) (*Definition, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrTrackNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read track %s: %w", path, err)
	}

	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return def, nil
}

// Default returns the embedded course.
func Default() (*Definition, error) {
	return Parse(defaultTrackJSON)
}

// check covers the constraints the schema cannot express.
func (d *Definition) check() error {
	inWorld := func(x, y float64) bool {
		return x >= 0 && y >= 0 && x < float64(d.World.Width) && y < float64(d.World.Height)
	}
	if !inWorld(d.Player.Start.X, d.Player.Start.Y) {
		return fmt.Errorf("player start (%g, %g) outside world", d.Player.Start.X, d.Player.Start.Y)
	}
	if !inWorld(d.Computer.Start.X, d.Computer.Start.Y) {
		return fmt.Errorf("computer start (%g, %g) outside world", d.Computer.Start.X, d.Computer.Start.Y)
	}
	if !inWorld(float64(d.Finish.X), float64(d.Finish.Y)) {
		return fmt.Errorf("finish (%d, %d) outside world", d.Finish.X, d.Finish.Y)
	}
	for i, p := range d.Computer.Path {
		if !inWorld(p[0], p[1]) {
			return fmt.Errorf("waypoint %d (%g, %g) outside world", i, p[0], p[1])
		}
	}
	return nil
}

// FinishWidth is the width of the finish sprite: the full road.
func (d *Definition) FinishWidth() int {
	return int(2 * d.Road.HalfWidth)
}

func (d *Definition) entrySide() race.Side {
	if d.Finish.Entry == "top" {
		return race.SideTop
	}
	return race.SideBottom
}

// Waypoints returns the computer path as race points.
func (d *Definition) Waypoints() []race.Point {
	out := make([]race.Point, len(d.Computer.Path))
	for i, p := range d.Computer.Path {
		out[i] = race.Point{X: p[0], Y: p[1]}
	}
	return out
}

func (p Pose) pose() race.Pose {
	return race.Pose{X: p.X, Y: p.Y, Angle: p.Angle}
}

func (c CarSpec) spec() race.CarSpec {
	return race.CarSpec{
		MaxVelocity:      c.MaxVelocity,
		Acceleration:     c.Acceleration,
		RotationVelocity: c.RotationVelocity,
		Width:            c.Width,
		Height:           c.Height,
	}
}
