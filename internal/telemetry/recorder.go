// Package telemetry records per-tick car state to CSV.
package telemetry

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"racer/internal/race"
)

var ErrRecorderClosed = errors.New("recorder closed")

// Frame is one car's state at the end of a tick.
type Frame struct {
	Tick     uint64  `csv:"tick"`
	Car      string  `csv:"car"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Angle    float64 `csv:"angle"`
	Velocity float64 `csv:"velocity"`
	Outcome  string  `csv:"outcome"`
	Waypoint int     `csv:"waypoint"`
}

// Recorder buffers frames and writes them as CSV on Close.
type Recorder struct {
	w      io.Writer
	closer io.Closer
	frames []Frame
	closed bool
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

// Create opens path for writing and returns a recorder that owns the file.
func Create(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating telemetry file: %w", err)
	}

	return &Recorder{w: f, closer: f}, nil
}

func (r *Recorder) Record(f Frame) error {
	if r.closed {
		return ErrRecorderClosed
	}
	r.frames = append(r.frames, f)

	return nil
}

// Capture records the player and, when present, the computer car after a tick.
// The player row carries the tick outcome; the computer row its waypoint cursor.
func (r *Recorder) Capture(s *race.Session, outcome race.Outcome) error {
	p := s.Player
	err := r.Record(Frame{
		Tick: s.Ticks(), Car: p.Name,
		X: p.X, Y: p.Y, Angle: p.Angle, Velocity: p.Velocity,
		Outcome:  outcome.String(),
		Waypoint: -1,
	})
	if err != nil || s.Computer == nil {
		return err
	}

	c := s.Computer
	return r.Record(Frame{
		Tick: s.Ticks(), Car: c.Name,
		X: c.X, Y: c.Y, Angle: c.Angle, Velocity: c.Velocity,
		Waypoint: c.Cursor(),
	})
}

func (r *Recorder) Len() int { return len(r.frames) }

// Close flushes every buffered frame. Calling it twice is an error.
func (r *Recorder) Close() error {
	if r.closed {
		return ErrRecorderClosed
	}
	r.closed = true

	err := gocsv.Marshal(&r.frames, r.w)
	if err != nil {
		err = fmt.Errorf("writing CSV: %w", err)
	}

	if r.closer != nil {
		if cerr := r.closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing telemetry file: %w", cerr)
		}
	}

	return err
}

// ReadFrames parses a CSV produced by a Recorder.
func ReadFrames(rd io.Reader) ([]Frame, error) {
	frames := []Frame{}

	err := gocsv.Unmarshal(rd, &frames)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	return frames, nil
}
