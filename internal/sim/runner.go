// Package sim builds a race from a track file and drives it tick by tick,
// with or without a window attached.
package sim

import (
	"fmt"

	"github.com/rs/zerolog"

	"racer/internal/logging"
	"racer/internal/race"
	"racer/internal/telemetry"
	"racer/internal/track"
)

type Options struct {
	TrackPath  string
	AssetsDir  string
	RecordPath string

	Log    zerolog.Logger
	Notify *logging.Notifier // nil disables console notices
}

// Runner owns one race and everything observing it.
type Runner struct {
	Def     *track.Definition
	Sprites *track.Sprites
	Session *race.Session

	log    zerolog.Logger
	notify *logging.Notifier
	rec    *telemetry.Recorder
}

func New(opts Options) (*Runner, error) {
	def, err := track.Load(opts.TrackPath)
	if err != nil {
		return nil, err
	}

	sprites, err := track.LoadSprites(def, opts.AssetsDir)
	if err != nil {
		return nil, fmt.Errorf("loading sprites: %w", err)
	}

	r := &Runner{
		Def:     def,
		Sprites: sprites,
		Session: def.NewSession(sprites),
		log:     opts.Log,
		notify:  opts.Notify,
	}

	if opts.RecordPath != "" {
		r.rec, err = telemetry.Create(opts.RecordPath)
		if err != nil {
			return nil, err
		}
	}

	r.Session.Events.SubscribeAll(r.logEvent)
	r.Session.Events.Subscribe(race.EventFinish, func(e race.Event) {
		if r.notify != nil {
			r.notify.Finished(e.Data)
		}
	})

	r.log.Info().
		Str("track", def.Name).
		Int("width", def.World.Width).
		Int("height", def.World.Height).
		Int("waypoints", len(def.Computer.Path)).
		Bool("recording", r.rec != nil).
		Msg("race ready")

	return r, nil
}

// Step advances the race one tick and records it when recording is on.
func (r *Runner) Step(in race.Controls) race.Outcome {
	outcome := r.Session.Tick(in)
	if r.rec != nil {
		if err := r.rec.Capture(r.Session, outcome); err != nil {
			r.log.Error().Err(err).Msg("failed to record frame")
		}
	}
	return outcome
}

// Restart puts both cars back on the grid.
func (r *Runner) Restart() {
	r.Session.Restart()
	r.log.Info().Uint64("tick", r.Session.Ticks()).Msg("race restarted")
}

// RunHeadless ticks the race with idle player controls.
func (r *Runner) RunHeadless(ticks int) {
	for i := 0; i < ticks; i++ {
		r.Step(race.Controls{})
	}
}

// Close flushes telemetry and prints the run summary.
func (r *Runner) Close() error {
	s := r.Session
	r.log.Info().
		Uint64("ticks", s.Ticks()).
		Int("laps", s.Finishes()).
		Int("bounces", s.Bounces()).
		Msg("race over")
	if r.notify != nil {
		r.notify.Summary(s.Ticks(), s.Finishes(), s.Bounces())
	}

	if r.rec == nil {
		return nil
	}
	n := r.rec.Len()
	if err := r.rec.Close(); err != nil {
		return err
	}
	r.log.Info().Int("frames", n).Msg("telemetry written")
	return nil
}

func (r *Runner) logEvent(e race.Event) {
	var ev *zerolog.Event
	switch e.Type {
	case race.EventBounce:
		ev = r.log.Debug().Str("source", bounceSource(e.Data))
	case race.EventWaypoint:
		ev = r.log.Debug().Int("waypoint", e.Data)
	case race.EventFinish:
		ev = r.log.Info().Int("lap", e.Data)
	case race.EventPathComplete:
		ev = r.log.Info().Int("waypoints", e.Data+1)
	default:
		ev = r.log.Debug()
	}
	ev.Str("car", e.Car).
		Uint64("tick", e.Tick).
		Float64("x", e.X).
		Float64("y", e.Y).
		Float64("angle", e.Angle).
		Msg(eventMessage(e.Type))
}

func eventMessage(t race.EventType) string {
	switch t {
	case race.EventBounce:
		return "bounced"
	case race.EventWaypoint:
		return "waypoint reached"
	case race.EventFinish:
		return "finish line crossed"
	case race.EventPathComplete:
		return "path complete"
	}
	return t.String()
}

func bounceSource(data int) string {
	if data == race.BounceFinish {
		return "finish"
	}
	return "border"
}
