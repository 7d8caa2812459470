// Package loop caps the simulation at a fixed number of ticks per second.
package loop

import "time"

// MaxCatchUp bounds how far behind schedule the pacer will try to recover.
// A longer stall (window drag, breakpoint) just restarts the schedule.
const MaxCatchUp = 100 * time.Millisecond

type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Pacer blocks each frame until its slot in a fixed-rate schedule.
type Pacer struct {
	clock  Clock
	period time.Duration
	next   time.Time
	last   time.Time
	frames uint64
}

func NewPacer(fps int) *Pacer {
	return NewPacerWithClock(fps, systemClock{})
}

func NewPacerWithClock(fps int, clock Clock) *Pacer {
	if fps <= 0 {
		fps = 60
	}
	return &Pacer{clock: clock, period: time.Second / time.Duration(fps)}
}

func (p *Pacer) Period() time.Duration { return p.period }

// Frames is the number of completed Wait calls.
func (p *Pacer) Frames() uint64 { return p.frames }

// Wait sleeps until the next frame is due and returns the time elapsed since
// the previous Wait returned, clamped to MaxCatchUp. The first call never
// sleeps and reports one period.
func (p *Pacer) Wait() time.Duration {
	p.frames++
	now := p.clock.Now()
	if p.next.IsZero() {
		p.next = now.Add(p.period)
		p.last = now
		return p.period
	}

	if d := p.next.Sub(now); d > 0 {
		p.clock.Sleep(d)
		now = p.clock.Now()
	}
	if now.Sub(p.next) > MaxCatchUp {
		p.next = now
	}
	p.next = p.next.Add(p.period)

	dt := now.Sub(p.last)
	p.last = now
	return min(dt, MaxCatchUp)
}
