package race

import "image"

// Outcome is the player's race status after a tick.
type Outcome int

const (
	OutcomeRacing    Outcome = iota
	OutcomeBounced           // touched the border or the finish line from the wrong side
	OutcomeCompleted         // crossed the finish line the right way; car was reset
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRacing:
		return "racing"
	case OutcomeBounced:
		return "bounced"
	case OutcomeCompleted:
		return "completed"
	}
	return "unknown"
}

// Side names the edge of the finish line a car may cross from.
type Side int

const (
	SideBottom Side = iota // entering from below; touching the top row is the wrong way
	SideTop
)

// FinishLine is the finish sprite's mask and its fixed placement.
type FinishLine struct {
	Mask   *Mask
	Offset image.Point
	Entry  Side
}

// WrongWay reports whether a contact point (in finish-line space) means the
// car arrived from the disallowed side. Overlap reports the topmost shared
// row, so a car coming from above always touches row 0 first; a car coming
// from below reports a deeper row however far it moved this tick.
func (f FinishLine) WrongWay(p image.Point) bool {
	fromAbove := p.Y == 0
	if f.Entry == SideTop {
		return !fromAbove
	}
	return fromAbove
}

// Controls are the four logical inputs sampled once per frame.
type Controls struct {
	Left, Right       bool
	Forward, Backward bool
}

type Session struct {
	Player     *Car
	Computer   *ComputerCar
	Border     *Mask
	Finish     FinishLine
	Events     *EventBus
	playerMask *SpriteMask

	ticks    uint64
	bounces  int
	finishes int
}

// NewSession wires the race. computer may be nil.
func NewSession(player *Car, playerMask *Mask, computer *ComputerCar, border *Mask, finish FinishLine) *Session {
	return &Session{
		Player:     player,
		Computer:   computer,
		Border:     border,
		Finish:     finish,
		Events:     NewEventBus(),
		playerMask: NewSpriteMask(playerMask),
	}
}

func (s *Session) Ticks() uint64 { return s.ticks }
func (s *Session) Bounces() int  { return s.bounces }
func (s *Session) Finishes() int { return s.finishes }

// Tick advances one frame: player input, computer car, then collisions.
func (s *Session) Tick(in Controls) Outcome {
	s.ticks++
	s.drivePlayer(in)
	s.stepComputer()
	return s.resolve()
}

// Restart puts both cars back on the grid. Counters are kept.
func (s *Session) Restart() {
	s.Player.Reset()
	if s.Computer != nil {
		s.Computer.Reset()
	}
}

func (s *Session) drivePlayer(in Controls) {
	p := s.Player
	if in.Left {
		p.Rotate(TurnLeft)
	}
	if in.Right {
		p.Rotate(TurnRight)
	}
	moved := false
	if in.Forward {
		moved = true
		p.Accelerate(Forward)
	}
	if in.Backward {
		moved = true
		p.Accelerate(Backward)
	}
	if !moved {
		p.Decelerate()
	}
}

func (s *Session) stepComputer() {
	cc := s.Computer
	if cc == nil || cc.Done() {
		return
	}
	idx := cc.Cursor()
	if !cc.Update() {
		return
	}
	s.emit(EventWaypoint, cc.Car, idx)
	if cc.Done() {
		s.emit(EventPathComplete, cc.Car, idx)
	}
}

// resolve applies at most one collision response to the player.
func (s *Session) resolve() Outcome {
	p := s.Player
	if _, hit := p.Collide(s.playerMask, s.Border, image.Point{}); hit {
		p.Bounce()
		s.bounces++
		s.emit(EventBounce, p, BounceBorder)
		return OutcomeBounced
	}
	if s.Finish.Mask == nil {
		return OutcomeRacing
	}
	pt, hit := p.Collide(s.playerMask, s.Finish.Mask, s.Finish.Offset)
	if !hit {
		return OutcomeRacing
	}
	if s.Finish.WrongWay(pt) {
		p.Bounce()
		s.bounces++
		s.emit(EventBounce, p, BounceFinish)
		return OutcomeBounced
	}
	p.Reset()
	s.finishes++
	s.emit(EventFinish, p, s.finishes)
	return OutcomeCompleted
}

func (s *Session) emit(t EventType, c *Car, data int) {
	s.Events.Emit(Event{
		Type:  t,
		Car:   c.Name,
		Tick:  s.ticks,
		X:     c.X,
		Y:     c.Y,
		Angle: c.Angle,
		Data:  data,
	})
}
