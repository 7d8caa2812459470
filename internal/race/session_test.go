package race

import (
	"image"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SessionTestSuite struct {
	suite.Suite
	events []Event
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (suite *SessionTestSuite) SetupTest() {
	suite.events = nil
}

func solid(w, h int) *Mask {
	m := NewMask(w, h)
	m.Fill(image.Rect(0, 0, w, h))
	return m
}

func (suite *SessionTestSuite) newSession(start Pose, border *Mask, finish FinishLine, computer *ComputerCar) *Session {
	spec := CarSpec{MaxVelocity: 4, Acceleration: 0.1, RotationVelocity: 4, Width: 4, Height: 4}
	player := NewCar("player", spec, start, 0)
	s := NewSession(player, solid(4, 4), computer, border, finish)
	s.Events.SubscribeAll(func(e Event) { suite.events = append(suite.events, e) })
	return s
}

func (suite *SessionTestSuite) TestBorderOverlapBouncesExactlyOnce() {
	// Arrange
	border := NewMask(100, 100)
	border.Fill(image.Rect(0, 0, 30, 30))
	finish := FinishLine{Mask: solid(30, 30)}
	s := suite.newSession(Pose{X: 10, Y: 10}, border, finish, nil)
	s.Player.Velocity = 2

	// Act
	outcome := s.Tick(Controls{})

	// Assert
	suite.Equal(OutcomeBounced, outcome)
	suite.InDelta(-1.95, s.Player.Velocity, 1e-12)
	suite.InDelta(10, s.Player.Y, 1e-9)
	suite.Equal(1, s.Bounces())
	suite.Require().Len(suite.events, 1)
	suite.Equal(EventBounce, suite.events[0].Type)
	suite.Equal(BounceBorder, suite.events[0].Data)
}

func (suite *SessionTestSuite) TestNoOverlapKeepsRacing() {
	// Arrange
	border := NewMask(100, 100)
	border.Fill(image.Rect(90, 90, 100, 100))
	s := suite.newSession(Pose{X: 10, Y: 10}, border, FinishLine{}, nil)

	// Act
	outcome := s.Tick(Controls{Forward: true})

	// Assert
	suite.Equal(OutcomeRacing, outcome)
	suite.InDelta(0.1, s.Player.Velocity, 1e-12)
	suite.Empty(suite.events)
	suite.Equal(uint64(1), s.Ticks())
}

func (suite *SessionTestSuite) TestFinishFromAllowedSideResets() {
	// Arrange
	finish := FinishLine{Mask: solid(20, 5), Offset: image.Pt(0, 50)}
	s := suite.newSession(Pose{X: 5, Y: 80}, nil, finish, nil)
	s.Player.X, s.Player.Y = 5, 56
	s.Player.Velocity = 2

	// Act
	outcome := s.Tick(Controls{})

	// Assert
	suite.Equal(OutcomeCompleted, outcome)
	suite.Equal(5.0, s.Player.X)
	suite.Equal(80.0, s.Player.Y)
	suite.Equal(0.0, s.Player.Velocity)
	suite.Equal(1, s.Finishes())
	suite.Require().Len(suite.events, 1)
	suite.Equal(EventFinish, suite.events[0].Type)
}

func (suite *SessionTestSuite) TestFinishFromWrongSideBounces() {
	// Arrange
	finish := FinishLine{Mask: solid(20, 5), Offset: image.Pt(0, 50)}
	s := suite.newSession(Pose{X: 5, Y: 80}, nil, finish, nil)
	s.Player.X, s.Player.Y = 5, 47
	s.Player.Angle = 180
	s.Player.Velocity = 2

	// Act
	outcome := s.Tick(Controls{})

	// Assert
	suite.Equal(OutcomeBounced, outcome)
	suite.InDelta(-1.95, s.Player.Velocity, 1e-12)
	suite.InDelta(47, s.Player.Y, 1e-9)
	suite.Equal(0, s.Finishes())
	suite.Require().Len(suite.events, 1)
	suite.Equal(BounceFinish, suite.events[0].Data)
}

func (suite *SessionTestSuite) TestTopEntryFlipsWrongSide() {
	f := FinishLine{Mask: solid(20, 5), Entry: SideTop}

	suite.True(f.WrongWay(image.Pt(3, 4)))
	suite.True(f.WrongWay(image.Pt(3, 2)))
	suite.False(f.WrongWay(image.Pt(3, 0)))
}

func (suite *SessionTestSuite) TestTopEntryHitFromBelowAtFullSpeedBounces() {
	// Arrange
	finish := FinishLine{Mask: solid(20, 5), Offset: image.Pt(0, 50), Entry: SideTop}
	s := suite.newSession(Pose{X: 5, Y: 80}, nil, finish, nil)
	s.Player.X, s.Player.Y = 5, 57
	s.Player.Velocity = s.Player.MaxVelocity

	// Act
	outcome := s.Tick(Controls{})

	// Assert
	suite.Equal(OutcomeBounced, outcome)
	suite.InDelta(-3.95, s.Player.Velocity, 1e-12)
	suite.InDelta(57, s.Player.Y, 1e-9)
	suite.Equal(0, s.Finishes())
	suite.Equal(1, s.Bounces())
	suite.Require().Len(suite.events, 1)
	suite.Equal(BounceFinish, suite.events[0].Data)
}

func (suite *SessionTestSuite) TestTopEntryFromAboveAtFullSpeedCompletes() {
	// Arrange
	finish := FinishLine{Mask: solid(20, 5), Offset: image.Pt(0, 50), Entry: SideTop}
	s := suite.newSession(Pose{X: 5, Y: 80}, nil, finish, nil)
	s.Player.X, s.Player.Y = 5, 45
	s.Player.Angle = 180
	s.Player.Velocity = s.Player.MaxVelocity

	// Act
	outcome := s.Tick(Controls{})

	// Assert
	suite.Equal(OutcomeCompleted, outcome)
	suite.Equal(80.0, s.Player.Y)
	suite.Equal(1, s.Finishes())
	suite.Zero(s.Bounces())
	suite.Require().Len(suite.events, 1)
	suite.Equal(EventFinish, suite.events[0].Type)
}

func (suite *SessionTestSuite) TestComputerEventsAndIdleAfterPath() {
	// Arrange
	spec := CarSpec{MaxVelocity: 2, Acceleration: 0.1, RotationVelocity: 4}
	cc := NewComputerCar(NewCar("computer", spec, Pose{X: 50, Y: 50}, 0), NewPath([]Point{{X: 50, Y: 46}}), 3)
	s := suite.newSession(Pose{X: 10, Y: 10}, nil, FinishLine{}, cc)

	// Act
	for range 10 {
		s.Tick(Controls{})
	}

	// Assert
	suite.True(cc.Done())
	suite.Equal(46.0, cc.Y)
	suite.Require().Len(suite.events, 2)
	suite.Equal(EventWaypoint, suite.events[0].Type)
	suite.Equal("computer", suite.events[0].Car)
	suite.Equal(EventPathComplete, suite.events[1].Type)
}

func (suite *SessionTestSuite) TestRestartResetsBothCars() {
	// Arrange
	spec := CarSpec{MaxVelocity: 2, Acceleration: 0.1, RotationVelocity: 4}
	cc := NewComputerCar(NewCar("computer", spec, Pose{X: 50, Y: 50}, 0), NewPath([]Point{{X: 50, Y: 0}}), 3)
	s := suite.newSession(Pose{X: 10, Y: 10}, nil, FinishLine{}, cc)
	for range 5 {
		s.Tick(Controls{Forward: true, Left: true})
	}

	// Act
	s.Restart()

	// Assert
	suite.Equal(10.0, s.Player.X)
	suite.Equal(10.0, s.Player.Y)
	suite.Equal(0.0, s.Player.Velocity)
	suite.Equal(50.0, cc.Y)
	suite.Equal(0, cc.Cursor())
	suite.Equal(uint64(5), s.Ticks())
}

func (suite *SessionTestSuite) TestOutcomeStrings() {
	suite.Equal("racing", OutcomeRacing.String())
	suite.Equal("bounced", OutcomeBounced.String())
	suite.Equal("completed", OutcomeCompleted.String())
	suite.Equal("finish", EventFinish.String())
}
