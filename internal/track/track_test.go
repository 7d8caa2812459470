package track

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"racer/internal/race"
)

type TrackTestSuite struct {
	suite.Suite
	def *Definition
}

func TestTrackTestSuite(t *testing.T) {
	suite.Run(t, new(TrackTestSuite))
}

func (suite *TrackTestSuite) SetupTest() {
	def, err := Default()
	suite.Require().NoError(err)
	suite.def = def
}

func (suite *TrackTestSuite) TestDefaultCourse() {
	suite.Equal("Grass Circuit", suite.def.Name)
	suite.Len(suite.def.Waypoints(), 22)
	suite.Equal(race.Point{X: 175, Y: 119}, suite.def.Waypoints()[0])
	suite.Equal(90, suite.def.FinishWidth())
	suite.Equal(race.SideBottom, suite.def.entrySide())
}

func (suite *TrackTestSuite) TestLoadEmptyPathIsDefault() {
	def, err := Load("")

	suite.Require().NoError(err)
	suite.Equal(suite.def, def)
}

func (suite *TrackTestSuite) TestLoadMissingFile() {
	_, err := Load(filepath.Join(suite.T().TempDir(), "nope.json"))

	suite.ErrorIs(err, ErrTrackNotFound)
}

func (suite *TrackTestSuite) TestLoadFromFile() {
	// Arrange
	path := filepath.Join(suite.T().TempDir(), "course.json")
	data := strings.Replace(string(defaultTrackJSON), `"Grass Circuit"`, `"Night Loop"`, 1)
	suite.Require().NoError(os.WriteFile(path, []byte(data), 0o644))

	// Act
	def, err := Load(path)

	// Assert
	suite.Require().NoError(err)
	suite.Equal("Night Loop", def.Name)
}

func (suite *TrackTestSuite) TestParseRejectsBadInput() {
	def := string(defaultTrackJSON)
	cases := map[string]string{
		"malformed":        `{"name": `,
		"missing world":    strings.Replace(def, `"world"`, `"planet"`, 1),
		"bad entry":        strings.Replace(def, `"bottom"`, `"sideways"`, 1),
		"start outside":    strings.Replace(def, `"x": 180`, `"x": 5000`, 1),
		"waypoint outside": strings.Replace(def, `[178, 260]`, `[178, -260]`, 1),
	}
	for name, data := range cases {
		suite.Run(name, func() {
			_, err := Parse([]byte(data))
			suite.ErrorIs(err, ErrInvalidTrack)
		})
	}
}

func (suite *TrackTestSuite) TestBuildSprites() {
	// Act
	sp := BuildSprites(suite.def)

	// Assert
	suite.Equal(image.Rect(0, 0, 810, 810), sp.Grass.Rect)
	suite.Equal(image.Rect(0, 0, 810, 810), sp.Track.Rect)
	suite.Equal(image.Rect(0, 0, 810, 810), sp.Border.Rect)
	suite.Equal(image.Rect(0, 0, 90, 14), sp.Finish.Rect)
	suite.Equal(image.Rect(0, 0, 19, 38), sp.PlayerCar.Rect)
	suite.Equal(uint8(0), sp.PlayerCar.NRGBAAt(0, 0).A)
	suite.Equal(uint8(255), sp.PlayerCar.NRGBAAt(9, 19).A)

	// the waypoints sit on the road, never on the curb
	for _, p := range suite.def.Waypoints() {
		suite.Equal(uint8(255), sp.Track.NRGBAAt(int(p.X), int(p.Y)).A)
		suite.Equal(uint8(0), sp.Border.NRGBAAt(int(p.X), int(p.Y)).A)
	}

	road := race.MaskFromImage(sp.Track)
	curb := race.MaskFromImage(sp.Border)
	_, overlap := race.Overlap(road, curb, image.Point{})
	suite.False(overlap)
	suite.Positive(curb.Count())
}

func (suite *TrackTestSuite) TestBuildIsDeterministic() {
	a := BuildSprites(suite.def)
	b := BuildSprites(suite.def)

	suite.Equal(a.Grass.Pix, b.Grass.Pix)
	suite.Equal(a.Border.Pix, b.Border.Pix)
}

func (suite *TrackTestSuite) TestLoadSpritesOverridesAndScales() {
	// Arrange
	dir := suite.T().TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 10, 20))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetNRGBA(0, 0, color.NRGBA{})
	f, err := os.Create(filepath.Join(dir, SpritePlayer+".png"))
	suite.Require().NoError(err)
	suite.Require().NoError(png.Encode(f, img))
	suite.Require().NoError(f.Close())

	// Act
	sp, err := LoadSprites(suite.def, dir)

	// Assert
	suite.Require().NoError(err)
	suite.Equal(image.Rect(0, 0, 6, 11), sp.PlayerCar.Rect)
	suite.Equal(uint8(0), sp.PlayerCar.NRGBAAt(0, 0).A)
	suite.Equal(uint8(255), sp.PlayerCar.NRGBAAt(5, 10).A)
	suite.Equal(image.Rect(0, 0, 19, 38), sp.ComputerCar.Rect)

	s := suite.def.NewSession(sp)
	suite.Equal(6, s.Player.Width)
	suite.Equal(11, s.Player.Height)
}

func (suite *TrackTestSuite) TestLoadSpritesRejectsCorruptImage() {
	dir := suite.T().TempDir()
	suite.Require().NoError(os.WriteFile(filepath.Join(dir, SpriteFinish+".png"), []byte("not a png"), 0o644))

	_, err := LoadSprites(suite.def, dir)

	suite.ErrorContains(err, "decode")
}

func (suite *TrackTestSuite) TestNewSessionStartsClean() {
	// Arrange
	s := suite.def.NewSession(BuildSprites(suite.def))

	// Act
	outcome := s.Tick(race.Controls{})

	// Assert
	suite.Equal(race.OutcomeRacing, outcome)
	suite.Equal(PlayerName, s.Player.Name)
	suite.Equal(ComputerName, s.Computer.Name)
	suite.InDelta(2.0, s.Computer.Velocity, 1e-12)
	suite.Equal(image.Pt(130, 250), s.Finish.Offset)
}

func (suite *TrackTestSuite) TestReversingOntoFinishBounces() {
	// Arrange
	s := suite.def.NewSession(BuildSprites(suite.def))
	var bounces []race.Event
	s.Events.Subscribe(race.EventBounce, func(e race.Event) { bounces = append(bounces, e) })

	// Act
	outcome := race.OutcomeRacing
	for i := 0; i < 200 && outcome == race.OutcomeRacing; i++ {
		outcome = s.Tick(race.Controls{Backward: true})
	}

	// Assert
	suite.Equal(race.OutcomeBounced, outcome)
	suite.Require().Len(bounces, 1)
	suite.Equal(race.BounceFinish, bounces[0].Data)
	suite.Zero(s.Finishes())
}
