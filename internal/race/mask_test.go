package race

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MaskTestSuite struct {
	suite.Suite
}

func TestMaskTestSuite(t *testing.T) {
	suite.Run(t, new(MaskTestSuite))
}

func (suite *MaskTestSuite) TestDisjointMasksDoNotOverlap() {
	// Arrange
	a := NewMask(10, 10)
	a.Fill(image.Rect(0, 0, 5, 5))
	b := NewMask(10, 10)
	b.Fill(image.Rect(0, 0, 5, 5))

	// Act
	_, hit := Overlap(a, b, image.Pt(6, 6))

	// Assert
	suite.False(hit)
}

func (suite *MaskTestSuite) TestOverlapReportsKnownPixel() {
	// Arrange
	a := NewMask(10, 10)
	a.Set(7, 3, true)
	b := NewMask(4, 4)
	b.Set(2, 1, true)

	// Act
	p, hit := Overlap(a, b, image.Pt(5, 2))

	// Assert
	suite.True(hit)
	suite.Equal(image.Pt(7, 3), p)
}

func (suite *MaskTestSuite) TestOverlapWithNegativeOffset() {
	// Arrange
	a := NewMask(4, 4)
	a.Fill(image.Rect(0, 0, 4, 4))
	b := NewMask(4, 4)
	b.Fill(image.Rect(0, 0, 4, 4))

	// Act
	p, hit := Overlap(a, b, image.Pt(-2, -3))

	// Assert
	suite.True(hit)
	suite.Equal(image.Pt(0, 0), p)
}

func (suite *MaskTestSuite) TestOverlapReturnsTopmostRow() {
	// Arrange
	a := NewMask(10, 10)
	a.Fill(image.Rect(0, 0, 10, 10))
	b := NewMask(3, 3)
	b.Fill(image.Rect(0, 0, 3, 3))

	// Act
	p, hit := Overlap(a, b, image.Pt(4, -1))

	// Assert
	suite.True(hit)
	suite.Equal(image.Pt(4, 0), p)
}

func (suite *MaskTestSuite) TestOverlapOutsideBounds() {
	a := NewMask(5, 5)
	a.Fill(image.Rect(0, 0, 5, 5))
	b := NewMask(2, 2)
	b.Fill(image.Rect(0, 0, 2, 2))

	_, hit := Overlap(a, b, image.Pt(5, 0))

	suite.False(hit)
}

func (suite *MaskTestSuite) TestOverlapNilMask() {
	_, hit := Overlap(nil, NewMask(1, 1), image.Point{})

	suite.False(hit)
}

func (suite *MaskTestSuite) TestMaskFromImageUsesAlphaThreshold() {
	// Arrange
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 127})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 128})

	// Act
	m := MaskFromImage(img)

	// Assert
	suite.False(m.Get(0, 0))
	suite.True(m.Get(1, 0))
	suite.Equal(1, m.Count())
}

func (suite *MaskTestSuite) TestMaskFromNonNRGBAImage() {
	// Arrange
	img := image.NewRGBA(image.Rect(10, 10, 13, 12))
	img.Set(12, 11, color.RGBA{G: 200, A: 200})

	// Act
	m := MaskFromImage(img)

	// Assert
	suite.Equal(3, m.W)
	suite.Equal(2, m.H)
	suite.True(m.Get(2, 1))
	suite.Equal(1, m.Count())
}

func (suite *MaskTestSuite) TestRotateQuarterTurnSwapsBounds() {
	// Arrange
	m := NewMask(4, 2)
	m.Fill(image.Rect(0, 0, 4, 2))

	// Act
	r := m.Rotate(90)

	// Assert
	suite.Equal(2, r.W)
	suite.Equal(4, r.H)
	suite.Equal(8, r.Count())
}

func (suite *MaskTestSuite) TestRotateIsCounterClockwise() {
	// Arrange
	m := NewMask(3, 3)
	m.Set(2, 1, true)

	// Act
	r := m.Rotate(90)

	// Assert
	suite.True(r.Get(1, 0))
	suite.Equal(1, r.Count())
}

func (suite *MaskTestSuite) TestRotateZeroIsCopy() {
	m := NewMask(3, 3)
	m.Set(1, 1, true)

	r := m.Rotate(360)
	r.Set(0, 0, true)

	suite.False(m.Get(0, 0))
	suite.True(r.Get(1, 1))
}

func (suite *MaskTestSuite) TestSpriteMaskCachesPerDegree() {
	// Arrange
	base := NewMask(4, 8)
	base.Fill(image.Rect(0, 0, 4, 8))
	sm := NewSpriteMask(base)

	// Act
	a := sm.At(90.4)
	b := sm.At(90)
	c := sm.At(-270)

	// Assert
	suite.Same(a, b)
	suite.Same(a, c)
	suite.Same(base, sm.At(0))
	suite.Same(base, sm.At(720))
}
