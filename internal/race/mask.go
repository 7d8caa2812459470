package race

import (
	"image"
	"image/color"
	"math"
)

// AlphaThreshold is the alpha above which a sprite pixel counts as solid.
const AlphaThreshold = 127

// Mask is a per-pixel opacity bitmap, row-major, one bit per pixel.
type Mask struct {
	W, H int
	bits []uint64
}

func NewMask(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Mask{W: w, H: h, bits: make([]uint64, (w*h+63)/64)}
}

// MaskFromImage marks every pixel whose alpha exceeds AlphaThreshold.
// The mask origin is the image's Bounds().Min.
func MaskFromImage(img image.Image) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < m.H; y++ {
			row := nrgba.Pix[nrgba.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < m.W; x++ {
				if row[x*4+3] > AlphaThreshold {
					m.Set(x, y, true)
				}
			}
		}
		return m
	}
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if c.A > AlphaThreshold {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

func (m *Mask) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.W && y < m.H
}

func (m *Mask) Get(x, y int) bool {
	if !m.in(x, y) {
		return false
	}
	i := y*m.W + x
	return m.bits[i>>6]&(1<<uint(i&63)) != 0
}

func (m *Mask) Set(x, y int, on bool) {
	if !m.in(x, y) {
		return
	}
	i := y*m.W + x
	if on {
		m.bits[i>>6] |= 1 << uint(i&63)
	} else {
		m.bits[i>>6] &^= 1 << uint(i&63)
	}
}

// Fill sets every pixel of r (clipped to the mask).
func (m *Mask) Fill(r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, m.W, m.H))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.Set(x, y, true)
		}
	}
}

// Count returns the number of opaque pixels.
func (m *Mask) Count() int {
	n := 0
	for _, w := range m.bits {
		for ; w != 0; w &= w - 1 {
			n++
		}
	}
	return n
}

// Rotate returns the mask of the sprite rotated counter-clockwise by deg
// about its centre. Bounds grow to hold the rotated sprite.
func (m *Mask) Rotate(deg float64) *Mask {
	a := normDeg(deg)
	if a == 0 {
		return m.clone()
	}
	rad := a * degToRad
	cos, sin := math.Cos(rad), math.Sin(rad)
	fw, fh := float64(m.W), float64(m.H)
	ow := int(math.Ceil(math.Abs(fw*cos) + math.Abs(fh*sin) - 1e-9))
	oh := int(math.Ceil(math.Abs(fw*sin) + math.Abs(fh*cos) - 1e-9))
	out := NewMask(ow, oh)

	for v := 0; v < oh; v++ {
		dy := float64(v) + 0.5 - float64(oh)*0.5
		for u := 0; u < ow; u++ {
			dx := float64(u) + 0.5 - float64(ow)*0.5
			sx := dx*cos - dy*sin + fw*0.5
			sy := dx*sin + dy*cos + fh*0.5
			if m.Get(int(math.Floor(sx)), int(math.Floor(sy))) {
				out.Set(u, v, true)
			}
		}
	}
	return out
}

func (m *Mask) clone() *Mask {
	c := &Mask{W: m.W, H: m.H, bits: make([]uint64, len(m.bits))}
	copy(c.bits, m.bits)
	return c
}

// Overlap reports the first opaque pixel shared by a and b when b is placed
// at off in a's space. Rows are scanned top to bottom, so the returned point
// has the smallest y of all coincident pixels. The point is in a's space.
func Overlap(a, b *Mask, off image.Point) (image.Point, bool) {
	if a == nil || b == nil {
		return image.Point{}, false
	}
	x0, y0 := max(0, off.X), max(0, off.Y)
	x1, y1 := min(a.W, off.X+b.W), min(a.H, off.Y+b.H)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if a.Get(x, y) && b.Get(x-off.X, y-off.Y) {
				return image.Point{X: x, Y: y}, true
			}
		}
	}
	return image.Point{}, false
}

// SpriteMask caches rotated copies of a sprite's mask per whole degree.
type SpriteMask struct {
	base  *Mask
	cache map[int]*Mask
}

func NewSpriteMask(base *Mask) *SpriteMask {
	return &SpriteMask{base: base, cache: make(map[int]*Mask)}
}

// At returns the mask for the given heading, rounded to a whole degree.
func (s *SpriteMask) At(angle float64) *Mask {
	key := int(math.Round(normDeg(angle))) % 360
	if key == 0 {
		return s.base
	}
	if m, ok := s.cache[key]; ok {
		return m
	}
	m := s.base.Rotate(float64(key))
	s.cache[key] = m
	return m
}
