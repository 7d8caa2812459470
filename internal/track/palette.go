package track

import "image/color"

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

func (c RGB) Add(dr, dg, db int) RGB {
	return RGB{R: addU8(c.R, dr), G: addU8(c.G, dg), B: addU8(c.B, db)}
}

func (c RGB) NRGBA(a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

func addU8(v uint8, d int) uint8 {
	r := int(v) + d
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}

var Palette = struct {
	Grass       RGB
	GrassPatch  RGB
	Road        RGB
	RoadPatch   RGB
	CurbRed     RGB
	CurbWhite   RGB
	FinishDark  RGB
	FinishLight RGB
	PlayerBody  RGB
	RivalBody   RGB
	Glass       RGB
}{
	Grass:       RGB{R: 92, G: 140, B: 62},
	GrassPatch:  RGB{R: 80, G: 124, B: 54},
	Road:        RGB{R: 60, G: 66, B: 79},
	RoadPatch:   RGB{R: 66, G: 72, B: 84},
	CurbRed:     RGB{R: 200, G: 40, B: 40},
	CurbWhite:   RGB{R: 235, G: 235, B: 235},
	FinishDark:  RGB{R: 20, G: 20, B: 20},
	FinishLight: RGB{R: 245, G: 245, B: 245},
	PlayerBody:  RGB{R: 205, G: 45, B: 40},
	RivalBody:   RGB{R: 45, G: 165, B: 70},
	Glass:       RGB{R: 130, G: 135, B: 140},
}
