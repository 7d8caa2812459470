package track

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // decoder for .jpg assets
	_ "image/png"  // decoder for .png assets
	"math"
	"os"
	"path/filepath"

	"racer/internal/race"
)

// Sprite names, matching the file names looked up by LoadSprites.
const (
	SpriteGrass    = "grass"
	SpriteTrack    = "track"
	SpriteBorder   = "track-border"
	SpriteFinish   = "finish"
	SpritePlayer   = "red-car"
	SpriteComputer = "green-car"
)

var assetExts = []string{".png", ".jpg", ".jpeg"}

const grassPatchCell = 6

// Sprites are the images the race draws and derives collision masks from.
type Sprites struct {
	Grass       *image.NRGBA
	Track       *image.NRGBA
	Border      *image.NRGBA
	Finish      *image.NRGBA
	PlayerCar   *image.NRGBA
	ComputerCar *image.NRGBA
}

// BuildSprites renders every sprite procedurally from the definition.
func BuildSprites(d *Definition) *Sprites {
	w, h := d.World.Width, d.World.Height
	dist := roadDistance(w, h, d.Waypoints(), d.Road.HalfWidth+d.Road.BorderWidth)

	sp := &Sprites{
		Grass:       makeGrass(w, h, d.Seed),
		Track:       image.NewNRGBA(image.Rect(0, 0, w, h)),
		Border:      image.NewNRGBA(image.Rect(0, 0, w, h)),
		Finish:      makeFinish(d.FinishWidth(), d.Finish.Height),
		PlayerCar:   makeCar(d.Player.Car.Width, d.Player.Car.Height, Palette.PlayerBody),
		ComputerCar: makeCar(d.Computer.Car.Width, d.Computer.Car.Height, Palette.RivalBody),
	}

	outer := d.Road.HalfWidth + d.Road.BorderWidth
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dd := float64(dist[y*w+x])
			switch {
			case dd <= d.Road.HalfWidth:
				col := Palette.Road
				if pixelHash(d.Seed^0x70AD, x, y)%7 == 0 {
					col = Palette.RoadPatch
				}
				sp.Track.SetNRGBA(x, y, col.NRGBA(255))
			case dd <= outer:
				col := Palette.CurbRed
				if ((x+y)/8)%2 == 0 {
					col = Palette.CurbWhite
				}
				sp.Border.SetNRGBA(x, y, col.NRGBA(255))
			}
		}
	}
	return sp
}

// LoadSprites starts from the procedural set and replaces every sprite that
// has an image file in dir, scaled by the definition's asset scale.
func LoadSprites(d *Definition, dir string) (*Sprites, error) {
	sp := BuildSprites(d)
	if dir == "" {
		return sp, nil
	}

	slots := map[string]**image.NRGBA{
		SpriteGrass:    &sp.Grass,
		SpriteTrack:    &sp.Track,
		SpriteBorder:   &sp.Border,
		SpriteFinish:   &sp.Finish,
		SpritePlayer:   &sp.PlayerCar,
		SpriteComputer: &sp.ComputerCar,
	}
	for name, slot := range slots {
		img, err := loadImage(dir, name)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if s, ok := d.Assets.Scale[name]; ok && s != 1 {
			img = scaleNearest(img, s)
		}
		*slot = img
	}
	return sp, nil
}

func loadImage(dir, name string) (*image.NRGBA, error) {
	for _, ext := range assetExts {
		path := filepath.Join(dir, name+ext)
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return toNRGBA(img), nil
	}
	return nil, os.ErrNotExist
}

func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// scaleNearest resizes with nearest-neighbour sampling so mask edges stay hard.
func scaleNearest(src *image.NRGBA, s float64) *image.NRGBA {
	sb := src.Bounds()
	w := max(1, int(math.Round(float64(sb.Dx())*s)))
	h := max(1, int(math.Round(float64(sb.Dy())*s)))
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		sy := min(sb.Dy()-1, int(float64(y)/s))
		for x := 0; x < w; x++ {
			sx := min(sb.Dx()-1, int(float64(x)/s))
			out.SetNRGBA(x, y, src.NRGBAAt(sb.Min.X+sx, sb.Min.Y+sy))
		}
	}
	return out
}

// roadDistance returns, per pixel, the distance to the closed waypoint loop.
// Pixels farther than reach from every segment keep +Inf.
func roadDistance(w, h int, pts []race.Point, reach float64) []float32 {
	dist := make([]float32, w*h)
	for i := range dist {
		dist[i] = float32(math.Inf(1))
	}
	n := len(pts)
	if n == 0 {
		return dist
	}
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		x0 := max(0, int(math.Floor(math.Min(a.X, b.X)-reach)))
		y0 := max(0, int(math.Floor(math.Min(a.Y, b.Y)-reach)))
		x1 := min(w-1, int(math.Ceil(math.Max(a.X, b.X)+reach)))
		y1 := min(h-1, int(math.Ceil(math.Max(a.Y, b.Y)+reach)))
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				d := float32(segmentDist(float64(x)+0.5, float64(y)+0.5, a, b))
				if d < dist[y*w+x] {
					dist[y*w+x] = d
				}
			}
		}
	}
	return dist
}

func segmentDist(px, py float64, a, b race.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-a.X, py-a.Y)
	}
	t := ((px-a.X)*dx + (py-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(a.X+t*dx), py-(a.Y+t*dy))
}

func makeGrass(w, h int, seed uint64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			col := Palette.Grass
			if pixelHash(seed, x/grassPatchCell, y/grassPatchCell)%3 == 0 {
				col = Palette.GrassPatch
			}
			jitter := int(pixelHash(seed^0x6A55, x, y)%9) - 4
			img.SetNRGBA(x, y, col.Add(jitter, jitter, jitter/2).NRGBA(255))
		}
	}
	return img
}

// makeFinish draws a two-row chequered flag strip.
func makeFinish(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, max(1, w), max(1, h)))
	cell := max(1, h/2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			col := Palette.FinishDark
			if (x/cell+y/cell)%2 == 0 {
				col = Palette.FinishLight
			}
			img.SetNRGBA(x, y, col.NRGBA(255))
		}
	}
	return img
}

// makeCar draws a top-down car facing up: nose, windscreen, roof, rear
// window and boot as horizontal bands, with clipped corners.
func makeCar(w, h int, body RGB) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	roof := body.Mul(180)
	bands := []struct {
		frac float64
		col  RGB
	}{
		{0.22, body},
		{0.16, Palette.Glass},
		{0.30, roof},
		{0.10, Palette.Glass},
		{1.00, body},
	}
	y := 0
	for _, b := range bands {
		end := min(h, y+int(math.Ceil(b.frac*float64(h))))
		for ; y < end; y++ {
			for x := 0; x < w; x++ {
				img.SetNRGBA(x, y, b.col.NRGBA(255))
			}
		}
	}
	if w > 2 && h > 2 {
		for _, p := range []image.Point{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}} {
			img.SetNRGBA(p.X, p.Y, RGB{}.NRGBA(0))
		}
	}
	return img
}
