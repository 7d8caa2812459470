//go:build !android

package game

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"racer/internal/track"
)

// Texture is an uploaded sprite and its size in world pixels.
type Texture struct {
	ID   uint32
	W, H int
}

func uploadTexture(img *image.NRGBA) Texture {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := img.Pix
	if img.Stride != w*4 {
		pix = make([]byte, w*h*4)
		for y := 0; y < h; y++ {
			off := img.PixOffset(b.Min.X, b.Min.Y+y)
			copy(pix[y*w*4:(y+1)*w*4], img.Pix[off:off+w*4])
		}
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	return Texture{ID: tex, W: w, H: h}
}

func deleteTexture(t *Texture) {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}

// Textures holds one GL texture per track sprite.
type Textures struct {
	Grass, Track, Border, Finish Texture
	PlayerCar, ComputerCar       Texture
}

func UploadSprites(sp *track.Sprites) *Textures {
	return &Textures{
		Grass:       uploadTexture(sp.Grass),
		Track:       uploadTexture(sp.Track),
		Border:      uploadTexture(sp.Border),
		Finish:      uploadTexture(sp.Finish),
		PlayerCar:   uploadTexture(sp.PlayerCar),
		ComputerCar: uploadTexture(sp.ComputerCar),
	}
}

func (t *Textures) Destroy() {
	for _, tex := range []*Texture{&t.Grass, &t.Track, &t.Border, &t.Finish, &t.PlayerCar, &t.ComputerCar} {
		deleteTexture(tex)
	}
}
