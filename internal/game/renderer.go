//go:build !android

package game

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	prog uint32
	vao  uint32
	vbo  uint32

	uOrigin     int32
	uSize       int32
	uRotation   int32
	uCamera     int32
	uZoom       int32
	uResolution int32
	uTex        int32
}

func NewRenderer() (*Renderer, error) {
	prog, err := linkProgram(spriteVertSrc, spriteFragSrc)
	if err != nil {
		return nil, fmt.Errorf("sprite program: %w", err)
	}
	r := &Renderer{prog: prog}

	// Unit quad (6 vertices, 2 triangles).
	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.UseProgram(prog)
	r.uOrigin = gl.GetUniformLocation(prog, gl.Str("uOrigin\x00"))
	r.uSize = gl.GetUniformLocation(prog, gl.Str("uSize\x00"))
	r.uRotation = gl.GetUniformLocation(prog, gl.Str("uRotation\x00"))
	r.uCamera = gl.GetUniformLocation(prog, gl.Str("uCamera\x00"))
	r.uZoom = gl.GetUniformLocation(prog, gl.Str("uZoom\x00"))
	r.uResolution = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))
	r.uTex = gl.GetUniformLocation(prog, gl.Str("uTex\x00"))
	gl.Uniform1i(r.uTex, 0)

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.prog != 0 {
		gl.DeleteProgram(r.prog)
	}
}

func (r *Renderer) BeginFrame(cam Camera, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(r.prog)
	gl.BindVertexArray(r.vao)

	cx, cy := cam.EffectivePos()
	gl.Uniform2f(r.uCamera, float32(cx), float32(cy))
	gl.Uniform1f(r.uZoom, float32(cam.Zoom))
	gl.Uniform2f(r.uResolution, float32(fbW), float32(fbH))

	gl.ActiveTexture(gl.TEXTURE0)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// DrawSprite blits tex with its top-left corner at (x, y), rotated about its
// centre by angle degrees counter-clockwise on screen.
func (r *Renderer) DrawSprite(tex Texture, x, y, angle float64) {
	if tex.ID == 0 {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, tex.ID)
	gl.Uniform2f(r.uOrigin, float32(x), float32(y))
	gl.Uniform2f(r.uSize, float32(tex.W), float32(tex.H))
	// Screen y points down, so a positive shader angle turns clockwise.
	gl.Uniform1f(r.uRotation, float32(-angle*math.Pi/180))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

func (r *Renderer) EndFrame() {
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}
