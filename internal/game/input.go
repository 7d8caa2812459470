//go:build !android

package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"racer/internal/race"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Controls samples the driving keys: WASD or the arrow keys.
func Controls(window *glfw.Window) race.Controls {
	held := func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if window.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	}
	return race.Controls{
		Left:     held(glfw.KeyA, glfw.KeyLeft),
		Right:    held(glfw.KeyD, glfw.KeyRight),
		Forward:  held(glfw.KeyW, glfw.KeyUp),
		Backward: held(glfw.KeyS, glfw.KeyDown),
	}
}
