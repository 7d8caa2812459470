//go:build !android

// Package game is the windowed front end: GLFW window, GL sprite renderer and
// procedural audio around a sim.Runner.
package game

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"racer/internal/loop"
	"racer/internal/race"
	"racer/internal/sim"
)

type Options struct {
	Sim  sim.Options
	FPS  int
	Mute bool
}

func RunDesktop(opts Options) error {
	runtime.LockOSThread()
	log := opts.Sim.Log

	runner, err := sim.New(opts.Sim)
	if err != nil {
		return err
	}
	defer func() {
		if err := runner.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close race")
		}
	}()

	window, err := initWindow(WindowWidth, WindowHeight)
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}

	if !opts.Mute {
		if err := InitAudio(); err != nil {
			log.Warn().Err(err).Msg("audio init failed (continuing without sound)")
		} else {
			go func() {
				if !awaitAudio(time.Second) {
					log.Warn().Msg("audio device not ready, continuing without sound")
					return
				}
				PlaySound(SoundStart)
				StartEngine()
			}()
			defer StopEngine()
		}
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.ClearColor(0, 0, 0, 1)

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()

	tex := UploadSprites(runner.Sprites)
	defer tex.Destroy()

	session := runner.Session
	def := runner.Def
	cam := Camera{Zoom: 1}
	seed := uint64(time.Now().UnixNano())

	session.Events.Subscribe(race.EventBounce, func(e race.Event) {
		if e.Car != session.Player.Name {
			return
		}
		if e.Data == race.BounceFinish {
			PlaySound(SoundWrongWay)
		} else {
			PlaySound(SoundBounce)
		}
		cam.AddShake(BounceShake, BounceShakeDuration)
	})
	session.Events.Subscribe(race.EventFinish, func(race.Event) {
		PlaySound(SoundFinish)
	})

	input := NewInput()
	pacer := loop.NewPacer(opts.FPS)
	log.Info().Int("fps", opts.FPS).Bool("mute", opts.Mute).Msg("window open")

	for !window.ShouldClose() {
		dt := pacer.Wait().Seconds()

		glfw.PollEvents()
		if input.JustPressed(window, glfw.KeyEscape) {
			window.SetShouldClose(true)
			continue
		}
		if input.JustPressed(window, glfw.KeyR) {
			runner.Restart()
			PlaySound(SoundStart)
		}

		runner.Step(Controls(window))
		p := session.Player
		SetEngineLevel(math.Abs(p.Velocity) / p.MaxVelocity)

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		FitCamera(&cam, def.World.Width, def.World.Height, fbW, fbH)
		cam.UpdateShake(dt, seed^session.Ticks())

		rend.BeginFrame(cam, fbW, fbH)
		rend.DrawSprite(tex.Grass, 0, 0, 0)
		rend.DrawSprite(tex.Track, 0, 0, 0)
		rend.DrawSprite(tex.Finish, float64(def.Finish.X), float64(def.Finish.Y), 0)
		rend.DrawSprite(tex.Border, 0, 0, 0)
		rend.DrawSprite(tex.PlayerCar, p.X, p.Y, p.Angle)
		if c := session.Computer; c != nil {
			rend.DrawSprite(tex.ComputerCar, c.X, c.Y, c.Angle)
		}
		rend.EndFrame()

		window.SwapBuffers()
	}
	return nil
}
