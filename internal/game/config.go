package game

// Window defaults. The camera fits the whole track into whatever
// framebuffer the window ends up with.
const (
	WindowWidth  = 810
	WindowHeight = 810
	WindowTitle  = "Racing Game!"
)

// Simulation rate (ticks per second).
const FPS = 60

// Camera shake on bounces (world pixels, seconds).
const (
	BounceShake         = 2.5
	BounceShakeDuration = 0.18
)
