package game

import (
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundBounce SoundKind = iota
	SoundWrongWay
	SoundFinish
	SoundStart
)

// audioPlayer is the part of oto.Player the effects and the engine drive.
type audioPlayer interface {
	Play()
	IsPlaying() bool
	SetVolume(volume float64)
	Close() error
}

// AudioSystem manages procedural sound effects.
type AudioSystem struct {
	ready     chan struct{}
	newPlayer func(io.Reader) audioPlayer

	// mu guards the engine fields; the hum is started off the render goroutine.
	mu            sync.Mutex
	enginePlayer  audioPlayer
	engine        *engineReader
	engineStopped bool
}

var globalAudio *AudioSystem

// activeBounces limits overlapping bounce thuds when a car grinds along a wall.
var activeBounces int32

var sfxVolume float64 = 0.58
var engineVolume float64 = 0.12

// InitAudio initializes the audio system.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{
		ready:     ready,
		newPlayer: func(r io.Reader) audioPlayer { return ctx.NewPlayer(r) },
	}
	return nil
}

// awaitAudio blocks until the audio device is ready or the timeout passes.
func awaitAudio(timeout time.Duration) bool {
	if globalAudio == nil {
		return false
	}
	select {
	case <-globalAudio.ready:
		return true
	case <-time.After(timeout):
		return false
	}
}

func audioReady() bool {
	if globalAudio == nil {
		return false
	}
	select {
	case <-globalAudio.ready:
		return true
	default:
		return false
	}
}

// PlaySound plays a procedurally generated sound effect.
func PlaySound(kind SoundKind) {
	if !audioReady() {
		return
	}
	bounce := kind == SoundBounce || kind == SoundWrongWay
	if bounce {
		if atomic.LoadInt32(&activeBounces) >= 2 {
			return
		}
		atomic.AddInt32(&activeBounces, 1)
	}
	samples := generateSound(kind)
	go func() {
		if bounce {
			defer atomic.AddInt32(&activeBounces, -1)
		}
		reader := &soundReader{data: samples}
		player := globalAudio.newPlayer(reader)
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

// ---- Sound effects -------------------------------------------------------

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundBounce:
		return genBounce(85)
	case SoundWrongWay:
		return genBounce(140)
	case SoundFinish:
		return genFinish()
	case SoundStart:
		return genStart()
	}
	return nil
}

// genBounce: low body thump plus a short scrape of filtered noise.
func genBounce(pitch float64) []byte {
	n := int(0.18 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(24601)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		thump := fm(t, pitch*(1-0.4*p), 0.5, 1.4) * math.Exp(-p*14)
		lp = lp*0.82 + lcg(&seed)*0.18
		scrape := lp * math.Exp(-p*9) * 0.4
		putStereoF32(buf, i, softSat((thump*0.7+scrape)*0.8))
	}
	return buf
}

// genFinish: ascending FM bell arpeggio, each note ringing over the next.
func genFinish() []byte {
	notes := []float64{523.25, 659.25, 783.99, 1046.5}
	noteStep := int(0.08 * SampleRate)
	total := len(notes)*noteStep + int(0.3*SampleRate)
	mix := make([]float64, total)

	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.003, 0.65, 0.04, 0.28)
			s := fm(t, freq, 3.5, 5.5*env) * env * 0.28
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.07
			mix[start+j] += s
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genStart: short falling blip.
func genStart() []byte {
	n := SampleRate * 90 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := 1400 - 700*p
		s := fm(t, freq, 1.0, 0.6) * env * 0.38
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// ---- Engine hum ------------------------------------------------------------

// engineReader streams an endless engine drone whose pitch follows the
// throttle level stored in level (float64 bits, 0..1).
type engineReader struct {
	level atomic.Uint64
	phase float64
	lp    float64
	seed  uint64
	cur   float64 // smoothed level
}

func (e *engineReader) Read(p []byte) (int, error) {
	samples := len(p) / 8
	target := math.Float64frombits(e.level.Load())
	for i := 0; i < samples; i++ {
		e.cur += (target - e.cur) * 0.0005
		freq := 38 + 70*e.cur
		e.phase += freq / SampleRate
		if e.phase >= 1 {
			e.phase--
		}
		// Firing pulses: a sharp decaying saw per cycle.
		pulse := (1 - e.phase) * math.Exp(-e.phase*4)
		e.lp = e.lp*0.9 + lcg(&e.seed)*0.1
		s := (pulse*0.6 + e.lp*0.25) * (0.35 + 0.65*e.cur)
		putStereoF32(p, i, softSat(s))
	}
	return samples * 8, nil
}

// StartEngine begins the looping engine hum. It does nothing once
// StopEngine has been called.
func StartEngine() {
	if !audioReady() {
		return
	}
	a := globalAudio
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.engineStopped || a.enginePlayer != nil {
		return
	}
	reader := &engineReader{seed: 8675309}
	player := a.newPlayer(reader)
	player.SetVolume(engineVolume)
	a.engine = reader
	a.enginePlayer = player
	player.Play()
}

// SetEngineLevel sets the hum pitch from the player's speed fraction.
func SetEngineLevel(level float64) {
	if globalAudio == nil {
		return
	}
	globalAudio.mu.Lock()
	engine := globalAudio.engine
	globalAudio.mu.Unlock()
	if engine == nil {
		return
	}
	engine.level.Store(math.Float64bits(clampF(level, 0, 1)))
}

// StopEngine silences the hum for good.
func StopEngine() {
	if globalAudio == nil {
		return
	}
	a := globalAudio
	a.mu.Lock()
	defer a.mu.Unlock()
	a.engineStopped = true
	if a.enginePlayer == nil {
		return
	}
	a.enginePlayer.Close()
	a.enginePlayer = nil
	a.engine = nil
}
