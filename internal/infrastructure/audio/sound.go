// Package audio synthesizes short procedural sound cues.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Cue is a named sound effect
type Cue int

const (
	CueShot Cue = iota
	CueEnemyHit
	CueExplosion
	CuePlayerHit
	CuePickup
	CueGameOver
)

// SoundManager mixes cues onto the speaker
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	initialized bool
	muted       bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:  mixer,
		master: &effects.Volume{Streamer: mixer, Base: 2, Volume: -1},
	}
}

// Initialize opens the audio device. Without it every Play is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.master)
	sm.initialized = true
	return nil
}

// Cleanup silences and detaches all cues
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted toggles output without dropping queued cues
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = muted
	if sm.initialized {
		speaker.Lock()
		sm.master.Silent = muted
		speaker.Unlock()
		return
	}
	sm.master.Silent = muted
}

// Muted reports whether output is muted
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Play queues a cue
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	s := Streamer(c)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Streamer builds a fresh, finite streamer for a cue
func Streamer(c Cue) beep.Streamer {
	switch c {
	case CueShot:
		return take(60*time.Millisecond, NewSweepGenerator(sampleRate, 880, 440, 60*time.Millisecond, 0.25))
	case CueEnemyHit:
		return take(50*time.Millisecond, NewSweepGenerator(sampleRate, 300, 260, 50*time.Millisecond, 0.3))
	case CueExplosion:
		return take(250*time.Millisecond, NewNoiseGenerator(sampleRate, 12, 0.4))
	case CuePlayerHit:
		return take(200*time.Millisecond, NewSweepGenerator(sampleRate, 220, 70, 200*time.Millisecond, 0.4))
	case CuePickup:
		return beep.Seq(
			take(70*time.Millisecond, NewSweepGenerator(sampleRate, 660, 660, 70*time.Millisecond, 0.25)),
			take(90*time.Millisecond, NewSweepGenerator(sampleRate, 990, 990, 90*time.Millisecond, 0.25)),
		)
	case CueGameOver:
		return take(900*time.Millisecond, NewSweepGenerator(sampleRate, 440, 55, 900*time.Millisecond, 0.35))
	default:
		return nil
	}
}

func take(d time.Duration, s beep.Streamer) beep.Streamer {
	return beep.Take(sampleRate.N(d), s)
}

// SweepGenerator is a square-ish tone gliding linearly between two pitches
type SweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	samples  int
	gain     float64
	phase    float64
	pos      int
}

// NewSweepGenerator creates a tone sweep over d
func NewSweepGenerator(sr beep.SampleRate, from, to float64, d time.Duration, gain float64) *SweepGenerator {
	n := sr.N(d)
	if n < 1 {
		n = 1
	}
	return &SweepGenerator{sr: sr, from: from, to: to, samples: n, gain: gain}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.samples), 1)
		freq := g.from + (g.to-g.from)*progress

		// Soft square: sine plus a third harmonic
		v := math.Sin(2*math.Pi*g.phase) + 0.3*math.Sin(6*math.Pi*g.phase)
		v *= g.gain * (1 - progress)

		samples[i][0] = v
		samples[i][1] = v

		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}

// NoiseGenerator is an exponentially decaying noise burst
type NoiseGenerator struct {
	sr    beep.SampleRate
	decay float64
	gain  float64
	seed  uint32
	pos   int
}

// NewNoiseGenerator creates a noise burst; decay is the envelope rate per second
func NewNoiseGenerator(sr beep.SampleRate, decay, gain float64) *NoiseGenerator {
	return &NoiseGenerator{sr: sr, decay: decay, gain: gain, seed: 1}
}

func (g *NoiseGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		g.seed = g.seed*1664525 + 1013904223
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1

		v := g.gain * math.Exp(-t*g.decay) * noise
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *NoiseGenerator) Err() error {
	return nil
}
