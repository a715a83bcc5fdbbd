// Package playing provides the main gameplay scene.
package playing

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/younwookim/acestriker/internal/application/engine"
	"github.com/younwookim/acestriker/internal/application/loop"
	"github.com/younwookim/acestriker/internal/application/replay"
	"github.com/younwookim/acestriker/internal/application/scene"
	"github.com/younwookim/acestriker/internal/application/sfx"
	"github.com/younwookim/acestriker/internal/application/state"
	"github.com/younwookim/acestriker/internal/application/system"
	"github.com/younwookim/acestriker/internal/infrastructure/config"
)

// Options tunes the scene
type Options struct {
	// RecordPath enables input recording when not empty
	RecordPath string
	// Cues plays event sounds; nil keeps the scene silent
	Cues   sfx.Cues
	Logger *log.Logger
}

// controls are frontend-only keys that never reach the engine
type controls struct {
	quit bool
	save bool
}

// Playing is the main gameplay scene
type Playing struct {
	config      *config.GameConfig
	engine      *engine.Engine
	driver      *loop.FrameDriver
	inputSystem *system.InputSystem
	sink        replay.Target
	cues        sfx.Cues
	logger      *log.Logger
	face        text.Face
	screenW     int
	screenH     int

	// Feedback
	flashFrames int
	bursts      []burst

	// Input recording
	recorder       *replay.Recorder
	recordFilename string

	exited bool
}

// New creates the scene around a started engine
func New(cfg *config.GameConfig, eng *engine.Engine, opts Options) *Playing {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	p := &Playing{
		config:         cfg,
		engine:         eng,
		driver:         loop.NewFrameDriver(eng),
		inputSystem:    system.NewInputSystem(),
		sink:           eng,
		cues:           opts.Cues,
		logger:         logger,
		face:           text.NewGoXFace(basicfont.Face7x13),
		screenW:        int(cfg.Field.Width),
		screenH:        int(cfg.Field.Height),
		recordFilename: opts.RecordPath,
	}

	if opts.RecordPath != "" {
		start := eng.Snapshot().Now
		p.recorder = replay.NewRecorder(eng, eng.Seed(), cfg, start)
		p.sink = p.recorder
		p.driver = loop.NewFrameDriver(p.recorder)
		logger.Printf("Recording enabled: %s (seed: %d)", opts.RecordPath, eng.Seed())
	}

	return p
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	ctl := controls{
		quit: inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		save: inpututil.IsKeyJustPressed(ebiten.KeyF5),
	}
	if err := p.advance(p.inputSystem.GetInput(), ctl); err != nil {
		return nil, err
	}
	return nil, nil // nil = stay on this scene
}

// advance applies one frame of input and ticks the engine once
func (p *Playing) advance(in system.InputState, ctl controls) error {
	if ctl.quit {
		return ebiten.Termination
	}
	if ctl.save && p.recorder != nil {
		p.saveRecording()
	}

	if p.engine.Snapshot().Status == state.StateGameOver {
		if in.Confirm || in.Click || pressed(in, system.KeySpace) {
			if err := p.sink.Reset(); err != nil {
				return err
			}
			p.bursts = p.bursts[:0]
			p.flashFrames = 0
		}
	} else {
		in.Apply(p.sink)
	}

	res, err := p.driver.Step()
	if err != nil {
		p.logger.Printf("engine stopped: %v", err)
		return err
	}

	p.updateFeedback()
	p.handleEvents(res.Events)
	return nil
}

func pressed(in system.InputState, code string) bool {
	for _, c := range in.Pressed {
		if c == code {
			return true
		}
	}
	return false
}

// handleEvents turns tick events into sounds and effects
func (p *Playing) handleEvents(events []engine.Event) {
	sfx.Play(p.cues, events)

	for _, ev := range events {
		switch ev.Kind {
		case engine.EventEnemyDestroyed:
			size := p.config.Enemy.Size
			p.bursts = append(p.bursts, newBurst(ev.X+size/2, ev.Y+size/2, size))
		case engine.EventPlayerHit:
			p.flashFrames = playerFlashFrames
		case engine.EventGameOver:
			if p.recorder != nil {
				p.saveRecording()
			}
		}
	}
}

// saveRecording writes the recording so far; recording continues
func (p *Playing) saveRecording() {
	p.recorder.Checkpoint(p.engine.Snapshot())
	if err := p.recorder.Save(p.recordFilename); err != nil {
		p.logger.Printf("Failed to save recording: %v", err)
		return
	}
	p.logger.Printf("Recording saved: %s (%d frames)", p.recordFilename, p.recorder.FrameCount())
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {}

// OnExit saves the recording and stops the engine
func (p *Playing) OnExit() {
	if p.exited {
		return
	}
	p.exited = true

	if p.recorder != nil && p.recorder.IsRecording() {
		p.recorder.Finish(p.engine.Snapshot())
		if err := p.recorder.Save(p.recordFilename); err != nil {
			p.logger.Printf("Failed to save recording: %v", err)
		} else {
			p.logger.Printf("Recording saved: %s (%d frames)", p.recordFilename, p.recorder.FrameCount())
		}
	}
	p.engine.Stop()
}
