package main

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/acestriker/internal/application/engine"
	"github.com/younwookim/acestriker/internal/application/loop"
	"github.com/younwookim/acestriker/internal/application/replay"
	"github.com/younwookim/acestriker/internal/application/sfx"
	"github.com/younwookim/acestriker/internal/application/state"
	"github.com/younwookim/acestriker/internal/infrastructure/config"
	"github.com/younwookim/acestriker/internal/infrastructure/terminal"
)

type appOptions struct {
	RecordPath  string
	HoldTimeout time.Duration
	Cues        sfx.Cues
	Logger      *log.Logger
}

// app wires terminal input and rendering to a running engine
type app struct {
	screen   tcell.Screen
	engine   *engine.Engine
	target   replay.Target
	renderer *terminal.Renderer
	holds    *terminal.HoldTracker
	cues     sfx.Cues
	logger   *log.Logger

	recorder   *replay.Recorder
	recordPath string
}

func newApp(screen tcell.Screen, cfg *config.GameConfig, eng *engine.Engine, opts appOptions) *app {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	a := &app{
		screen:     screen,
		engine:     eng,
		target:     eng,
		renderer:   terminal.NewRenderer(screen, cfg),
		holds:      terminal.NewHoldTracker(opts.HoldTimeout),
		cues:       opts.Cues,
		logger:     logger,
		recordPath: opts.RecordPath,
	}
	if opts.RecordPath != "" {
		a.recorder = replay.NewRecorder(eng, eng.Seed(), cfg, eng.Snapshot().Now)
		a.target = a.recorder
		logger.Printf("Recording enabled: %s (seed: %d)", opts.RecordPath, eng.Seed())
	}
	return a
}

// ticker is what the loop should tick; the recorder when recording
func (a *app) ticker() loop.Ticker {
	return a.target
}

// handleEvent applies one terminal event and reports whether to quit
func (a *app) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		switch terminal.Decode(ev) {
		case terminal.ActionQuit:
			return true
		case terminal.ActionSave:
			if a.recorder != nil {
				a.save()
			}
			return false
		case terminal.ActionConfirm:
			if a.engine.Snapshot().Status == state.StateGameOver {
				a.holds.ReleaseAll(a.target)
				if err := a.target.Reset(); err != nil {
					a.logger.Printf("reset failed: %v", err)
				}
				return false
			}
		}
		if code, ok := terminal.KeyCode(ev); ok {
			a.holds.Press(code, now, a.target)
		}
	}
	return false
}

// onFrame runs after every committed tick
func (a *app) onFrame(res engine.TickResult) {
	a.holds.Expire(res.Now, a.target)
	sfx.Play(a.cues, res.Events)
	for _, ev := range res.Events {
		if ev.Kind == engine.EventGameOver && a.recorder != nil {
			a.save()
		}
	}
	a.renderer.Draw(a.engine.Snapshot())
}

func (a *app) save() {
	a.recorder.Checkpoint(a.engine.Snapshot())
	if err := a.recorder.Save(a.recordPath); err != nil {
		a.logger.Printf("Failed to save recording: %v", err)
		return
	}
	a.logger.Printf("Recording saved: %s (%d frames)", a.recordPath, a.recorder.FrameCount())
}

// close finishes the recording and stops the engine
func (a *app) close() {
	if a.recorder != nil && a.recorder.IsRecording() {
		a.recorder.Finish(a.engine.Snapshot())
		if err := a.recorder.Save(a.recordPath); err != nil {
			a.logger.Printf("Failed to save recording: %v", err)
		}
	}
	a.engine.Stop()
}
