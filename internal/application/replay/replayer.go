package replay

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/younwookim/acestriker/internal/application/engine"
	"github.com/younwookim/acestriker/internal/infrastructure/clock"
	"github.com/younwookim/acestriker/internal/infrastructure/config"
)

// ErrMismatch is returned when a re-simulation does not reach the recorded result
var ErrMismatch = errors.New("replay mismatch")

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// Next returns the next frame and advances
func (r *Replayer) Next() (FrameInput, bool) {
	if r.frame >= len(r.data.Frames) {
		return FrameInput{}, false
	}
	fi := r.data.Frames[r.frame]
	r.frame++
	return fi, true
}

// Apply replays one frame's input against t, in recorded order
func (r *Replayer) Apply(fi FrameInput, t Target) error {
	for _, ev := range fi.In {
		switch ev.K {
		case InputKeyDown:
			t.KeyDown(ev.C)
		case InputKeyUp:
			t.KeyUp(ev.C)
		case InputPointer:
			t.SetAbsolutePlayerTarget(ev.X, ev.Y)
		case InputPointerOff:
			t.ClearAbsolutePlayerTarget()
		case InputFire:
			t.Fire()
		case InputReset:
			if err := t.Reset(); err != nil {
				return fmt.Errorf("frame %d reset: %w", fi.F, err)
			}
		default:
			return fmt.Errorf("frame %d: unknown input kind %q", fi.F, ev.K)
		}
	}
	return nil
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// Run re-simulates a recording headlessly on a mock clock and returns the
// final snapshot. The recorded config wins over cfg when present.
func Run(data *ReplayData, cfg *config.GameConfig, logger *log.Logger) (*engine.Snapshot, error) {
	if data.Config != nil {
		cfg = data.Config
	}
	if cfg == nil {
		return nil, fmt.Errorf("replay has no config")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	start, err := time.Parse(time.RFC3339Nano, data.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", data.StartTime, err)
	}

	clk := clock.NewMock(start)
	eng := engine.New(cfg, engine.WithClock(clk), engine.WithSeed(data.Seed), engine.WithLogger(logger))
	if err := eng.Start(); err != nil {
		return nil, err
	}
	defer eng.Stop()

	rp := NewReplayer(*data)
	for {
		fi, ok := rp.Next()
		if !ok {
			break
		}
		clk.Set(start.Add(time.Duration(fi.T)))
		if err := rp.Apply(fi, eng); err != nil {
			return nil, err
		}
		if _, err := eng.Tick(); err != nil && engine.IsFatal(err) {
			return nil, fmt.Errorf("frame %d: %w", fi.F, err)
		}
	}

	return eng.Snapshot(), nil
}

// Verify re-simulates a recording and checks it against the recorded summary
func Verify(data *ReplayData, cfg *config.GameConfig, logger *log.Logger) (*engine.Snapshot, error) {
	snap, err := Run(data, cfg, logger)
	if err != nil {
		return nil, err
	}
	if data.Final == nil {
		return snap, nil
	}

	got := Summary{Tick: snap.Tick, Score: snap.Score, Lives: snap.Lives, Status: snap.Status.String()}
	if got != *data.Final {
		return snap, fmt.Errorf("%w: want %+v, got %+v", ErrMismatch, *data.Final, got)
	}
	return snap, nil
}
