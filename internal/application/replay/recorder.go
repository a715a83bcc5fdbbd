package replay

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/younwookim/acestriker/internal/application/engine"
	"github.com/younwookim/acestriker/internal/application/system"
	"github.com/younwookim/acestriker/internal/infrastructure/config"
)

// Target is what the recorder forwards input and ticks to
type Target interface {
	system.InputSink
	Reset() error
	Tick() (engine.TickResult, error)
}

// Recorder forwards input to its target and records it per tick
type Recorder struct {
	target Target

	// seq orders forwarded input against ticks
	seq sync.Mutex

	mu        sync.Mutex
	data      ReplayData
	start     time.Time
	pending   []InputEvent
	recording bool
}

var _ Target = (*Recorder)(nil)

// NewRecorder creates a recorder. start is the clock origin for frame times.
func NewRecorder(target Target, seed int64, cfg *config.GameConfig, start time.Time) *Recorder {
	return &Recorder{
		target: target,
		data: ReplayData{
			Version:   Version,
			Session:   uuid.New().String(),
			Seed:      seed,
			StartTime: start.UTC().Format(time.RFC3339Nano),
			Config:    cfg,
			Frames:    make([]FrameInput, 0, 3600), // ~1 minute at 60fps
		},
		start:     start,
		recording: true,
	}
}

func (r *Recorder) record(ev InputEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		r.pending = append(r.pending, ev)
	}
}

// KeyDown records and forwards a key press
func (r *Recorder) KeyDown(code string) {
	r.seq.Lock()
	defer r.seq.Unlock()
	r.record(InputEvent{K: InputKeyDown, C: code})
	r.target.KeyDown(code)
}

// KeyUp records and forwards a key release
func (r *Recorder) KeyUp(code string) {
	r.seq.Lock()
	defer r.seq.Unlock()
	r.record(InputEvent{K: InputKeyUp, C: code})
	r.target.KeyUp(code)
}

// SetAbsolutePlayerTarget records and forwards a pointer target.
// NaN targets are forwarded unrecorded since the engine ignores them.
func (r *Recorder) SetAbsolutePlayerTarget(x, y float64) {
	r.seq.Lock()
	defer r.seq.Unlock()
	if !math.IsNaN(x) && !math.IsNaN(y) {
		r.record(InputEvent{K: InputPointer, X: encodable(x), Y: encodable(y)})
	}
	r.target.SetAbsolutePlayerTarget(x, y)
}

// encodable maps an infinite coordinate to the largest finite one.
// Both clamp to the same field edge.
func encodable(v float64) float64 {
	switch {
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	}
	return v
}

// ClearAbsolutePlayerTarget records and forwards a pointer release
func (r *Recorder) ClearAbsolutePlayerTarget() {
	r.seq.Lock()
	defer r.seq.Unlock()
	r.record(InputEvent{K: InputPointerOff})
	r.target.ClearAbsolutePlayerTarget()
}

// Fire records and forwards a fire request
func (r *Recorder) Fire() {
	r.seq.Lock()
	defer r.seq.Unlock()
	r.record(InputEvent{K: InputFire})
	r.target.Fire()
}

// Reset records and forwards a session reset
func (r *Recorder) Reset() error {
	r.seq.Lock()
	defer r.seq.Unlock()
	r.record(InputEvent{K: InputReset})
	return r.target.Reset()
}

// Tick ticks the target and records the frame. Input forwarded
// concurrently lands wholly before or after the tick.
func (r *Recorder) Tick() (engine.TickResult, error) {
	r.seq.Lock()
	defer r.seq.Unlock()

	res, err := r.target.Tick()
	if err == nil || !engine.IsFatal(err) {
		r.RecordTick(res)
	}
	return res, err
}

// RecordTick closes the current frame with the tick's clock reading
func (r *Recorder) RecordTick(res engine.TickResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return
	}

	r.data.Frames = append(r.data.Frames, FrameInput{
		F:  len(r.data.Frames),
		T:  int64(res.Now.Sub(r.start)),
		In: r.pending,
	})
	r.pending = nil
}

// Checkpoint stores snap as the expected end state without stopping
func (r *Recorder) Checkpoint(snap *engine.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkpoint(snap)
}

// Finish stops recording and stores the final committed state
func (r *Recorder) Finish(snap *engine.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.recording = false
	r.pending = nil
	r.checkpoint(snap)
}

func (r *Recorder) checkpoint(snap *engine.Snapshot) {
	if snap == nil {
		return
	}
	r.data.Final = &Summary{
		Tick:   snap.Tick,
		Score:  snap.Score,
		Lives:  snap.Lives,
		Status: snap.Status.String(),
	}
}

// Save writes the recording; the format follows the file extension
func (r *Recorder) Save(filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}
	return SaveReplay(filename, &r.data)
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data.Frames)
}

// Data returns a copy of the recording
func (r *Recorder) Data() ReplayData {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := r.data
	d.Frames = append([]FrameInput(nil), r.data.Frames...)
	return d
}

// GenerateFilename creates a filename based on current time
func GenerateFilename(ext string) string {
	return fmt.Sprintf("replay_%s%s", time.Now().Format("20060102_150405"), ext)
}
