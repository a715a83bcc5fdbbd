// Package loop schedules engine ticks, either on its own timer or from a host frame callback.
package loop

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/younwookim/acestriker/internal/application/engine"
)

// Ticker advances a simulation by one step
type Ticker interface {
	Tick() (engine.TickResult, error)
}

// FrameFunc observes each successful tick
type FrameFunc func(res engine.TickResult)

// Runner ticks on a fixed interval until canceled, stopped, or a fatal error
type Runner struct {
	ticker   Ticker
	interval time.Duration
	logger   *log.Logger
	onFrame  FrameFunc

	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
	done     chan struct{}

	mu  sync.Mutex
	err error

	frames  atomic.Uint64
	skipped atomic.Uint64
}

// NewRunner creates a runner. A nil logger uses log.Default().
func NewRunner(t Ticker, interval time.Duration, logger *log.Logger, onFrame FrameFunc) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Runner{
		ticker:   t,
		interval: interval,
		logger:   logger,
		onFrame:  onFrame,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the loop in a goroutine. Calling it twice is a no-op.
func (r *Runner) Start(ctx context.Context) {
	if !r.running.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(r.done)
		err := r.loop(ctx)
		r.mu.Lock()
		r.err = err
		r.mu.Unlock()
	}()
}

// Run blocks until ctx is canceled, Stop is called, or a tick fails fatally.
// It returns the fatal error, or nil on a clean exit.
func (r *Runner) Run(ctx context.Context) error {
	r.Start(ctx)
	<-r.done
	return r.Err()
}

// Stop ends the loop and waits for it. Idempotent.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopChan)
	})
	if r.running.Load() {
		<-r.done
	}
}

// Done is closed when the loop exits
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Err returns the fatal error that ended the loop, if any
func (r *Runner) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Frames returns the number of committed ticks
func (r *Runner) Frames() uint64 {
	return r.frames.Load()
}

// Skipped returns the number of ticks that failed without halting
func (r *Runner) Skipped() uint64 {
	return r.skipped.Load()
}

func (r *Runner) loop(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.stopChan:
			return nil
		case <-ticker.C:
		}

		res, err := r.ticker.Tick()
		if err != nil {
			if engine.IsFatal(err) {
				r.logger.Printf("loop stopped: %v", err)
				return err
			}
			r.skipped.Add(1)
			continue
		}

		r.frames.Add(1)
		if r.onFrame != nil {
			r.onFrame(res)
		}
	}
}

// FrameDriver runs one tick per host frame (ebiten Update)
type FrameDriver struct {
	ticker  Ticker
	skipped uint64
}

// NewFrameDriver creates a frame driver
func NewFrameDriver(t Ticker) *FrameDriver {
	return &FrameDriver{ticker: t}
}

// Step runs one tick. Non-fatal failures are counted and swallowed so the
// host keeps rendering; fatal ones are returned.
func (d *FrameDriver) Step() (engine.TickResult, error) {
	res, err := d.ticker.Tick()
	if err == nil {
		return res, nil
	}
	if engine.IsFatal(err) {
		return res, err
	}
	d.skipped++
	return res, nil
}

// Skipped returns the number of frames whose tick was skipped
func (d *FrameDriver) Skipped() uint64 {
	return d.skipped
}
