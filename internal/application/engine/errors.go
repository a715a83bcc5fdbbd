package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotStarted is returned by Tick before Start
	ErrNotStarted = errors.New("engine not started")
	// ErrStopped is returned after Stop
	ErrStopped = errors.New("engine stopped")
	// ErrHalted is returned by every tick after a fatal commit failure
	ErrHalted = errors.New("engine halted")
	// ErrTickSkipped marks a tick whose pipeline failed; state is unchanged
	ErrTickSkipped = errors.New("tick skipped")
	// ErrSnapshotCorrupt marks a working state that failed commit validation
	ErrSnapshotCorrupt = errors.New("snapshot corrupt")
)

// TickError describes a failed tick
type TickError struct {
	Tick  uint64
	Step  string // pipeline step, or "commit"
	Fatal bool
	Err   error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d (%s): %v", e.Tick, e.Step, e.Err)
}

func (e *TickError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether a scheduler should stop ticking after err
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var te *TickError
	if errors.As(err, &te) {
		return te.Fatal
	}
	return errors.Is(err, ErrHalted) || errors.Is(err, ErrStopped) || errors.Is(err, ErrNotStarted)
}
