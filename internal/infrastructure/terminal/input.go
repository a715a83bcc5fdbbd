package terminal

import (
	"sort"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/acestriker/internal/application/system"
)

// DefaultHoldTimeout covers the gap before a terminal's key auto-repeat starts
const DefaultHoldTimeout = 150 * time.Millisecond

// Action is a frontend command decoded from a terminal event
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionConfirm
	ActionSave
)

// KeyCode maps a terminal key event to an engine key code
func KeyCode(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return system.KeyArrowLeft, true
	case tcell.KeyRight:
		return system.KeyArrowRight, true
	case tcell.KeyUp:
		return system.KeyArrowUp, true
	case tcell.KeyDown:
		return system.KeyArrowDown, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return system.KeyA, true
		case 'd', 'D':
			return system.KeyD, true
		case 'w', 'W':
			return system.KeyW, true
		case 's', 'S':
			return system.KeyS, true
		case ' ':
			return system.KeySpace, true
		}
	}
	return "", false
}

// Decode classifies a key event as a frontend action
func Decode(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyEnter:
		return ActionConfirm
	case tcell.KeyF5:
		return ActionSave
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return ActionQuit
		case ' ':
			return ActionConfirm
		}
	}
	return ActionNone
}

// HoldTracker turns repeated key presses into held keys.
// A key is released once no press arrived for the timeout.
type HoldTracker struct {
	mu      sync.Mutex
	timeout time.Duration
	held    map[string]time.Time
}

// NewHoldTracker creates a tracker; a non-positive timeout uses DefaultHoldTimeout
func NewHoldTracker(timeout time.Duration) *HoldTracker {
	if timeout <= 0 {
		timeout = DefaultHoldTimeout
	}
	return &HoldTracker{
		timeout: timeout,
		held:    make(map[string]time.Time),
	}
}

// Press records a press of code at now. The fire key fires on every press;
// movement keys reach sink as KeyDown once per hold.
func (h *HoldTracker) Press(code string, now time.Time, sink system.InputSink) {
	if system.IsFireKey(code) {
		sink.Fire()
		return
	}
	if _, ok := system.KeyIntent(code); !ok {
		return
	}

	h.mu.Lock()
	_, wasHeld := h.held[code]
	h.held[code] = now
	h.mu.Unlock()

	if !wasHeld {
		sink.KeyDown(code)
	}
}

// Expire releases keys whose last press is older than the timeout
func (h *HoldTracker) Expire(now time.Time, sink system.InputSink) {
	h.mu.Lock()
	var released []string
	for code, last := range h.held {
		if now.Sub(last) >= h.timeout {
			released = append(released, code)
			delete(h.held, code)
		}
	}
	h.mu.Unlock()

	sort.Strings(released)
	for _, code := range released {
		sink.KeyUp(code)
	}
}

// ReleaseAll releases every held key
func (h *HoldTracker) ReleaseAll(sink system.InputSink) {
	h.mu.Lock()
	released := make([]string, 0, len(h.held))
	for code := range h.held {
		released = append(released, code)
	}
	h.held = make(map[string]time.Time)
	h.mu.Unlock()

	sort.Strings(released)
	for _, code := range released {
		sink.KeyUp(code)
	}
}

// Held reports whether code is currently held
func (h *HoldTracker) Held(code string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.held[code]
	return ok
}
