package system

// Intent is an abstract movement direction
type Intent uint8

const (
	IntentLeft Intent = 1 << iota
	IntentRight
	IntentUp
	IntentDown
)

// Key codes understood by the engine (DOM-style names)
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyA          = "KeyA"
	KeyD          = "KeyD"
	KeyW          = "KeyW"
	KeyS          = "KeyS"
	KeySpace      = "Space"
)

var keyIntents = map[string]Intent{
	KeyArrowLeft:  IntentLeft,
	KeyA:          IntentLeft,
	KeyArrowRight: IntentRight,
	KeyD:          IntentRight,
	KeyArrowUp:    IntentUp,
	KeyW:          IntentUp,
	KeyArrowDown:  IntentDown,
	KeyS:          IntentDown,
}

// KeyIntent maps a key code to its movement intent
func KeyIntent(code string) (Intent, bool) {
	i, ok := keyIntents[code]
	return i, ok
}

// IsFireKey reports whether a key-down of code requests a shot
func IsFireKey(code string) bool {
	return code == KeySpace
}

// IntentSet is the set of currently held movement directions
type IntentSet uint8

// Has reports whether i is held
func (s IntentSet) Has(i Intent) bool {
	return s&IntentSet(i) != 0
}

// Add marks i as held
func (s *IntentSet) Add(i Intent) {
	*s |= IntentSet(i)
}

// Remove releases i
func (s *IntentSet) Remove(i Intent) {
	*s &^= IntentSet(i)
}

// Empty reports whether no direction is held
func (s IntentSet) Empty() bool {
	return s == 0
}

// Vector returns the unit direction per axis. Opposite directions cancel.
func (s IntentSet) Vector() (dx, dy float64) {
	if s.Has(IntentLeft) {
		dx--
	}
	if s.Has(IntentRight) {
		dx++
	}
	if s.Has(IntentUp) {
		dy--
	}
	if s.Has(IntentDown) {
		dy++
	}
	return dx, dy
}

// PointerTarget is an absolute pointer/touch position in field coordinates.
// The player is centered on it while Active.
type PointerTarget struct {
	X, Y   float64
	Active bool
}
