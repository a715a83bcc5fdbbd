package state

// GameState represents the current state of a session
type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "PLAYING"
	case StateGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// Running reports whether the simulation advances in this state
func (s GameState) Running() bool {
	return s == StatePlaying
}
