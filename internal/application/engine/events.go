package engine

import "github.com/younwookim/acestriker/internal/domain/entity"

// EventKind classifies something that happened during a tick
type EventKind int

const (
	EventShot EventKind = iota
	EventEnemyHit
	EventEnemyDestroyed
	EventPlayerHit
	EventPowerUp
	EventGameOver
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	switch k {
	case EventShot:
		return "Shot"
	case EventEnemyHit:
		return "EnemyHit"
	case EventEnemyDestroyed:
		return "EnemyDestroyed"
	case EventPlayerHit:
		return "PlayerHit"
	case EventPowerUp:
		return "PowerUp"
	case EventGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Event is a tick outcome for feedback collaborators (audio, effects)
type Event struct {
	Kind EventKind
	ID   entity.EntityID // subject entity, if any
	X, Y float64
	// Count is the number of bullets for EventShot, the remaining
	// health for EventEnemyHit and the score gained for EventEnemyDestroyed
	Count int
}
