package engine

import (
	"time"

	"github.com/younwookim/acestriker/internal/application/state"
	"github.com/younwookim/acestriker/internal/domain/entity"
	"github.com/younwookim/acestriker/internal/infrastructure/config"
)

// PlayerView is the read-only player
type PlayerView struct {
	X, Y float64
	Size float64
}

// BulletView is a read-only bullet
type BulletView struct {
	ID   entity.EntityID
	X, Y float64
}

// EnemyView is a read-only enemy
type EnemyView struct {
	ID        entity.EntityID
	X, Y      float64
	Type      entity.EnemyType
	Health    int
	MaxHealth int
}

// PowerUpView is a read-only power-up
type PowerUpView struct {
	ID   entity.EntityID
	X, Y float64
	Type entity.PowerUpType
}

// Snapshot is an immutable view of committed state. Slices are in storage order.
type Snapshot struct {
	Tick uint64
	Now  time.Time

	Player   PlayerView
	Bullets  []BulletView
	Enemies  []EnemyView
	PowerUps []PowerUpView

	Score  int
	Lives  int
	Level  int
	Status state.GameState

	TripleShot          bool
	TripleShotRemaining time.Duration

	Field config.FieldConfig
}

// Level returns the level shown for a score
func Level(score, divisor int) int {
	return score/divisor + 1
}

func newSnapshot(tick uint64, now time.Time, w *entity.World, status state.GameState, cfg *config.GameConfig) *Snapshot {
	s := &Snapshot{
		Tick:                tick,
		Now:                 now,
		Player:              PlayerView{X: w.Player.X, Y: w.Player.Y, Size: w.Player.Size},
		Bullets:             make([]BulletView, len(w.Bullets)),
		Enemies:             make([]EnemyView, len(w.Enemies)),
		PowerUps:            make([]PowerUpView, len(w.PowerUps)),
		Score:               w.Score,
		Lives:               w.Lives,
		Level:               Level(w.Score, cfg.Scoring.LevelDivisor),
		Status:              status,
		TripleShot:          w.TripleShot.Active(now),
		TripleShotRemaining: w.TripleShot.Remaining(now),
		Field:               cfg.Field,
	}
	for i, b := range w.Bullets {
		s.Bullets[i] = BulletView{ID: b.ID, X: b.X, Y: b.Y}
	}
	for i, e := range w.Enemies {
		s.Enemies[i] = EnemyView{ID: e.ID, X: e.X, Y: e.Y, Type: e.Type, Health: e.Health, MaxHealth: e.MaxHealth}
	}
	for i, p := range w.PowerUps {
		s.PowerUps[i] = PowerUpView{ID: p.ID, X: p.X, Y: p.Y, Type: p.Type}
	}
	return s
}
