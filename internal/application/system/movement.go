package system

import (
	"math"

	"github.com/younwookim/acestriker/internal/domain/entity"
	"github.com/younwookim/acestriker/internal/infrastructure/config"
)

// MovementSystem advances positions once per tick. It only moves and filters.
type MovementSystem struct {
	config *config.GameConfig
}

// NewMovementSystem creates a new movement system
func NewMovementSystem(cfg *config.GameConfig) *MovementSystem {
	return &MovementSystem{config: cfg}
}

// Update moves every entity store in order: player, bullets, enemies, power-ups
func (s *MovementSystem) Update(w *entity.World, intents IntentSet, target PointerTarget) {
	s.MovePlayer(w, intents, target)
	s.MoveBullets(w)
	s.MoveEnemies(w)
	s.MovePowerUps(w)
}

// MovePlayer applies the pointer target when active, the held intents otherwise
func (s *MovementSystem) MovePlayer(w *entity.World, intents IntentSet, target PointerTarget) {
	field := s.config.Field
	p := &w.Player

	if target.Active && !math.IsNaN(target.X) && !math.IsNaN(target.Y) {
		p.MoveTo(target.X-p.Size/2, target.Y-p.Size/2, field.Width, field.Height)
		return
	}

	dx, dy := intents.Vector()
	speed := s.config.Player.Speed
	p.MoveTo(p.X+dx*speed, p.Y+dy*speed, field.Width, field.Height)
}

// MoveBullets moves bullets up and drops the ones past the field top
func (s *MovementSystem) MoveBullets(w *entity.World) {
	speed := s.config.Bullet.Speed
	kept := w.Bullets[:0]
	for _, b := range w.Bullets {
		b.Y -= speed
		if b.OffTop() {
			continue
		}
		kept = append(kept, b)
	}
	w.Bullets = kept
}

// EnemySpeed returns the per-tick enemy fall speed for a score
func (s *MovementSystem) EnemySpeed(score int) float64 {
	return s.config.Enemy.BaseSpeed + float64(score/s.config.Enemy.SpeedScoreStep)
}

// MoveEnemies moves enemies down and drops the ones past the field bottom
func (s *MovementSystem) MoveEnemies(w *entity.World) {
	speed := s.EnemySpeed(w.Score)
	height := s.config.Field.Height
	kept := w.Enemies[:0]
	for _, e := range w.Enemies {
		e.Y += speed
		if e.Y >= height {
			continue
		}
		kept = append(kept, e)
	}
	w.Enemies = kept
}

// MovePowerUps moves power-ups down and drops the ones past the field bottom
func (s *MovementSystem) MovePowerUps(w *entity.World) {
	speed := s.config.PowerUp.FallSpeed
	height := s.config.Field.Height
	kept := w.PowerUps[:0]
	for _, p := range w.PowerUps {
		p.Y += speed
		if p.Y >= height {
			continue
		}
		kept = append(kept, p)
	}
	w.PowerUps = kept
}
