package system

import (
	"time"

	"github.com/younwookim/acestriker/internal/domain/entity"
	"github.com/younwookim/acestriker/internal/infrastructure/config"
)

// CombatSystem resolves bullet, enemy, player and power-up contacts
type CombatSystem struct {
	config *config.GameConfig

	// scratch, reused across ticks
	consumed map[entity.EntityID]struct{}
}

// NewCombatSystem creates a new combat system
func NewCombatSystem(cfg *config.GameConfig) *CombatSystem {
	return &CombatSystem{
		config:   cfg,
		consumed: make(map[entity.EntityID]struct{}, 8),
	}
}

// CombatResult summarizes one collision pass
type CombatResult struct {
	Hits        []entity.Enemy // damaged but alive, health after the hit
	Kills       []entity.Enemy // destroyed by bullets
	ScoreGained int

	PlayerHit bool
	LivesLost int
	GameOver  bool

	PowerUps []entity.PowerUp // collected
}

// KillScore returns the score for destroying an enemy of type t
func (s *CombatSystem) KillScore(t entity.EnemyType) int {
	if t == entity.EnemyTank {
		return s.config.Enemy.Tank.Score
	}
	return s.config.Enemy.RegularScore
}

// Resolve runs one collision pass over w. Enemies and bullets are visited in
// storage order; a bullet damages at most one enemy and an enemy takes at
// most one bullet per pass. The player loses at most one life per pass.
func (s *CombatSystem) Resolve(w *entity.World, now time.Time) CombatResult {
	var res CombatResult
	clear(s.consumed)

	playerBox := w.Player.Hitbox()
	kept := w.Enemies[:0]

	for _, enemy := range w.Enemies {
		box := enemy.Hitbox()

		if b, ok := s.firstBullet(w.Bullets, box); ok {
			s.consumed[b.ID] = struct{}{}
			if enemy.TakeDamage(1) {
				res.Kills = append(res.Kills, enemy)
				res.ScoreGained += s.KillScore(enemy.Type)
				continue
			}
			res.Hits = append(res.Hits, enemy)
		}

		if box.Overlaps(playerBox) {
			res.PlayerHit = true
			continue
		}

		kept = append(kept, enemy)
	}
	w.Enemies = kept

	if len(s.consumed) > 0 {
		bullets := w.Bullets[:0]
		for _, b := range w.Bullets {
			if _, gone := s.consumed[b.ID]; !gone {
				bullets = append(bullets, b)
			}
		}
		w.Bullets = bullets
	}

	w.Score += res.ScoreGained

	if res.PlayerHit {
		w.Lives--
		res.LivesLost = 1
		if w.Lives <= 0 {
			res.GameOver = true
		}
	}

	if !res.GameOver {
		s.collectPowerUps(w, playerBox, now, &res)
	}
	return res
}

func (s *CombatSystem) firstBullet(bullets []entity.Bullet, box entity.Rect) (entity.Bullet, bool) {
	for _, b := range bullets {
		if _, gone := s.consumed[b.ID]; gone {
			continue
		}
		if b.Hitbox().Overlaps(box) {
			return b, true
		}
	}
	return entity.Bullet{}, false
}

func (s *CombatSystem) collectPowerUps(w *entity.World, playerBox entity.Rect, now time.Time, res *CombatResult) {
	kept := w.PowerUps[:0]
	for _, pu := range w.PowerUps {
		if !pu.Hitbox().Overlaps(playerBox) {
			kept = append(kept, pu)
			continue
		}
		res.PowerUps = append(res.PowerUps, pu)
		switch pu.Type {
		case entity.PowerUpTripleShot:
			w.TripleShot.Arm(now, config.Seconds(s.config.PowerUp.TripleShotDuration))
		}
	}
	w.PowerUps = kept
}
