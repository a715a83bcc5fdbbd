package system

import (
	"math/rand"
	"time"

	"github.com/younwookim/acestriker/internal/domain/entity"
	"github.com/younwookim/acestriker/internal/infrastructure/config"
)

// SpawnSystem creates enemies and power-ups on a score-scaled interval
type SpawnSystem struct {
	config *config.GameConfig
	rng    *rand.Rand
}

// NewSpawnSystem creates a spawner drawing from rng
func NewSpawnSystem(cfg *config.GameConfig, rng *rand.Rand) *SpawnSystem {
	return &SpawnSystem{config: cfg, rng: rng}
}

// SpawnResult reports what a spawn tick created
type SpawnResult struct {
	Enemy   entity.Enemy
	PowerUp entity.PowerUp

	EnemySpawned   bool
	PowerUpSpawned bool
}

// Interval returns the spawn interval for a score. It never drops below MinInterval.
func (s *SpawnSystem) Interval(score int) time.Duration {
	sp := s.config.Spawn
	interval := sp.BaseInterval - float64(score/sp.ScoreStep)*sp.Decrement
	if interval < sp.MinInterval {
		interval = sp.MinInterval
	}
	return config.Seconds(interval)
}

// Update spawns at most one enemy (and maybe one power-up) when the interval has elapsed
func (s *SpawnSystem) Update(w *entity.World, now time.Time) SpawnResult {
	if !w.LastSpawn.IsZero() && now.Sub(w.LastSpawn) <= s.Interval(w.Score) {
		return SpawnResult{}
	}

	var res SpawnResult
	enemy := s.newEnemy(w)
	w.Enemies = append(w.Enemies, enemy)
	w.LastSpawn = now
	res.Enemy, res.EnemySpawned = enemy, true

	if s.rng.Float64() < s.config.PowerUp.Probability {
		pu := s.newPowerUp(w)
		w.PowerUps = append(w.PowerUps, pu)
		res.PowerUp, res.PowerUpSpawned = pu, true
	}

	return res
}

func (s *SpawnSystem) newEnemy(w *entity.World) entity.Enemy {
	ecfg := s.config.Enemy
	x := s.rng.Float64() * (s.config.Field.Width - ecfg.Size)
	id := w.IDs.Next()

	if s.rng.Float64() < ecfg.Tank.Probability {
		return entity.NewEnemy(id, x, -ecfg.Size, entity.EnemyTank, ecfg.Size, ecfg.Tank.Health, ecfg.Tank.HitboxScale)
	}
	return entity.NewEnemy(id, x, -ecfg.Size, entity.EnemyRegular, ecfg.Size, 1, 1)
}

func (s *SpawnSystem) newPowerUp(w *entity.World) entity.PowerUp {
	size := s.config.PowerUp.Size
	x := s.rng.Float64() * (s.config.Field.Width - size)
	return entity.NewPowerUp(w.IDs.Next(), x, -size, entity.PowerUpTripleShot, size)
}
