package system

import (
	"math/rand"
	"time"

	"github.com/younwookim/acestriker/internal/domain/entity"
	"github.com/younwookim/acestriker/internal/infrastructure/config"
)

// testRNG returns a seeded RNG for deterministic tests
func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

// testNow is an arbitrary fixed wall-clock origin
var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func createTestWorld(cfg *config.GameConfig) *entity.World {
	size := cfg.Player.Size
	player := entity.NewPlayer(cfg.Field.Width/2-size/2, cfg.Field.Height-cfg.Player.SpawnOffsetY, size)
	return entity.NewWorld(player, cfg.Player.InitialLives)
}

func addEnemy(w *entity.World, cfg *config.GameConfig, typ entity.EnemyType, x, y float64) entity.EntityID {
	health, scale := 1, 1.0
	if typ == entity.EnemyTank {
		health, scale = cfg.Enemy.Tank.Health, cfg.Enemy.Tank.HitboxScale
	}
	e := entity.NewEnemy(w.IDs.Next(), x, y, typ, cfg.Enemy.Size, health, scale)
	w.Enemies = append(w.Enemies, e)
	return e.ID
}

func addBullet(w *entity.World, cfg *config.GameConfig, x, y float64) entity.EntityID {
	b := entity.NewBullet(w.IDs.Next(), x, y, cfg.Bullet.Size)
	w.Bullets = append(w.Bullets, b)
	return b.ID
}
