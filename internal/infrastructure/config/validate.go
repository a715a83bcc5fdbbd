package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Validate reports every field that would break the simulation
func (c *GameConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", name, v))
		}
	}
	probability := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", name, v))
		}
	}

	finite := map[string]float64{
		"field.width":                c.Field.Width,
		"field.height":               c.Field.Height,
		"player.size":                c.Player.Size,
		"player.speed":               c.Player.Speed,
		"player.spawnOffsetY":        c.Player.SpawnOffsetY,
		"bullet.size":                c.Bullet.Size,
		"bullet.speed":               c.Bullet.Speed,
		"bullet.fireInterval":        c.Bullet.FireInterval,
		"bullet.tripleShotSpread":    c.Bullet.TripleShotSpread,
		"enemy.size":                 c.Enemy.Size,
		"enemy.baseSpeed":            c.Enemy.BaseSpeed,
		"enemy.tank.probability":     c.Enemy.Tank.Probability,
		"enemy.tank.hitboxScale":     c.Enemy.Tank.HitboxScale,
		"spawn.baseInterval":         c.Spawn.BaseInterval,
		"spawn.minInterval":          c.Spawn.MinInterval,
		"spawn.decrement":            c.Spawn.Decrement,
		"powerUp.probability":        c.PowerUp.Probability,
		"powerUp.size":               c.PowerUp.Size,
		"powerUp.fallSpeed":          c.PowerUp.FallSpeed,
		"powerUp.tripleShotDuration": c.PowerUp.TripleShotDuration,
	}
	var bad []string
	for name, v := range finite {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			bad = append(bad, name)
		}
	}
	if len(bad) > 0 {
		// NaN slips through every ordered comparison below
		sort.Strings(bad)
		for _, name := range bad {
			errs = append(errs, fmt.Errorf("%s must be a finite number, got %v", name, finite[name]))
		}
		return errors.Join(errs...)
	}

	positive("field.width", c.Field.Width)
	positive("field.height", c.Field.Height)
	positive("player.size", c.Player.Size)
	positive("player.speed", c.Player.Speed)
	positive("bullet.size", c.Bullet.Size)
	positive("bullet.speed", c.Bullet.Speed)
	positive("enemy.size", c.Enemy.Size)
	positive("enemy.baseSpeed", c.Enemy.BaseSpeed)
	positive("powerUp.size", c.PowerUp.Size)
	positive("powerUp.fallSpeed", c.PowerUp.FallSpeed)
	positive("powerUp.tripleShotDuration", c.PowerUp.TripleShotDuration)
	positive("spawn.baseInterval", c.Spawn.BaseInterval)
	positive("enemy.tank.hitboxScale", c.Enemy.Tank.HitboxScale)

	if c.Bullet.FireInterval < 0 {
		errs = append(errs, fmt.Errorf("bullet.fireInterval must be >= 0, got %v", c.Bullet.FireInterval))
	}
	if c.Spawn.MinInterval < 0 || c.Spawn.MinInterval > c.Spawn.BaseInterval {
		errs = append(errs, fmt.Errorf("spawn.minInterval must be within [0, baseInterval], got %v", c.Spawn.MinInterval))
	}
	if c.Spawn.Decrement < 0 {
		errs = append(errs, fmt.Errorf("spawn.decrement must be >= 0, got %v", c.Spawn.Decrement))
	}
	if c.Spawn.ScoreStep <= 0 {
		errs = append(errs, fmt.Errorf("spawn.scoreStep must be > 0, got %d", c.Spawn.ScoreStep))
	}
	if c.Enemy.SpeedScoreStep <= 0 {
		errs = append(errs, fmt.Errorf("enemy.speedScoreStep must be > 0, got %d", c.Enemy.SpeedScoreStep))
	}
	if c.Scoring.LevelDivisor <= 0 {
		errs = append(errs, fmt.Errorf("scoring.levelDivisor must be > 0, got %d", c.Scoring.LevelDivisor))
	}
	if c.Player.InitialLives <= 0 {
		errs = append(errs, fmt.Errorf("player.initialLives must be > 0, got %d", c.Player.InitialLives))
	}
	if c.Enemy.Tank.Health <= 0 {
		errs = append(errs, fmt.Errorf("enemy.tank.health must be > 0, got %d", c.Enemy.Tank.Health))
	}
	if c.Enemy.RegularScore < 0 || c.Enemy.Tank.Score < 0 {
		errs = append(errs, errors.New("enemy scores must be >= 0"))
	}
	probability("enemy.tank.probability", c.Enemy.Tank.Probability)
	probability("powerUp.probability", c.PowerUp.Probability)

	if c.Player.Size > c.Field.Width || c.Player.Size > c.Field.Height {
		errs = append(errs, errors.New("player.size must fit inside the field"))
	}
	if c.Enemy.Size > c.Field.Width || c.PowerUp.Size > c.Field.Width {
		errs = append(errs, errors.New("enemy and power-up sizes must fit inside the field width"))
	}

	return errors.Join(errs...)
}
