package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every override key
const EnvPrefix = "ACESTRIKER_"

// LoadEnv loads .env files into the process environment.
// Missing files are skipped; variables already set are not overwritten.
func LoadEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}
	return nil
}

type envFloat struct {
	key string
	dst *float64
}

type envInt struct {
	key string
	dst *int
}

// ApplyEnv overrides config fields from ACESTRIKER_* variables.
// lookup is usually os.LookupEnv. The result is validated.
func ApplyEnv(cfg *GameConfig, lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	floats := []envFloat{
		{"FIELD_WIDTH", &cfg.Field.Width},
		{"FIELD_HEIGHT", &cfg.Field.Height},
		{"PLAYER_SPEED", &cfg.Player.Speed},
		{"BULLET_SPEED", &cfg.Bullet.Speed},
		{"FIRE_INTERVAL", &cfg.Bullet.FireInterval},
		{"ENEMY_SPEED", &cfg.Enemy.BaseSpeed},
		{"SPAWN_INTERVAL", &cfg.Spawn.BaseInterval},
		{"SPAWN_MIN_INTERVAL", &cfg.Spawn.MinInterval},
		{"TANK_PROBABILITY", &cfg.Enemy.Tank.Probability},
		{"POWERUP_PROBABILITY", &cfg.PowerUp.Probability},
		{"TRIPLE_SHOT_DURATION", &cfg.PowerUp.TripleShotDuration},
	}
	ints := []envInt{
		{"INITIAL_LIVES", &cfg.Player.InitialLives},
		{"TANK_HEALTH", &cfg.Enemy.Tank.Health},
		{"LEVEL_DIVISOR", &cfg.Scoring.LevelDivisor},
		{"DISPLAY_SCALE", &cfg.Display.Scale},
		{"FRAMERATE", &cfg.Display.Framerate},
	}

	for _, f := range floats {
		raw, ok := lookup(EnvPrefix + f.key)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, f.key, err)
		}
		*f.dst = v
	}
	for _, i := range ints {
		raw, ok := lookup(EnvPrefix + i.key)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, i.key, err)
		}
		*i.dst = v
	}

	return cfg.Validate()
}
