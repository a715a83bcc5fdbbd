package config

import (
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadGame(t *testing.T) {
	loader := NewLoader("../../../cmd/acestriker/configs")

	cfg, err := loader.LoadGame()
	require.NoError(t, err)

	assert.Equal(t, 400.0, cfg.Field.Width)
	assert.Equal(t, 600.0, cfg.Field.Height)
	assert.Equal(t, 40.0, cfg.Player.Size)
	assert.Equal(t, 3, cfg.Player.InitialLives)
	assert.Equal(t, 3, cfg.Enemy.Tank.Health)
	assert.Equal(t, 1.5, cfg.Enemy.Tank.HitboxScale)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Equal(t, Default(), cfg, "shipped config should match built-in defaults")
}

func TestLoader_LoadGame_FallsBackToYAML(t *testing.T) {
	fsys := fstest.MapFS{
		GameYAML: &fstest.MapFile{Data: []byte(`
field:
  width: 320
  height: 480
player:
  initialLives: 5
powerUp:
  tripleShotDuration: 4.5
`)},
	}
	loader := NewFSLoader(fsys, "mem")

	cfg, err := loader.LoadGame()
	require.NoError(t, err)

	assert.Equal(t, 320.0, cfg.Field.Width)
	assert.Equal(t, 480.0, cfg.Field.Height)
	assert.Equal(t, 5, cfg.Player.InitialLives)
	assert.Equal(t, 4500*time.Millisecond, Seconds(cfg.PowerUp.TripleShotDuration))
	// Untouched fields keep defaults
	assert.Equal(t, 40.0, cfg.Player.Size)
	assert.Equal(t, "mem", loader.BasePath())
}

func TestLoader_LoadGame_Missing(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{}, "empty")

	_, err := loader.LoadGame()
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoader_LoadJSON_Errors(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		loader := NewFSLoader(fstest.MapFS{
			GameJSON: &fstest.MapFile{Data: []byte(`{"field": `)},
		}, "mem")

		_, err := loader.LoadGame()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse game.json")
	})

	t.Run("invalid values", func(t *testing.T) {
		loader := NewFSLoader(fstest.MapFS{
			GameJSON: &fstest.MapFile{Data: []byte(`{"player": {"initialLives": 0}}`)},
		}, "mem")

		_, err := loader.LoadGame()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "player.initialLives")
	})
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	tests := []struct {
		name    string
		mutate  func(c *GameConfig)
		wantMsg string
	}{
		{"zero field width", func(c *GameConfig) { c.Field.Width = 0 }, "field.width"},
		{"tank probability above one", func(c *GameConfig) { c.Enemy.Tank.Probability = 1.5 }, "enemy.tank.probability"},
		{"min interval above base", func(c *GameConfig) { c.Spawn.MinInterval = 2 }, "spawn.minInterval"},
		{"zero level divisor", func(c *GameConfig) { c.Scoring.LevelDivisor = 0 }, "scoring.levelDivisor"},
		{"player larger than field", func(c *GameConfig) { c.Player.Size = 1000 }, "player.size must fit"},
		{"negative fire interval", func(c *GameConfig) { c.Bullet.FireInterval = -1 }, "bullet.fireInterval"},
		{"NaN field width", func(c *GameConfig) { c.Field.Width = math.NaN() }, "field.width must be a finite number"},
		{"infinite field height", func(c *GameConfig) { c.Field.Height = math.Inf(1) }, "field.height must be a finite number"},
		{"NaN tank probability", func(c *GameConfig) { c.Enemy.Tank.Probability = math.NaN() }, "enemy.tank.probability"},
		{"infinite triple-shot duration", func(c *GameConfig) { c.PowerUp.TripleShotDuration = math.Inf(1) }, "powerUp.tripleShotDuration"},
		{"negative infinite spawn offset", func(c *GameConfig) { c.Player.SpawnOffsetY = math.Inf(-1) }, "player.spawnOffsetY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"ACESTRIKER_INITIAL_LIVES":  "7",
		"ACESTRIKER_FIRE_INTERVAL":  "0.05",
		"ACESTRIKER_TANK_HEALTH":    "",
		"UNRELATED_PLAYER_SPEED":    "99",
		"ACESTRIKER_SPAWN_INTERVAL": "2",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg, lookup))

	assert.Equal(t, 7, cfg.Player.InitialLives)
	assert.Equal(t, 0.05, cfg.Bullet.FireInterval)
	assert.Equal(t, 2.0, cfg.Spawn.BaseInterval)
	assert.Equal(t, 3, cfg.Enemy.Tank.Health, "empty value should not override")
	assert.Equal(t, 5.0, cfg.Player.Speed)
}

func TestApplyEnv_Errors(t *testing.T) {
	t.Run("unparsable number", func(t *testing.T) {
		cfg := Default()
		err := ApplyEnv(cfg, func(k string) (string, bool) {
			if k == "ACESTRIKER_PLAYER_SPEED" {
				return "fast", true
			}
			return "", false
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ACESTRIKER_PLAYER_SPEED")
	})

	t.Run("override fails validation", func(t *testing.T) {
		cfg := Default()
		err := ApplyEnv(cfg, func(k string) (string, bool) {
			if k == "ACESTRIKER_INITIAL_LIVES" {
				return "-1", true
			}
			return "", false
		})
		require.Error(t, err)
	})

	for _, raw := range []string{"NaN", "Inf", "-Inf"} {
		t.Run("non-finite "+raw, func(t *testing.T) {
			cfg := Default()
			err := ApplyEnv(cfg, func(k string) (string, bool) {
				if k == "ACESTRIKER_FIELD_WIDTH" {
					return raw, true
				}
				return "", false
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "field.width")
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ACESTRIKER_TEST_LOADENV=42\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("ACESTRIKER_TEST_LOADENV") })

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "42", os.Getenv("ACESTRIKER_TEST_LOADENV"))
}
