package config

import (
	"math"
	"time"
)

// GameConfig is the root config for game.json / game.yaml
type GameConfig struct {
	Display DisplayConfig `json:"display" yaml:"display"`
	Field   FieldConfig   `json:"field" yaml:"field"`
	Player  PlayerConfig  `json:"player" yaml:"player"`
	Bullet  BulletConfig  `json:"bullet" yaml:"bullet"`
	Enemy   EnemyConfig   `json:"enemy" yaml:"enemy"`
	Spawn   SpawnConfig   `json:"spawn" yaml:"spawn"`
	PowerUp PowerUpConfig `json:"powerUp" yaml:"powerUp"`
	Scoring ScoringConfig `json:"scoring" yaml:"scoring"`
}

type DisplayConfig struct {
	Title     string `json:"title" yaml:"title"`
	Scale     int    `json:"scale" yaml:"scale"`
	Framerate int    `json:"framerate" yaml:"framerate"`
}

// FieldConfig is the play-field extent in logical pixels
type FieldConfig struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

type PlayerConfig struct {
	Size         float64 `json:"size" yaml:"size"`
	Speed        float64 `json:"speed" yaml:"speed"`               // pixels per tick
	SpawnOffsetY float64 `json:"spawnOffsetY" yaml:"spawnOffsetY"` // distance of spawn Y from field bottom
	InitialLives int     `json:"initialLives" yaml:"initialLives"`
}

type BulletConfig struct {
	Size             float64 `json:"size" yaml:"size"`
	Speed            float64 `json:"speed" yaml:"speed"`               // pixels per tick
	FireInterval     float64 `json:"fireInterval" yaml:"fireInterval"` // seconds
	TripleShotSpread float64 `json:"tripleShotSpread" yaml:"tripleShotSpread"`
}

type EnemyConfig struct {
	Size           float64    `json:"size" yaml:"size"`
	BaseSpeed      float64    `json:"baseSpeed" yaml:"baseSpeed"`           // pixels per tick
	SpeedScoreStep int        `json:"speedScoreStep" yaml:"speedScoreStep"` // +1 speed per step of score
	RegularScore   int        `json:"regularScore" yaml:"regularScore"`
	Tank           TankConfig `json:"tank" yaml:"tank"`
}

type TankConfig struct {
	Probability float64 `json:"probability" yaml:"probability"`
	Health      int     `json:"health" yaml:"health"`
	HitboxScale float64 `json:"hitboxScale" yaml:"hitboxScale"`
	Score       int     `json:"score" yaml:"score"`
}

// SpawnConfig controls the enemy spawn cadence (all times in seconds)
type SpawnConfig struct {
	BaseInterval float64 `json:"baseInterval" yaml:"baseInterval"`
	MinInterval  float64 `json:"minInterval" yaml:"minInterval"`
	ScoreStep    int     `json:"scoreStep" yaml:"scoreStep"`
	Decrement    float64 `json:"decrement" yaml:"decrement"`
}

type PowerUpConfig struct {
	Probability        float64 `json:"probability" yaml:"probability"`
	Size               float64 `json:"size" yaml:"size"`
	FallSpeed          float64 `json:"fallSpeed" yaml:"fallSpeed"`                   // pixels per tick
	TripleShotDuration float64 `json:"tripleShotDuration" yaml:"tripleShotDuration"` // seconds
}

type ScoringConfig struct {
	LevelDivisor int `json:"levelDivisor" yaml:"levelDivisor"`
}

// Seconds converts a float seconds value from config into a time.Duration
func Seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// Default returns the built-in tuning
func Default() *GameConfig {
	return &GameConfig{
		Display: DisplayConfig{
			Title:     "Ace Striker",
			Scale:     1,
			Framerate: 60,
		},
		Field: FieldConfig{Width: 400, Height: 600},
		Player: PlayerConfig{
			Size:         40,
			Speed:        5,
			SpawnOffsetY: 60,
			InitialLives: 3,
		},
		Bullet: BulletConfig{
			Size:             10,
			Speed:            7,
			FireInterval:     0.2,
			TripleShotSpread: 15,
		},
		Enemy: EnemyConfig{
			Size:           30,
			BaseSpeed:      3,
			SpeedScoreStep: 500,
			RegularScore:   10,
			Tank: TankConfig{
				Probability: 0.2,
				Health:      3,
				HitboxScale: 1.5,
				Score:       50,
			},
		},
		Spawn: SpawnConfig{
			BaseInterval: 1.0,
			MinInterval:  0.4,
			ScoreStep:    500,
			Decrement:    0.1,
		},
		PowerUp: PowerUpConfig{
			Probability:        0.1,
			Size:               25,
			FallSpeed:          2,
			TripleShotDuration: 10,
		},
		Scoring: ScoringConfig{LevelDivisor: 500},
	}
}
