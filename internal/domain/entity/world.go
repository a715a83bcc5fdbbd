package entity

import "time"

// World is the complete mutable simulation state.
// Entity slices hold values in insertion (spawn) order.
type World struct {
	Player   Player
	Bullets  []Bullet
	Enemies  []Enemy
	PowerUps []PowerUp

	Score int
	Lives int

	TripleShot EffectTimer

	// Zero LastSpawn means no enemy has spawned this session
	LastSpawn time.Time
	// Zero LastFire means the player has not fired this session
	LastFire time.Time

	IDs IDGenerator
}

// NewWorld creates the initial world for a session
func NewWorld(player Player, lives int) *World {
	return &World{
		Player:   player,
		Bullets:  make([]Bullet, 0, 32),
		Enemies:  make([]Enemy, 0, 16),
		PowerUps: make([]PowerUp, 0, 4),
		Lives:    lives,
	}
}

// Clone returns a deep copy that shares no slice storage with w
func (w *World) Clone() *World {
	c := *w
	c.Bullets = append(make([]Bullet, 0, len(w.Bullets)+4), w.Bullets...)
	c.Enemies = append(make([]Enemy, 0, len(w.Enemies)+2), w.Enemies...)
	c.PowerUps = append(make([]PowerUp, 0, len(w.PowerUps)+1), w.PowerUps...)
	return &c
}

// Entities returns the number of live bullets, enemies, and power-ups
func (w *World) Entities() int {
	return len(w.Bullets) + len(w.Enemies) + len(w.PowerUps)
}
