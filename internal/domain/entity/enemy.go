package entity

// EnemyType tags the enemy variant
type EnemyType int

const (
	EnemyRegular EnemyType = iota
	EnemyTank
	EnemyZigZag // declared for renderers; has no movement of its own
)

// String returns the wire name of the enemy type
func (t EnemyType) String() string {
	switch t {
	case EnemyRegular:
		return "REGULAR"
	case EnemyTank:
		return "TANK"
	case EnemyZigZag:
		return "ZIGZAG"
	default:
		return "UNKNOWN"
	}
}

// Enemy represents a descending enemy
type Enemy struct {
	ID   EntityID
	X, Y float64
	Type EnemyType

	Health    int
	MaxHealth int

	// Size is the base box; HitboxScale enlarges the hitbox around its center
	Size        float64
	HitboxScale float64
}

// NewEnemy creates an enemy at full health
func NewEnemy(id EntityID, x, y float64, typ EnemyType, size float64, maxHealth int, hitboxScale float64) Enemy {
	if hitboxScale <= 0 {
		hitboxScale = 1
	}
	return Enemy{
		ID:          id,
		X:           x,
		Y:           y,
		Type:        typ,
		Health:      maxHealth,
		MaxHealth:   maxHealth,
		Size:        size,
		HitboxScale: hitboxScale,
	}
}

// TakeDamage applies damage, flooring health at 0. Returns true if killed.
func (e *Enemy) TakeDamage(damage int) bool {
	e.Health -= damage
	if e.Health < 0 {
		e.Health = 0
	}
	return e.Health == 0
}

// IsAlive returns true if enemy is still alive
func (e *Enemy) IsAlive() bool {
	return e.Health > 0
}

// Hitbox returns the collision box, scaled and kept centered on the base box
func (e Enemy) Hitbox() Rect {
	w := e.Size * e.HitboxScale
	off := (w - e.Size) / 2
	return Rect{X: e.X - off, Y: e.Y - off, W: w, H: w}
}
