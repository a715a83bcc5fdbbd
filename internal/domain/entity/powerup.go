package entity

// PowerUpType tags the effect a power-up grants
type PowerUpType int

const (
	PowerUpTripleShot PowerUpType = iota
)

// String returns the wire name of the power-up type
func (t PowerUpType) String() string {
	switch t {
	case PowerUpTripleShot:
		return "TRIPLE_SHOT"
	default:
		return "UNKNOWN"
	}
}

// PowerUp is a falling pickup
type PowerUp struct {
	ID   EntityID
	X, Y float64
	Type PowerUpType
	Size float64
}

// NewPowerUp creates a power-up
func NewPowerUp(id EntityID, x, y float64, typ PowerUpType, size float64) PowerUp {
	return PowerUp{ID: id, X: x, Y: y, Type: typ, Size: size}
}

// Hitbox returns the pickup box
func (p PowerUp) Hitbox() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.Size, H: p.Size}
}
