package entity

// Bullet is a player shot travelling toward the top of the field
type Bullet struct {
	ID   EntityID
	X, Y float64
	Size float64
}

// NewBullet creates a bullet with its top-left corner at x, y
func NewBullet(id EntityID, x, y, size float64) Bullet {
	return Bullet{ID: id, X: x, Y: y, Size: size}
}

// Hitbox returns the bullet's collision box
func (b Bullet) Hitbox() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.Size, H: b.Size}
}

// OffTop reports whether the bullet has fully left the field top
func (b Bullet) OffTop() bool {
	return b.Y <= -b.Size
}
