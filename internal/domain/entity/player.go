package entity

// Player is the player craft. X, Y is the top-left corner.
type Player struct {
	X, Y float64
	Size float64
}

// NewPlayer creates a player at the given position
func NewPlayer(x, y, size float64) Player {
	return Player{X: x, Y: y, Size: size}
}

// Hitbox returns the player's collision box
func (p Player) Hitbox() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.Size, H: p.Size}
}

// Center returns the center point of the player box
func (p Player) Center() (x, y float64) {
	return p.X + p.Size/2, p.Y + p.Size/2
}

// MoveTo sets the top-left position, clamped to [0, extent - size] on both axes
func (p *Player) MoveTo(x, y, fieldW, fieldH float64) {
	p.X = Clamp(x, 0, fieldW-p.Size)
	p.Y = Clamp(y, 0, fieldH-p.Size)
}
