package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayer_Hitbox(t *testing.T) {
	p := NewPlayer(180, 540, 40)

	assert.Equal(t, Rect{X: 180, Y: 540, W: 40, H: 40}, p.Hitbox())

	cx, cy := p.Center()
	assert.Equal(t, 200.0, cx)
	assert.Equal(t, 560.0, cy)
}

func TestPlayer_MoveTo(t *testing.T) {
	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY float64
	}{
		{"inside", 100, 200, 100, 200},
		{"past left and top", -15, -1, 0, 0},
		{"past right and bottom", 390, 700, 360, 560},
		{"exact max", 360, 560, 360, 560},
		{"nan stays in bounds", math.NaN(), math.NaN(), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer(0, 0, 40)
			p.MoveTo(tt.x, tt.y, 400, 600)
			assert.Equal(t, tt.wantX, p.X)
			assert.Equal(t, tt.wantY, p.Y)
		})
	}
}
