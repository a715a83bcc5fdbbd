package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBullet(t *testing.T) {
	b := NewBullet(7, 195, 540, 10)

	assert.Equal(t, EntityID(7), b.ID)
	assert.Equal(t, Rect{X: 195, Y: 540, W: 10, H: 10}, b.Hitbox())
}

func TestBullet_OffTop(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		want bool
	}{
		{"on field", 100, false},
		{"partly above", -5, false},
		{"exactly gone", -10, true},
		{"far above", -50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewBullet(1, 0, tt.y, 10).OffTop())
		})
	}
}
