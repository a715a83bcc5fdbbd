package system

import (
	"time"

	"github.com/younwookim/acestriker/internal/domain/entity"
	"github.com/younwookim/acestriker/internal/infrastructure/config"
)

// FireControl creates bullets, rate-limited by the fire interval
type FireControl struct {
	config *config.GameConfig
}

// NewFireControl creates a new fire control
func NewFireControl(cfg *config.GameConfig) *FireControl {
	return &FireControl{config: cfg}
}

// Ready reports whether a shot at now would pass the rate limit
func (f *FireControl) Ready(w *entity.World, now time.Time) bool {
	if w.LastFire.IsZero() {
		return true
	}
	return now.Sub(w.LastFire) >= config.Seconds(f.config.Bullet.FireInterval)
}

// Fire shoots from the player. Returns the number of bullets created (0 if gated).
func (f *FireControl) Fire(w *entity.World, now time.Time) int {
	if !f.Ready(w, now) {
		return 0
	}

	bcfg := f.config.Bullet
	p := w.Player
	x := p.X + p.Size/2 - bcfg.Size/2

	w.Bullets = append(w.Bullets, entity.NewBullet(w.IDs.Next(), x, p.Y, bcfg.Size))
	n := 1
	if w.TripleShot.Active(now) {
		w.Bullets = append(w.Bullets,
			entity.NewBullet(w.IDs.Next(), x-bcfg.TripleShotSpread, p.Y, bcfg.Size),
			entity.NewBullet(w.IDs.Next(), x+bcfg.TripleShotSpread, p.Y, bcfg.Size),
		)
		n = 3
	}

	w.LastFire = now
	return n
}
