package playing

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/acestriker/internal/application/engine"
	"github.com/younwookim/acestriker/internal/application/state"
	"github.com/younwookim/acestriker/internal/domain/entity"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{10, 12, 30, 255}
	colorPlayer     = color.RGBA{90, 170, 255, 255}
	colorCockpit    = color.RGBA{220, 240, 255, 255}
	colorPlayerHit  = color.RGBA{255, 90, 90, 255}
	colorBullet     = color.RGBA{255, 230, 80, 255}
	colorEnemy      = color.RGBA{220, 60, 60, 255}
	colorTank       = color.RGBA{150, 70, 200, 255}
	colorZigZag     = color.RGBA{240, 140, 40, 255}
	colorPowerUp    = color.RGBA{80, 220, 120, 255}
	colorHealthBG   = color.RGBA{60, 60, 60, 255}
	colorHealthFG   = color.RGBA{100, 200, 100, 255}
	colorBurst      = color.RGBA{255, 180, 60, 255}
	colorHUD        = color.RGBA{230, 230, 230, 255}
	colorTripleShot = color.RGBA{80, 220, 120, 255}
	colorOverlay    = color.RGBA{0, 0, 0, 160}
)

// Draw renders the last committed snapshot (implements scene.Scene)
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	snap := p.engine.Snapshot()
	if snap == nil {
		return
	}

	p.drawPowerUps(screen, snap)
	p.drawEnemies(screen, snap)
	p.drawBullets(screen, snap)
	p.drawPlayer(screen, snap)
	p.drawBursts(screen)
	p.drawUI(screen, snap)

	if snap.Status == state.StateGameOver {
		p.drawGameOverOverlay(screen, snap)
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, snap *engine.Snapshot) {
	pl := snap.Player
	clr := colorPlayer
	// Blink while the hit flash runs
	if p.flashFrames > 0 && (p.flashFrames/4)%2 == 0 {
		clr = colorPlayerHit
	}

	x, y, s := float32(pl.X), float32(pl.Y), float32(pl.Size)
	vector.DrawFilledRect(screen, x, y+s*0.4, s, s*0.35, clr, false)
	vector.DrawFilledRect(screen, x+s*0.35, y, s*0.3, s, clr, false)
	vector.DrawFilledRect(screen, x+s*0.42, y+s*0.15, s*0.16, s*0.2, colorCockpit, false)
}

func (p *Playing) drawBullets(screen *ebiten.Image, snap *engine.Snapshot) {
	s := float32(p.config.Bullet.Size)
	for _, b := range snap.Bullets {
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), s, s, colorBullet, false)
	}
}

func (p *Playing) drawEnemies(screen *ebiten.Image, snap *engine.Snapshot) {
	size := p.config.Enemy.Size
	for _, en := range snap.Enemies {
		switch en.Type {
		case entity.EnemyTank:
			// Tanks are drawn at their enlarged hitbox
			scale := p.config.Enemy.Tank.HitboxScale
			w := size * scale
			off := (w - size) / 2
			x, y := float32(en.X-off), float32(en.Y-off)
			vector.DrawFilledRect(screen, x, y, float32(w), float32(w), colorTank, false)
			vector.StrokeRect(screen, x, y, float32(w), float32(w), 2, colorEnemy, false)
			p.drawHealthBar(screen, x, y-6, float32(w), en)
		case entity.EnemyZigZag:
			vector.DrawFilledRect(screen, float32(en.X), float32(en.Y), float32(size), float32(size), colorZigZag, false)
		default:
			vector.DrawFilledRect(screen, float32(en.X), float32(en.Y), float32(size), float32(size), colorEnemy, false)
		}
	}
}

func (p *Playing) drawHealthBar(screen *ebiten.Image, x, y, w float32, en engine.EnemyView) {
	if en.MaxHealth <= 0 {
		return
	}
	ratio := float32(en.Health) / float32(en.MaxHealth)
	vector.DrawFilledRect(screen, x, y, w, 3, colorHealthBG, false)
	vector.DrawFilledRect(screen, x, y, w*ratio, 3, colorHealthFG, false)
}

func (p *Playing) drawPowerUps(screen *ebiten.Image, snap *engine.Snapshot) {
	s := float32(p.config.PowerUp.Size)
	for _, pu := range snap.PowerUps {
		x, y := float32(pu.X), float32(pu.Y)
		vector.StrokeRect(screen, x, y, s, s, 2, colorPowerUp, false)
		p.drawText(screen, "3", float64(x+s/2-3.5), float64(y+s/2-7), colorPowerUp)
	}
}

func (p *Playing) drawBursts(screen *ebiten.Image) {
	for _, b := range p.bursts {
		t := b.progress()
		r := float32(b.radius * (0.5 + t))
		alpha := uint8(255 * (1 - t))
		c := color.RGBA{colorBurst.R, colorBurst.G, colorBurst.B, alpha}
		vector.StrokeCircle(screen, float32(b.x), float32(b.y), r, 3, c, true)
	}
}

func (p *Playing) drawUI(screen *ebiten.Image, snap *engine.Snapshot) {
	p.drawText(screen, fmt.Sprintf("SCORE %d", snap.Score), 8, 6, colorHUD)
	p.drawText(screen, fmt.Sprintf("LEVEL %d", snap.Level), 8, 22, colorHUD)

	lives := fmt.Sprintf("LIVES %d", snap.Lives)
	w, _ := text.Measure(lives, p.face, 0)
	p.drawText(screen, lives, float64(p.screenW)-w-8, 6, colorHUD)

	if snap.TripleShot {
		msg := fmt.Sprintf("TRIPLE SHOT %.1fs", snap.TripleShotRemaining.Seconds())
		w, _ := text.Measure(msg, p.face, 0)
		p.drawText(screen, msg, float64(p.screenW)-w-8, 22, colorTripleShot)
	}

	if p.recorder != nil && p.recorder.IsRecording() {
		vector.DrawFilledCircle(screen, float32(p.screenW)-10, float32(p.screenH)-10, 4, colorEnemy, true)
	}
}

func (p *Playing) drawGameOverOverlay(screen *ebiten.Image, snap *engine.Snapshot) {
	vector.DrawFilledRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), colorOverlay, false)

	cy := float64(p.screenH) / 2
	p.drawCentered(screen, "GAME OVER", cy-30, colorHUD)
	p.drawCentered(screen, fmt.Sprintf("FINAL SCORE %d", snap.Score), cy-8, colorHUD)
	p.drawCentered(screen, fmt.Sprintf("LEVEL %d", snap.Level), cy+8, colorHUD)
	p.drawCentered(screen, "SPACE / ENTER / CLICK TO RESTART", cy+34, colorTripleShot)
}

func (p *Playing) drawCentered(screen *ebiten.Image, s string, y float64, clr color.Color) {
	w, _ := text.Measure(s, p.face, 0)
	p.drawText(screen, s, (float64(p.screenW)-w)/2, y, clr)
}

func (p *Playing) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, p.face, op)
}

// Layout returns the logical screen size
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
