// Package terminal renders the game on a tcell screen and adapts
// terminal key events, which carry no release, to held keys.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/acestriker/internal/application/engine"
	"github.com/younwookim/acestriker/internal/application/state"
	"github.com/younwookim/acestriker/internal/domain/entity"
	"github.com/younwookim/acestriker/internal/infrastructure/config"
)

// hudRows is the number of rows above the play field
const hudRows = 1

var (
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleBullet  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleEnemy   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleTank    = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleZigZag  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	stylePowerUp = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleNotice  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// Renderer draws snapshots scaled to the terminal size
type Renderer struct {
	screen tcell.Screen
	config *config.GameConfig
}

// NewRenderer creates a renderer on an initialized screen
func NewRenderer(screen tcell.Screen, cfg *config.GameConfig) *Renderer {
	return &Renderer{screen: screen, config: cfg}
}

// viewport maps field coordinates to terminal cells
type viewport struct {
	cols, rows int
	sx, sy     float64
}

func (r *Renderer) viewport() viewport {
	w, h := r.screen.Size()
	rows := h - hudRows
	if w < 1 || rows < 1 {
		return viewport{}
	}
	field := r.config.Field
	return viewport{
		cols: w,
		rows: rows,
		sx:   float64(w) / field.Width,
		sy:   float64(rows) / field.Height,
	}
}

// Cell returns the terminal cell holding field point (x, y)
func (r *Renderer) Cell(x, y float64) (col, row int, ok bool) {
	return r.viewport().cell(x, y)
}

func (v viewport) cell(x, y float64) (int, int, bool) {
	if v.cols == 0 {
		return 0, 0, false
	}
	col := int(x * v.sx)
	row := int(y * v.sy)
	if col < 0 || col >= v.cols || row < 0 || row >= v.rows {
		return 0, 0, false
	}
	return col, row + hudRows, true
}

// fill paints every cell the box touches, at least one when the box is on screen
func (r *Renderer) fill(v viewport, b entity.Rect, ch rune, style tcell.Style) {
	if b.X+b.W <= 0 || b.Y+b.H <= 0 || b.X*v.sx >= float64(v.cols) || b.Y*v.sy >= float64(v.rows) {
		return
	}
	c0 := clampInt(int(b.X*v.sx), 0, v.cols-1)
	r0 := clampInt(int(b.Y*v.sy), 0, v.rows-1)
	c1 := clampInt(int((b.X+b.W)*v.sx-0.001), c0, v.cols-1)
	r1 := clampInt(int((b.Y+b.H)*v.sy-0.001), r0, v.rows-1)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			r.screen.SetContent(col, row+hudRows, ch, nil, style)
		}
	}
}

// Draw renders snap and shows the frame
func (r *Renderer) Draw(snap *engine.Snapshot) {
	r.screen.Clear()
	if snap == nil {
		r.screen.Show()
		return
	}

	v := r.viewport()
	if v.cols > 0 {
		r.drawField(v, snap)
	}
	r.drawHUD(snap)
	if snap.Status == state.StateGameOver {
		r.drawGameOver(snap)
	}
	r.screen.Show()
}

func (r *Renderer) drawField(v viewport, snap *engine.Snapshot) {
	cfg := r.config

	for _, pu := range snap.PowerUps {
		r.fill(v, entity.Rect{X: pu.X, Y: pu.Y, W: cfg.PowerUp.Size, H: cfg.PowerUp.Size}, '3', stylePowerUp)
	}
	for _, en := range snap.Enemies {
		box := entity.Rect{X: en.X, Y: en.Y, W: cfg.Enemy.Size, H: cfg.Enemy.Size}
		switch en.Type {
		case entity.EnemyTank:
			box = entity.NewEnemy(en.ID, en.X, en.Y, en.Type, cfg.Enemy.Size, en.MaxHealth, cfg.Enemy.Tank.HitboxScale).Hitbox()
			r.fill(v, box, rune('0'+min(en.Health, 9)), styleTank)
		case entity.EnemyZigZag:
			r.fill(v, box, 'Z', styleZigZag)
		default:
			r.fill(v, box, 'V', styleEnemy)
		}
	}
	for _, b := range snap.Bullets {
		if col, row, ok := v.cell(b.X+cfg.Bullet.Size/2, b.Y); ok {
			r.screen.SetContent(col, row, '|', nil, styleBullet)
		}
	}

	pl := snap.Player
	r.fill(v, entity.Rect{X: pl.X, Y: pl.Y, W: pl.Size, H: pl.Size}, 'A', stylePlayer)
}

func (r *Renderer) drawHUD(snap *engine.Snapshot) {
	w, _ := r.screen.Size()
	for col := 0; col < w; col++ {
		r.screen.SetContent(col, 0, ' ', nil, styleHUD)
	}

	line := fmt.Sprintf(" SCORE %d LV %d LIVES %d", snap.Score, snap.Level, snap.Lives)
	if snap.TripleShot {
		line += fmt.Sprintf(" TRIPLE %.1fs", snap.TripleShotRemaining.Seconds())
	}
	r.drawString(0, 0, line, styleHUD)
}

func (r *Renderer) drawGameOver(snap *engine.Snapshot) {
	w, h := r.screen.Size()
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("FINAL SCORE %d", snap.Score),
		"SPACE / ENTER TO RESTART, Q TO QUIT",
	}
	top := h/2 - len(lines)/2
	for i, s := range lines {
		r.drawString((w-len(s))/2, top+i, s, styleNotice)
	}
}

func (r *Renderer) drawString(x, y int, s string, style tcell.Style) {
	for i, ch := range s {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
