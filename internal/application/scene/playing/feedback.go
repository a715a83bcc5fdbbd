package playing

const (
	playerFlashFrames = 30
	burstFrames       = 18
)

// burst is a short explosion ring drawn where an enemy died
type burst struct {
	x, y   float64
	radius float64
	frames int
}

func newBurst(x, y, size float64) burst {
	return burst{x: x, y: y, radius: size / 2, frames: burstFrames}
}

// progress runs from 0 at spawn to 1 at expiry
func (b burst) progress() float64 {
	return 1 - float64(b.frames)/burstFrames
}

// updateFeedback ages bursts and the hit flash by one frame
func (p *Playing) updateFeedback() {
	if p.flashFrames > 0 {
		p.flashFrames--
	}

	live := p.bursts[:0]
	for _, b := range p.bursts {
		b.frames--
		if b.frames > 0 {
			live = append(live, b)
		}
	}
	p.bursts = live
}
