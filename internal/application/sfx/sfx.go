// Package sfx maps engine events to sound cues.
package sfx

import (
	"github.com/younwookim/acestriker/internal/application/engine"
	"github.com/younwookim/acestriker/internal/infrastructure/audio"
)

// Cues plays sound effects. *audio.SoundManager satisfies it.
type Cues interface {
	Play(c audio.Cue)
}

// CueFor maps an engine event to its sound
func CueFor(kind engine.EventKind) (audio.Cue, bool) {
	switch kind {
	case engine.EventShot:
		return audio.CueShot, true
	case engine.EventEnemyHit:
		return audio.CueEnemyHit, true
	case engine.EventEnemyDestroyed:
		return audio.CueExplosion, true
	case engine.EventPlayerHit:
		return audio.CuePlayerHit, true
	case engine.EventPowerUp:
		return audio.CuePickup, true
	case engine.EventGameOver:
		return audio.CueGameOver, true
	default:
		return 0, false
	}
}

// Play plays the cue of every event in order. A nil c is silent.
func Play(c Cues, events []engine.Event) {
	if c == nil {
		return
	}
	for _, ev := range events {
		if cue, ok := CueFor(ev.Kind); ok {
			c.Play(cue)
		}
	}
}
