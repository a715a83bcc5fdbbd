package entity

import "time"

// EffectTimer is a deadline-based timed effect.
// Re-arming replaces the deadline; there is no goroutine behind it.
type EffectTimer struct {
	deadline time.Time
	armed    bool
}

// Arm starts (or restarts) the effect so it lasts d from now
func (e *EffectTimer) Arm(now time.Time, d time.Duration) {
	e.deadline = now.Add(d)
	e.armed = true
}

// Cancel switches the effect off immediately
func (e *EffectTimer) Cancel() {
	e.deadline = time.Time{}
	e.armed = false
}

// Active reports whether the effect is on at now
func (e EffectTimer) Active(now time.Time) bool {
	return e.armed && now.Before(e.deadline)
}

// Remaining returns the time left, or 0 when inactive
func (e EffectTimer) Remaining(now time.Time) time.Duration {
	if !e.Active(now) {
		return 0
	}
	return e.deadline.Sub(now)
}

// Deadline returns the expiry time and whether the timer was ever armed
func (e EffectTimer) Deadline() (time.Time, bool) {
	return e.deadline, e.armed
}
