package session

import "time"

// PowerUpState is the state of the POR triple-shot effect.
type PowerUpState int

const (
	PowerUpInactive PowerUpState = iota
	PowerUpActive
)

func (s PowerUpState) String() string {
	if s == PowerUpActive {
		return "active"
	}
	return "inactive"
}

// PowerUpTimer tracks the POR effect. Collecting a POR while active restarts
// the window instead of stacking.
type PowerUpTimer struct {
	window      time.Duration
	active      bool
	activatedAt time.Time
}

// NewPowerUpTimer creates an inactive timer with the given effect window.
func NewPowerUpTimer(window time.Duration) *PowerUpTimer {
	return &PowerUpTimer{window: window}
}

// Activate enters ACTIVE, or refreshes the window if already active.
func (t *PowerUpTimer) Activate(now time.Time) {
	t.active = true
	t.activatedAt = now
}

// Check expires the effect once the window has fully elapsed and returns the
// resulting state.
func (t *PowerUpTimer) Check(now time.Time) PowerUpState {
	if t.active && now.Sub(t.activatedAt) >= t.window {
		t.active = false
	}
	return t.State()
}

// State returns the state as of the last Activate or Check.
func (t *PowerUpTimer) State() PowerUpState {
	if t.active {
		return PowerUpActive
	}
	return PowerUpInactive
}

// Remaining returns how long the effect has left, or 0 when inactive.
func (t *PowerUpTimer) Remaining(now time.Time) time.Duration {
	if !t.active {
		return 0
	}
	left := t.window - now.Sub(t.activatedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Reset returns the timer to INACTIVE.
func (t *PowerUpTimer) Reset() {
	t.active = false
	t.activatedAt = time.Time{}
}
