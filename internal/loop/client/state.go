package client

import (
	"time"

	"github.com/tomz197/debtblaster/internal/input"
	"github.com/tomz197/debtblaster/internal/loop/session"
	"github.com/tomz197/debtblaster/internal/object"
)

// Screen is what the client is currently showing.
type Screen int

const (
	ScreenIntro    Screen = iota // Title and skip prompt
	ScreenNaming                 // Name entry
	ScreenPlaying                // Active gameplay
	ScreenEnd                    // Win screen with completion time
	ScreenShutdown               // Server is shutting down
)

// screenFor maps a session state to the screen that shows it.
func screenFor(s session.State) Screen {
	switch s {
	case session.StateNaming:
		return ScreenNaming
	case session.StatePlaying:
		return ScreenPlaying
	case session.StateGameOver:
		return ScreenEnd
	default:
		return ScreenIntro
	}
}

// ClientState holds the per-connection presentation state. The game itself
// lives in the session.
type ClientState struct {
	Input        input.Input
	Running      bool          // Client loop running
	ShuttingDown bool          // Server announced shutdown
	View         session.View  // Snapshot taken after this frame's update
	delta        time.Duration // Frame delta time
	introStarted time.Time     // When the current intro began
	name         []rune        // Name being typed
	particles    []*object.Particle

	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	endLockout    float64 // Seconds left before Space replays from the end screen
	isInactive    bool    // Whether the client is in inactive warning state

	prevScreen  Screen
	wasInactive bool
	drawn       bool // At least one frame has been drawn
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running: true,
	}
}

// Screen returns the screen to draw this frame.
func (s *ClientState) Screen() Screen {
	if s.ShuttingDown {
		return ScreenShutdown
	}
	return screenFor(s.View.State)
}

// releaseParticles returns all sparks to the pool.
func (s *ClientState) releaseParticles() {
	for _, p := range s.particles {
		p.Release()
	}
	s.particles = s.particles[:0]
}
