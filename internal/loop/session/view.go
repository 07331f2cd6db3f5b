package session

import (
	"time"

	"github.com/tomz197/debtblaster/internal/object"
	"github.com/tomz197/debtblaster/internal/physics"
)

// EntityView is the read-only picture of one live entity.
type EntityView struct {
	Kind   object.Kind
	Bounds physics.Rect
}

// View is a snapshot of everything a renderer may show. It shares no memory
// with the session.
type View struct {
	State          State
	Name           string
	Screen         object.Screen
	Debt           int
	Player         physics.Rect
	Entities       []EntityView // Falling entities, then projectiles
	Notifications  []string     // Oldest first
	PORActive      bool
	PORRemaining   time.Duration
	Elapsed        time.Duration // Since the first shot, 0 before it
	CompletionTime time.Duration
	ThreatSpeed    float64
	SpawnInterval  int
}

// View builds a snapshot of the current frame.
func (s *Session) View() View {
	now := s.clock.Now()
	v := View{
		State:          s.state,
		Name:           s.name,
		Screen:         s.screen,
		Debt:           s.ledger.Debt(),
		Player:         s.player.Bounds(),
		Notifications:  s.notes.Texts(),
		PORActive:      s.por.State() == PowerUpActive,
		PORRemaining:   s.por.Remaining(now),
		CompletionTime: s.completion,
		ThreatSpeed:    s.tier.ThreatSpeed,
		SpawnInterval:  s.spawner.Interval(),
	}
	switch {
	case s.state == StateGameOver:
		v.Elapsed = s.completion
	case !s.firstShotAt.IsZero():
		v.Elapsed = now.Sub(s.firstShotAt)
	}

	n := len(s.threats) + len(s.superSeeds) + len(s.loanSharks) + len(s.pors) + len(s.projectiles)
	v.Entities = make([]EntityView, 0, n)
	v.Entities = appendViews(v.Entities, s.threats)
	v.Entities = appendViews(v.Entities, s.superSeeds)
	v.Entities = appendViews(v.Entities, s.loanSharks)
	v.Entities = appendViews(v.Entities, s.pors)
	v.Entities = appendViews(v.Entities, s.projectiles)
	return v
}

func appendViews[E object.Entity](dst []EntityView, entities []E) []EntityView {
	for _, e := range entities {
		dst = append(dst, EntityView{Kind: e.Kind(), Bounds: e.Bounds()})
	}
	return dst
}
