package session

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/tomz197/debtblaster/internal/object"
)

var testScreen = object.Screen{Width: 800, Height: 600}

func projectileAt(x, y float64) *object.Projectile {
	return object.NewProjectile(x, y, 5, 10, 0)
}

func powerUpAt(kind object.Kind, x, y float64) *object.PowerUp {
	rng := rand.New(rand.NewSource(1))
	var p *object.PowerUp
	switch kind {
	case object.KindSuperSeed:
		p = object.NewSuperSeed(rng, testScreen, 30, 30)
	case object.KindLoanShark:
		p = object.NewLoanShark(rng, testScreen, 50, 50, 2)
	case object.KindPOR:
		p = object.NewPOR(rng, testScreen, 35, 35)
	}
	p.X, p.Y = x, y
	return p
}

func TestCollisionThreatBeforeSuperSeed(t *testing.T) {
	s, clock, _ := newPlayingSession(t)
	s.projectiles = []*object.Projectile{projectileAt(100, 100)}
	s.threats = []*object.Threat{threatAt(90, 90)}
	s.superSeeds = []*object.PowerUp{powerUpAt(object.KindSuperSeed, 95, 95)}

	hits := s.resolveCollisions(clock.Now())
	if len(hits) != 1 || hits[0].Kind != object.KindThreat {
		t.Fatalf("hits = %+v, want one threat", hits)
	}
	if s.Debt() != 9990 {
		t.Fatalf("debt = %d, want 9990", s.Debt())
	}
	if len(s.threats) != 0 || len(s.superSeeds) != 1 || len(s.projectiles) != 0 {
		t.Fatalf("threats=%d superseeds=%d projectiles=%d, want 0/1/0",
			len(s.threats), len(s.superSeeds), len(s.projectiles))
	}
}

func TestCollisionFirstEntityInOrderWins(t *testing.T) {
	s, clock, _ := newPlayingSession(t)
	first, second := threatAt(100, 100), threatAt(95, 95)
	s.projectiles = []*object.Projectile{projectileAt(110, 110)}
	s.threats = []*object.Threat{first, second}

	s.resolveCollisions(clock.Now())
	if len(s.threats) != 1 || s.threats[0] != second {
		t.Fatalf("remaining threats = %v, want only the second", s.threats)
	}
}

func TestCollisionEachEntityHitOnce(t *testing.T) {
	s, clock, _ := newPlayingSession(t)
	s.projectiles = []*object.Projectile{projectileAt(110, 110), projectileAt(112, 112)}
	s.threats = []*object.Threat{threatAt(100, 100)}

	hits := s.resolveCollisions(clock.Now())
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	if len(s.projectiles) != 1 || s.projectiles[0].X != 112 {
		t.Fatalf("projectiles = %v, want the second one to survive", s.projectiles)
	}
}

func TestCollisionTouchingEdgesMiss(t *testing.T) {
	s, clock, _ := newPlayingSession(t)
	// Threat spans x 100..140; projectile starts exactly at its right edge.
	s.projectiles = []*object.Projectile{projectileAt(140, 110)}
	s.threats = []*object.Threat{threatAt(100, 100)}

	if hits := s.resolveCollisions(clock.Now()); len(hits) != 0 {
		t.Fatalf("hits = %+v, want none", hits)
	}
}

func TestCollisionPowerUpEffects(t *testing.T) {
	s, clock, cues := newPlayingSession(t)
	s.projectiles = []*object.Projectile{
		projectileAt(10, 10),
		projectileAt(210, 10),
		projectileAt(410, 10),
	}
	s.superSeeds = []*object.PowerUp{powerUpAt(object.KindSuperSeed, 0, 0)}
	s.loanSharks = []*object.PowerUp{powerUpAt(object.KindLoanShark, 200, 0)}
	s.pors = []*object.PowerUp{powerUpAt(object.KindPOR, 400, 0)}

	hits := s.resolveCollisions(clock.Now())
	if len(hits) != 3 {
		t.Fatalf("hits = %+v, want 3", hits)
	}
	// 10000 -> 9900 -> 10890 -> ceil(10672.2)
	if s.Debt() != 10673 {
		t.Fatalf("debt = %d, want 10673", s.Debt())
	}
	if s.por.State() != PowerUpActive {
		t.Fatal("POR timer inactive after POR hit")
	}
	wantNotes := []string{
		"Loan shark increased your debt by 10%",
		"2% of your debt has been paid with POR",
	}
	if got := s.notes.Texts(); !slices.Equal(got, wantNotes) {
		t.Fatalf("notifications = %q, want %q", got, wantNotes)
	}
	wantCues := []Cue{CuePowerUp, CuePenalty, CuePOR}
	if !slices.Equal(cues.played, wantCues) {
		t.Fatalf("cues = %v, want %v", cues.played, wantCues)
	}
}

func TestCollisionEntitiesAboveScreen(t *testing.T) {
	s, clock, _ := newPlayingSession(t)
	// Freshly spawned threats sit above the top edge.
	s.projectiles = []*object.Projectile{projectileAt(700, -5)}
	s.threats = []*object.Threat{threatAt(690, -40)}

	if hits := s.resolveCollisions(clock.Now()); len(hits) != 1 {
		t.Fatalf("hits = %+v, want 1", hits)
	}
}

func TestPruneOffScreenBoundaries(t *testing.T) {
	threats := []*object.Threat{
		threatAt(0, 600),
		threatAt(0, 601),
		threatAt(0, -40),
		threatAt(0, -41),
	}
	kept := pruneOffScreen(threats, testScreen)
	if len(kept) != 2 || kept[0].Y != 600 || kept[1].Y != -40 {
		ys := make([]float64, len(kept))
		for i, k := range kept {
			ys[i] = k.Y
		}
		t.Fatalf("kept y = %v, want [600 -40]", ys)
	}
}

func TestStepDropsThreatPastBottom(t *testing.T) {
	tests := []struct {
		y    float64
		kept int
	}{
		{600, 1},
		{601, 0},
	}
	for _, tt := range tests {
		s, _, _ := newPlayingSession(t)
		th := object.NewThreat(rand.New(rand.NewSource(1)), testScreen, 40, 40, 0)
		th.X, th.Y = 100, tt.y
		s.threats = []*object.Threat{th}

		s.Step(Input{})
		if got := len(s.threats); got != tt.kept {
			t.Errorf("threat at y=%v: %d left after Step, want %d", tt.y, got, tt.kept)
		}
	}
}
