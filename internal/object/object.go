// Package object defines the entities of the playfield and their motion rules.
package object

import (
	"github.com/tomz197/debtblaster/internal/physics"
)

// Kind identifies an entity variant.
type Kind int

const (
	KindThreat Kind = iota
	KindSuperSeed
	KindLoanShark
	KindPOR
	KindProjectile
	KindPlayer
)

var kindNames = [...]string{
	KindThreat:     "threat",
	KindSuperSeed:  "superseed",
	KindLoanShark:  "loanshark",
	KindPOR:        "por",
	KindProjectile: "projectile",
	KindPlayer:     "player",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Rand is the random source used for spawn placement and bonus rolls.
// *rand.Rand from math/rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Screen holds the logical playfield dimensions.
type Screen struct {
	Width  float64
	Height float64
}

// OffScreen reports whether a box has left the visible vertical range
// [-height, screenHeight]. Both bounds are inclusive.
func (s Screen) OffScreen(r physics.Rect) bool {
	return r.Y > s.Height || r.Y < -r.H
}

// Entity is a movable, collidable object on the playfield.
type Entity interface {
	Kind() Kind
	Bounds() physics.Rect
	// Advance applies the entity's velocity for the given number of frames.
	Advance(frames float64)
}

// body is the shared state of every falling entity.
type body struct {
	X, Y  float64 // Top-left corner
	W, H  float64 // Size
	Speed float64 // Downward units per frame
}

func (b *body) Bounds() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Advance moves the body straight down.
func (b *body) Advance(frames float64) {
	b.Y += b.Speed * frames
}

// spawnBody places a body at a random column fully inside the screen, just
// above the visible area.
func spawnBody(rng Rand, screen Screen, w, h, speed float64) body {
	span := int(screen.Width - w)
	if span < 0 {
		span = 0
	}
	return body{
		X:     float64(rng.Intn(span + 1)),
		Y:     -h,
		W:     w,
		H:     h,
		Speed: speed,
	}
}

// Filter keeps the entities for which keep returns true, reusing the backing
// array of the input slice.
func Filter[E any](entities []E, keep func(E) bool) []E {
	kept := entities[:0]
	for _, e := range entities {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	clear(entities[len(kept):])
	return kept
}
