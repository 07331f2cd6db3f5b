package session

import (
	"time"

	"github.com/tomz197/debtblaster/internal/loop/config"
	"github.com/tomz197/debtblaster/internal/object"
	"github.com/tomz197/debtblaster/internal/physics"
)

// Hit describes one resolved projectile impact.
type Hit struct {
	Kind object.Kind
	At   physics.Rect // Bounds of the struck entity
}

// category is one collidable entity class, loaded into a broad-phase grid
// once per frame. Candidates from the grid are narrowed to the lowest
// iteration index so results match a plain in-order scan.
type category struct {
	kind     object.Kind
	bounds   []physics.Rect
	consumed []bool
	grid     *physics.SpatialGrid
}

func newCategory(kind object.Kind, cfg config.Config) *category {
	maxSize := cfg.MaxEntitySize()
	return &category{
		kind: kind,
		grid: physics.NewSpatialGrid(cfg.ScreenWidth, cfg.ScreenHeight+maxSize, -maxSize, maxSize),
	}
}

// load replaces the category contents with the given entity bounds.
func (c *category) load(bounds []physics.Rect) {
	c.bounds = bounds
	if cap(c.consumed) < len(bounds) {
		c.consumed = make([]bool, len(bounds))
	}
	c.consumed = c.consumed[:len(bounds)]
	clear(c.consumed)

	c.grid.Clear()
	for i, b := range bounds {
		c.grid.Insert(b.X, b.Y, i)
	}
}

// take finds the first live entity overlapping r, marks it consumed and
// returns its index, or -1 when nothing overlaps.
func (c *category) take(r physics.Rect) int {
	best := -1
	c.grid.QueryAround(r.X, r.Y, func(i int) {
		if c.consumed[i] || (best >= 0 && i > best) {
			return
		}
		if c.bounds[i].Overlaps(r) {
			best = i
		}
	})
	if best >= 0 {
		c.consumed[best] = true
	}
	return best
}

// collider holds the per-category grids, reused across frames.
type collider struct {
	threats    *category
	superSeeds *category
	loanSharks *category
	pors       *category
}

func newCollider(cfg config.Config) *collider {
	return &collider{
		threats:    newCategory(object.KindThreat, cfg),
		superSeeds: newCategory(object.KindSuperSeed, cfg),
		loanSharks: newCategory(object.KindLoanShark, cfg),
		pors:       newCategory(object.KindPOR, cfg),
	}
}

// order returns the categories in resolution priority.
func (c *collider) order() [4]*category {
	return [4]*category{c.threats, c.superSeeds, c.loanSharks, c.pors}
}

func boundsOf[E object.Entity](entities []E) []physics.Rect {
	out := make([]physics.Rect, len(entities))
	for i, e := range entities {
		out[i] = e.Bounds()
	}
	return out
}

func keepUnconsumed[E any](entities []E, consumed []bool) []E {
	kept := entities[:0]
	for i, e := range entities {
		if !consumed[i] {
			kept = append(kept, e)
		}
	}
	clear(entities[len(kept):])
	return kept
}

// resolveCollisions tests every projectile against the threats, then the
// superseeds, loansharks and PORs. A projectile stops at its first hit.
func (s *Session) resolveCollisions(now time.Time) []Hit {
	if len(s.projectiles) == 0 {
		return nil
	}

	c := s.collide
	c.threats.load(boundsOf(s.threats))
	c.superSeeds.load(boundsOf(s.superSeeds))
	c.loanSharks.load(boundsOf(s.loanSharks))
	c.pors.load(boundsOf(s.pors))

	var hits []Hit
	spent := make([]bool, len(s.projectiles))
	for pi, p := range s.projectiles {
		pr := p.Bounds()
		for _, cat := range c.order() {
			idx := cat.take(pr)
			if idx < 0 {
				continue
			}
			spent[pi] = true
			hits = append(hits, Hit{Kind: cat.kind, At: cat.bounds[idx]})
			s.applyHit(cat.kind, now)
			break
		}
	}

	if len(hits) == 0 {
		return nil
	}
	s.projectiles = keepUnconsumed(s.projectiles, spent)
	s.threats = keepUnconsumed(s.threats, c.threats.consumed)
	s.superSeeds = keepUnconsumed(s.superSeeds, c.superSeeds.consumed)
	s.loanSharks = keepUnconsumed(s.loanSharks, c.loanSharks.consumed)
	s.pors = keepUnconsumed(s.pors, c.pors.consumed)
	return hits
}

// applyHit mutates debt, timers and notifications for a hit of the given kind.
func (s *Session) applyHit(kind object.Kind, now time.Time) {
	switch kind {
	case object.KindThreat:
		s.ledger.Apply(ResolveThreatHit)
		s.cues.Play(CueHit)
	case object.KindSuperSeed:
		s.ledger.Apply(ResolveSuperSeedHit)
		s.cues.Play(CuePowerUp)
	case object.KindLoanShark:
		s.ledger.Apply(ResolveLoanSharkHit)
		s.notes.Push(config.LoanSharkMessage, now)
		s.cues.Play(CuePenalty)
	case object.KindPOR:
		s.ledger.Apply(ResolvePORHit)
		refresh := s.por.State() == PowerUpActive
		s.por.Activate(now)
		s.notes.Push(config.PORMessage, now)
		s.cues.Play(CuePOR)
		s.log.Info("por collected", "refresh", refresh, "debt", s.ledger.Debt())
	}
}
