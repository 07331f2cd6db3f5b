package object

// Threat is a falling debt bag. Hitting it pays off a flat amount.
type Threat struct {
	body
}

// NewThreat spawns a threat at a random column with the current threat speed.
func NewThreat(rng Rand, screen Screen, w, h, speed float64) *Threat {
	return &Threat{body: spawnBody(rng, screen, w, h, speed)}
}

// Kind implements Entity.
func (t *Threat) Kind() Kind {
	return KindThreat
}
