package object

import "github.com/tomz197/debtblaster/internal/loop/config"

// PowerUp is a falling collectible: a SuperSeed, a LoanShark penalty or a POR.
type PowerUp struct {
	body
	kind Kind
}

// NewSuperSeed spawns a 1% debt reducer.
func NewSuperSeed(rng Rand, screen Screen, w, h float64) *PowerUp {
	return &PowerUp{body: spawnBody(rng, screen, w, h, config.SuperSeedSpeed), kind: KindSuperSeed}
}

// NewLoanShark spawns a 10% penalty that falls faster than the current threats.
func NewLoanShark(rng Rand, screen Screen, w, h, threatSpeed float64) *PowerUp {
	speed := threatSpeed * config.LoanSharkSpeedMult
	return &PowerUp{body: spawnBody(rng, screen, w, h, speed), kind: KindLoanShark}
}

// NewPOR spawns a paydown power-up that grants the triple shot.
func NewPOR(rng Rand, screen Screen, w, h float64) *PowerUp {
	return &PowerUp{body: spawnBody(rng, screen, w, h, config.PORSpeed), kind: KindPOR}
}

// Kind implements Entity.
func (p *PowerUp) Kind() Kind {
	return p.kind
}
