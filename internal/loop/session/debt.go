package session

import "github.com/tomz197/debtblaster/internal/loop/config"

// Tier is the difficulty derived from the current debt.
type Tier struct {
	ThreatSpeed   float64
	SpawnInterval int // 0 means "leave the spawner alone"
}

// Difficulty maps a debt value to its tier. The tighter threshold wins.
func Difficulty(debt int) Tier {
	switch {
	case debt < config.HighTierDebt:
		return Tier{ThreatSpeed: config.HighThreatSpeed, SpawnInterval: config.HighSpawnInterval}
	case debt < config.MidTierDebt:
		return Tier{ThreatSpeed: config.MidThreatSpeed}
	default:
		return Tier{ThreatSpeed: config.BaseThreatSpeed}
	}
}

// ResolveThreatHit applies the flat threat reduction. The result is not
// clamped; only the win check clamps.
func ResolveThreatHit(debt int) int {
	return debt - config.ThreatHitDebt
}

// ResolveSuperSeedHit applies the 1% SuperSeed reduction, rounding up.
func ResolveSuperSeedHit(debt int) int {
	return scaleDebt(debt, config.SuperSeedPercent)
}

// ResolveLoanSharkHit applies the 10% LoanShark penalty, rounding up.
func ResolveLoanSharkHit(debt int) int {
	return scaleDebt(debt, config.LoanSharkPercent)
}

// ResolvePORHit applies the 2% POR reduction, rounding up. Activating the
// triple shot is the caller's job.
func ResolvePORHit(debt int) int {
	return scaleDebt(debt, config.PORPercent)
}

// scaleDebt returns ceil(debt * percent / 100) in exact integer arithmetic.
func scaleDebt(debt, percent int) int {
	return ceilDiv(debt*percent, 100)
}

// ceilDiv rounds a/b toward positive infinity for b > 0.
func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}

// Ledger owns the debt counter.
type Ledger struct {
	initial int
	debt    int
}

// NewLedger creates a ledger holding the initial debt.
func NewLedger(initial int) *Ledger {
	return &Ledger{initial: initial, debt: initial}
}

// Debt returns the current debt.
func (l *Ledger) Debt() int {
	return l.debt
}

// Apply replaces the debt with f(debt).
func (l *Ledger) Apply(f func(int) int) {
	l.debt = f(l.debt)
}

// CheckWin clamps the debt to zero and reports true once it is paid off.
func (l *Ledger) CheckWin() bool {
	if l.debt > 0 {
		return false
	}
	l.debt = 0
	return true
}

// Reset restores the initial debt.
func (l *Ledger) Reset() {
	l.debt = l.initial
}
