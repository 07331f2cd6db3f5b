package object

import "github.com/tomz197/debtblaster/internal/loop/config"

// SpawnContext carries what the spawner needs for one tick.
type SpawnContext struct {
	Rand        Rand
	Screen      Screen
	Sizes       config.Config
	ThreatSpeed float64
}

// Spawn is the result of one spawner tick.
type Spawn struct {
	Threats  []*Threat
	PowerUps []*PowerUp
}

// Spawner periodically drops a threat and rolls for bonus entities.
type Spawner struct {
	initial  int
	interval int
	counter  int
}

// NewSpawner creates a spawner that fires every interval frames.
func NewSpawner(interval int) *Spawner {
	if interval < 1 {
		interval = 1
	}
	return &Spawner{
		initial:  interval,
		interval: interval,
	}
}

// Interval returns the current frames between spawn ticks.
func (s *Spawner) Interval() int {
	return s.interval
}

// SetInterval lowers the spawn interval. Raising it is ignored.
func (s *Spawner) SetInterval(frames int) {
	if frames >= 1 && frames < s.interval {
		s.interval = frames
	}
}

// Reset restores the initial interval and clears the frame counter.
func (s *Spawner) Reset() {
	s.interval = s.initial
	s.counter = 0
}

// Tick advances the frame counter. When it reaches the interval, one threat is
// spawned and each bonus entity gets an independent roll, so a tick can yield
// zero, one or several bonuses.
func (s *Spawner) Tick(ctx SpawnContext) Spawn {
	s.counter++
	if s.counter < s.interval {
		return Spawn{}
	}
	s.counter = 0

	sz := ctx.Sizes
	out := Spawn{
		Threats: []*Threat{NewThreat(ctx.Rand, ctx.Screen, sz.Threat.W, sz.Threat.H, ctx.ThreatSpeed)},
	}
	if ctx.Rand.Float64() < config.SuperSeedChance {
		out.PowerUps = append(out.PowerUps, NewSuperSeed(ctx.Rand, ctx.Screen, sz.SuperSeed.W, sz.SuperSeed.H))
	}
	if ctx.Rand.Float64() < config.LoanSharkChance {
		out.PowerUps = append(out.PowerUps, NewLoanShark(ctx.Rand, ctx.Screen, sz.LoanShark.W, sz.LoanShark.H, ctx.ThreatSpeed))
	}
	if ctx.Rand.Float64() < config.PORChance {
		out.PowerUps = append(out.PowerUps, NewPOR(ctx.Rand, ctx.Screen, sz.POR.W, sz.POR.H))
	}
	return out
}
