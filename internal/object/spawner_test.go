package object

import (
	"testing"

	"github.com/tomz197/debtblaster/internal/loop/config"
)

// scriptedRand replays fixed Float64 rolls and records Intn arguments.
type scriptedRand struct {
	floats []float64
	intns  []int
}

func (r *scriptedRand) Intn(n int) int {
	r.intns = append(r.intns, n)
	return n - 1
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func spawnContext(rng Rand) SpawnContext {
	return SpawnContext{
		Rand:        rng,
		Screen:      Screen{Width: 800, Height: 600},
		Sizes:       config.Default(),
		ThreatSpeed: 2,
	}
}

func TestSpawnerFiresOnInterval(t *testing.T) {
	s := NewSpawner(3)
	rng := &scriptedRand{}
	for i := 1; i <= 2; i++ {
		if out := s.Tick(spawnContext(rng)); len(out.Threats) != 0 {
			t.Fatalf("tick %d spawned %d threats, want 0", i, len(out.Threats))
		}
	}
	out := s.Tick(spawnContext(rng))
	if len(out.Threats) != 1 || len(out.PowerUps) != 0 {
		t.Fatalf("tick 3 = %d threats, %d power-ups, want 1 and 0", len(out.Threats), len(out.PowerUps))
	}

	th := out.Threats[0]
	if th.X != 760 || th.Y != -40 || th.Speed != 2 {
		t.Fatalf("threat = (%v,%v) speed %v, want (760,-40) speed 2", th.X, th.Y, th.Speed)
	}
	if len(rng.intns) != 1 || rng.intns[0] != 761 {
		t.Fatalf("Intn calls = %v, want [761]", rng.intns)
	}
}

func TestSpawnerIndependentRolls(t *testing.T) {
	s := NewSpawner(1)
	rng := &scriptedRand{floats: []float64{0.05, 0.10, 0.01}}
	out := s.Tick(spawnContext(rng))

	if len(out.PowerUps) != 3 {
		t.Fatalf("power-ups = %d, want 3", len(out.PowerUps))
	}
	wantKinds := []Kind{KindSuperSeed, KindLoanShark, KindPOR}
	wantSpeed := []float64{3, 3, 2.5}
	for i, p := range out.PowerUps {
		if p.Kind() != wantKinds[i] {
			t.Errorf("power-up %d kind = %s, want %s", i, p.Kind(), wantKinds[i])
		}
		if p.Speed != wantSpeed[i] {
			t.Errorf("power-up %d speed = %v, want %v", i, p.Speed, wantSpeed[i])
		}
		if p.Y != -p.H {
			t.Errorf("power-up %d y = %v, want %v", i, p.Y, -p.H)
		}
	}
	// One placement per entity: threat, superseed, loanshark, por.
	want := []int{761, 771, 751, 766}
	if len(rng.intns) != len(want) {
		t.Fatalf("Intn calls = %v, want %v", rng.intns, want)
	}
	for i := range want {
		if rng.intns[i] != want[i] {
			t.Fatalf("Intn calls = %v, want %v", rng.intns, want)
		}
	}
}

func TestSpawnerRollsAtThresholdFail(t *testing.T) {
	s := NewSpawner(1)
	rng := &scriptedRand{floats: []float64{config.SuperSeedChance, config.LoanSharkChance, config.PORChance}}
	if out := s.Tick(spawnContext(rng)); len(out.PowerUps) != 0 {
		t.Fatalf("power-ups = %d, want 0", len(out.PowerUps))
	}
}

func TestSpawnerIntervalOnlyLowers(t *testing.T) {
	s := NewSpawner(60)
	s.SetInterval(50)
	s.SetInterval(70)
	if s.Interval() != 50 {
		t.Fatalf("interval = %d, want 50", s.Interval())
	}
	s.Reset()
	if s.Interval() != 60 {
		t.Fatalf("interval after reset = %d, want 60", s.Interval())
	}
}
