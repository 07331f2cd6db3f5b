package object

import (
	"math"
	"sync"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived spark left behind by a hit. It is purely
// visual and never collides.
type Particle struct {
	X, Y        float64 // Position in logical units
	VX, VY      float64 // Velocity in logical units per second
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per 60 Hz frame (1.0 = no drag)
	Source      Kind    // Kind of the entity that was hit
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64, source Kind) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.92
	p.Source = source
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnBurst appends count particles flying out of (x, y) in random
// directions and returns the extended slice.
func SpawnBurst(dst []*Particle, rng Rand, x, y float64, count int, speed, lifetime float64, source Kind) []*Particle {
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		// Speed 50% to 150%, lifetime 50% to 100%
		spd := speed * (0.5 + rng.Float64())
		life := lifetime * (0.5 + rng.Float64()*0.5)
		dst = append(dst, NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life, source))
	}
	return dst
}

// Update moves the particle by dt seconds. It reports true once the
// particle has burned out.
func (p *Particle) Update(dt float64) bool {
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY *= dragFactor

	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false
}

// Visible reports whether the particle should still be drawn. Sparks vanish
// in their last quarter of life.
func (p *Particle) Visible() bool {
	if p.MaxLifetime <= 0 {
		return false
	}
	return p.Lifetime/p.MaxLifetime >= 0.25
}

// UpdateParticles advances every particle, releasing and dropping the
// burnt-out ones.
func UpdateParticles(particles []*Particle, dt float64) []*Particle {
	return Filter(particles, func(p *Particle) bool {
		if p.Update(dt) {
			p.Release()
			return false
		}
		return true
	})
}
