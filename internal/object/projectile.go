package object

import (
	"math"

	"github.com/tomz197/debtblaster/internal/loop/config"
	"github.com/tomz197/debtblaster/internal/physics"
)

// Projectile is a shot fired by the player.
type Projectile struct {
	X, Y   float64 // Top-left corner
	W, H   float64 // Size
	Angle  float64 // Degrees from vertical, 0 = straight up, positive = right
	Speed  float64
	VX, VY float64 // Velocity per frame
}

// NewProjectile creates a projectile at (x,y) traveling at angle degrees off vertical.
func NewProjectile(x, y, w, h, angle float64) *Projectile {
	rad := angle * math.Pi / 180
	return &Projectile{
		X:     x,
		Y:     y,
		W:     w,
		H:     h,
		Angle: angle,
		Speed: config.ProjectileSpeed,
		VX:    math.Sin(rad) * config.ProjectileSpeed,
		VY:    -math.Cos(rad) * config.ProjectileSpeed,
	}
}

// Kind implements Entity.
func (p *Projectile) Kind() Kind {
	return KindProjectile
}

// Bounds implements Entity.
func (p *Projectile) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Advance applies the projectile velocity.
func (p *Projectile) Advance(frames float64) {
	p.X += p.VX * frames
	p.Y += p.VY * frames
}

// OffScreen reports whether the projectile left the playfield: above the top
// edge or past either side.
func (p *Projectile) OffScreen(screen Screen) bool {
	return screen.OffScreen(p.Bounds()) || p.X < 0 || p.X > screen.Width
}
