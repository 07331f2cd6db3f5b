package object

import (
	"math"

	"github.com/tomz197/debtblaster/internal/loop/config"
	"github.com/tomz197/debtblaster/internal/physics"
)

// Player is the ship at the bottom of the screen. It only moves sideways.
type Player struct {
	X, Y  float64 // Top-left corner
	W, H  float64 // Size
	Speed float64 // Horizontal units per frame
}

// NewPlayer creates a ship centered horizontally near the bottom edge.
func NewPlayer(screen Screen, w, h float64) *Player {
	return &Player{
		X:     math.Floor(screen.Width/2) - math.Floor(w/2),
		Y:     screen.Height - h - config.PlayerBottomMargin,
		W:     w,
		H:     h,
		Speed: config.PlayerSpeed,
	}
}

// Kind implements Entity.
func (p *Player) Kind() Kind {
	return KindPlayer
}

// Bounds implements Entity.
func (p *Player) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Advance is a no-op; the ship moves only in response to input.
func (p *Player) Advance(float64) {}

// Move shifts the ship by one step per held direction and keeps it on screen.
func (p *Player) Move(left, right bool, screenWidth float64) {
	if left {
		p.X -= p.Speed
	}
	if right {
		p.X += p.Speed
	}
	p.X = physics.Clamp(p.X, 0, screenWidth-p.W)
}

// Muzzle returns the top-left position for a projectile of the given width,
// centered on the nose of the ship.
func (p *Player) Muzzle(projectileWidth float64) (x, y float64) {
	return p.X + math.Floor(p.W/2) - math.Floor(projectileWidth/2), p.Y
}

// Fire creates the projectiles for one shot: straight up, or a three-way
// spread when spread is true.
func (p *Player) Fire(projectile config.Size, spread bool) []*Projectile {
	x, y := p.Muzzle(projectile.W)
	if !spread {
		return []*Projectile{NewProjectile(x, y, projectile.W, projectile.H, 0)}
	}
	return []*Projectile{
		NewProjectile(x, y, projectile.W, projectile.H, 0),
		NewProjectile(x, y, projectile.W, projectile.H, -config.SpreadAngle),
		NewProjectile(x, y, projectile.W, projectile.H, config.SpreadAngle),
	}
}
