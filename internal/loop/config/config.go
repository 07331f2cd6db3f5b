// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

// Reference logical resolution. Rendering scales this to the terminal.
const (
	ScreenWidth  = 800
	ScreenHeight = 600
)

// Debt
const (
	InitialDebt       = 10000
	ThreatHitDebt     = 10  // Flat reduction per threat hit
	SuperSeedPercent  = 99  // debt = ceil(debt * 99 / 100)
	LoanSharkPercent  = 110 // debt = ceil(debt * 110 / 100)
	PORPercent        = 98  // debt = ceil(debt * 98 / 100)
	MidTierDebt       = 8000
	HighTierDebt      = 5000
	BaseThreatSpeed   = 2.0
	MidThreatSpeed    = 2.5
	HighThreatSpeed   = 3.0
	HighSpawnInterval = 50
)

// Spawning
const (
	SpawnInterval      = 60 // Frames between spawn ticks (1s at 60Hz)
	SuperSeedChance    = 0.10
	LoanSharkChance    = 0.15
	PORChance          = 0.05
	SuperSeedSpeed     = 3.0
	PORSpeed           = 2.5
	LoanSharkSpeedMult = 1.5
)

// Player and projectiles
const (
	PlayerSpeed        = 5.0
	PlayerBottomMargin = 20
	ProjectileSpeed    = 10.0
	SpreadAngle        = 30.0 // Degrees off vertical for POR side shots
)

// Timers
const (
	PORDuration          = 30 * time.Second
	NotificationDuration = 3 * time.Second
	IntroDuration        = 30 * time.Second
)

// Notification texts
const (
	LoanSharkMessage = "Loan shark increased your debt by 10%"
	PORMessage       = "2% of your debt has been paid with POR"
)

// Rendering
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	MaxTermWidth    = 200
	MaxTermHeight   = 60
	MaxNameLength   = 16
)

// Hit sparks
const (
	SparkCount    = 10
	SparkSpeed    = 180.0 // Logical units per second
	SparkLifetime = 0.45  // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// End screen
const (
	EndScreenLockoutSeconds = 1.5 // Space is ignored this long after a win
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Size is the width and height of an entity box in logical units.
type Size struct {
	W, H float64
}

// Config holds the per-session tunables that must be injectable for tests
// and alternative resolutions.
type Config struct {
	ScreenWidth   float64
	ScreenHeight  float64
	SpawnInterval int
	InitialDebt   int

	Player     Size
	Projectile Size
	Threat     Size
	SuperSeed  Size
	LoanShark  Size
	POR        Size
}

// Default returns the reference configuration (800x600, fallback sprite sizes).
func Default() Config {
	return Config{
		ScreenWidth:   ScreenWidth,
		ScreenHeight:  ScreenHeight,
		SpawnInterval: SpawnInterval,
		InitialDebt:   InitialDebt,
		Player:        Size{W: 60, H: 40},
		Projectile:    Size{W: 5, H: 10},
		Threat:        Size{W: 40, H: 40},
		SuperSeed:     Size{W: 30, H: 30},
		LoanShark:     Size{W: 50, H: 50},
		POR:           Size{W: 35, H: 35},
	}
}

// Validate reports the first unusable setting, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("%w: screen size %vx%v must be positive", ErrInvalidConfig, c.ScreenWidth, c.ScreenHeight)
	}
	if c.SpawnInterval <= 0 {
		return fmt.Errorf("%w: spawn interval %d must be positive", ErrInvalidConfig, c.SpawnInterval)
	}
	if c.InitialDebt <= 0 {
		return fmt.Errorf("%w: initial debt %d must be positive", ErrInvalidConfig, c.InitialDebt)
	}

	sizes := []struct {
		name string
		size Size
	}{
		{"player", c.Player},
		{"projectile", c.Projectile},
		{"threat", c.Threat},
		{"superseed", c.SuperSeed},
		{"loanshark", c.LoanShark},
		{"por", c.POR},
	}
	for _, s := range sizes {
		if s.size.W <= 0 || s.size.H <= 0 {
			return fmt.Errorf("%w: %s size %vx%v must be positive", ErrInvalidConfig, s.name, s.size.W, s.size.H)
		}
		if s.size.W > c.ScreenWidth || s.size.H > c.ScreenHeight {
			return fmt.Errorf("%w: %s does not fit on a %vx%v screen", ErrInvalidConfig, s.name, c.ScreenWidth, c.ScreenHeight)
		}
	}
	return nil
}

// MaxEntitySize returns the largest side of any falling entity or projectile.
func (c Config) MaxEntitySize() float64 {
	m := 0.0
	for _, s := range []Size{c.Projectile, c.Threat, c.SuperSeed, c.LoanShark, c.POR} {
		m = max(m, s.W, s.H)
	}
	return m
}
