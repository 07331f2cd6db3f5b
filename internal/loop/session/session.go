// Package session runs the Debt Blaster simulation: spawning, motion,
// collisions, debt, difficulty, the POR timer and notifications.
//
// A Session is owned by a single goroutine and is advanced one frame at a
// time with Step. It performs no I/O; renderers read it through View.
package session

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/debtblaster/internal/loop/config"
	"github.com/tomz197/debtblaster/internal/object"
)

// ErrInvalidTransition is returned when a state change is requested from the
// wrong state.
var ErrInvalidTransition = errors.New("invalid session transition")

// State is the phase of a session.
type State int

const (
	StateNotStarted State = iota
	StateIntro
	StateNaming
	StatePlaying
	StateGameOver
)

var stateNames = [...]string{
	StateNotStarted: "not_started",
	StateIntro:      "intro",
	StateNaming:     "naming",
	StatePlaying:    "playing",
	StateGameOver:   "game_over",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Input is one frame of player intent.
type Input struct {
	Left  bool // Move left held
	Right bool // Move right held
	Fire  bool // Fire pressed this frame
	Quit  bool // Quit requested; reported back, never applied
}

// Events summarizes what happened during one Step.
type Events struct {
	Shots int   // Projectiles created by fire input
	Hits  []Hit // Resolved impacts, in resolution order
	Won   bool  // Debt reached zero this frame
	Quit  bool
}

// Options configures a new session. Zero values fall back to defaults.
type Options struct {
	Config config.Config
	Clock  Clock
	Rand   object.Rand
	Cues   CueSink
	Logger *log.Logger
}

// Session owns all per-session state.
type Session struct {
	cfg    config.Config
	screen object.Screen
	clock  Clock
	rng    object.Rand
	cues   CueSink
	log    *log.Logger

	state State
	name  string

	player      *object.Player
	projectiles []*object.Projectile
	threats     []*object.Threat
	superSeeds  []*object.PowerUp
	loanSharks  []*object.PowerUp
	pors        []*object.PowerUp

	spawner *object.Spawner
	ledger  *Ledger
	tier    Tier
	por     *PowerUpTimer
	notes   *Notifications
	collide *collider

	firstShotAt time.Time     // Zero until the first fire input
	completion  time.Duration // Time from first shot to win
}

// New validates the configuration and returns a session in StateNotStarted.
func New(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == (config.Config{}) {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	s := &Session{
		cfg:     cfg,
		screen:  object.Screen{Width: cfg.ScreenWidth, Height: cfg.ScreenHeight},
		clock:   opts.Clock,
		rng:     opts.Rand,
		cues:    opts.Cues,
		log:     opts.Logger,
		spawner: object.NewSpawner(cfg.SpawnInterval),
		ledger:  NewLedger(cfg.InitialDebt),
		por:     NewPowerUpTimer(config.PORDuration),
		notes:   NewNotifications(config.NotificationDuration),
		collide: newCollider(cfg),
	}
	if s.clock == nil {
		s.clock = SystemClock
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.cues == nil {
		s.cues = NopCues{}
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	s.Reset()
	return s, nil
}

// Reset restores every per-session value to its initial state. The session
// returns to StateNotStarted. Calling it twice is the same as calling it once.
func (s *Session) Reset() {
	s.state = StateNotStarted
	s.name = ""
	s.player = object.NewPlayer(s.screen, s.cfg.Player.W, s.cfg.Player.H)
	s.projectiles = nil
	s.threats = nil
	s.superSeeds = nil
	s.loanSharks = nil
	s.pors = nil
	s.spawner.Reset()
	s.ledger.Reset()
	s.tier = Difficulty(s.ledger.Debt())
	s.por.Reset()
	s.notes.Reset()
	s.firstShotAt = time.Time{}
	s.completion = 0
}

// State returns the current phase.
func (s *Session) State() State {
	return s.state
}

// Debt returns the current debt.
func (s *Session) Debt() int {
	return s.ledger.Debt()
}

// Name returns the player name captured in the naming phase.
func (s *Session) Name() string {
	return s.name
}

// CompletionTime returns the time from the first shot to the win.
func (s *Session) CompletionTime() time.Duration {
	return s.completion
}

func (s *Session) transition(from, to State) error {
	if s.state != from {
		return fmt.Errorf("%w: %s -> %s while %s", ErrInvalidTransition, from, to, s.state)
	}
	s.log.Debug("session transition", "from", from, "to", to)
	s.state = to
	return nil
}

// Begin starts the intro.
func (s *Session) Begin() error {
	return s.transition(StateNotStarted, StateIntro)
}

// FinishIntro moves on to name entry.
func (s *Session) FinishIntro() error {
	return s.transition(StateIntro, StateNaming)
}

// SetName records the player name and starts play.
func (s *Session) SetName(name string) error {
	if err := s.transition(StateNaming, StatePlaying); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > config.MaxNameLength {
		name = string(r[:config.MaxNameLength])
	}
	s.name = name
	s.log.Info("game started", "name", name)
	return nil
}

// Replay resets everything after a win and returns to StateNotStarted.
func (s *Session) Replay() error {
	if s.state != StateGameOver {
		return fmt.Errorf("%w: replay while %s", ErrInvalidTransition, s.state)
	}
	s.Reset()
	return nil
}

// Step advances the simulation by one frame. Outside StatePlaying it only
// reports the quit request.
func (s *Session) Step(in Input) Events {
	ev := Events{Quit: in.Quit}
	if s.state != StatePlaying {
		return ev
	}
	now := s.clock.Now()

	if s.por.State() == PowerUpActive && s.por.Check(now) == PowerUpInactive {
		s.log.Info("por expired")
	}

	s.player.Move(in.Left, in.Right, s.screen.Width)
	if in.Fire {
		ev.Shots = s.fire(now)
	}

	s.spawn()
	s.advance()
	ev.Hits = s.resolveCollisions(now)
	s.applyDifficulty()
	s.notes.Prune(now)

	if s.ledger.CheckWin() {
		s.win(now)
		ev.Won = true
	}
	return ev
}

// fire launches one shot, or the triple spread while POR is active.
func (s *Session) fire(now time.Time) int {
	shots := s.player.Fire(s.cfg.Projectile, s.por.State() == PowerUpActive)
	s.projectiles = append(s.projectiles, shots...)
	s.cues.Play(CueShot)
	if s.firstShotAt.IsZero() {
		s.firstShotAt = now
	}
	return len(shots)
}

// spawn runs the spawner and files new entities into their collections.
func (s *Session) spawn() {
	out := s.spawner.Tick(object.SpawnContext{
		Rand:        s.rng,
		Screen:      s.screen,
		Sizes:       s.cfg,
		ThreatSpeed: s.tier.ThreatSpeed,
	})
	s.threats = append(s.threats, out.Threats...)
	for _, p := range out.PowerUps {
		switch p.Kind() {
		case object.KindSuperSeed:
			s.superSeeds = append(s.superSeeds, p)
		case object.KindLoanShark:
			s.loanSharks = append(s.loanSharks, p)
		case object.KindPOR:
			s.pors = append(s.pors, p)
		}
	}
}

// advance moves every entity one frame and drops whatever left the screen.
func (s *Session) advance() {
	for _, p := range s.projectiles {
		p.Advance(1)
	}
	s.projectiles = object.Filter(s.projectiles, func(p *object.Projectile) bool {
		return !p.OffScreen(s.screen)
	})
	s.threats = advanceAndPrune(s.threats, s.screen)
	s.superSeeds = advanceAndPrune(s.superSeeds, s.screen)
	s.loanSharks = advanceAndPrune(s.loanSharks, s.screen)
	s.pors = advanceAndPrune(s.pors, s.screen)
}

func advanceAndPrune[E object.Entity](entities []E, screen object.Screen) []E {
	for _, e := range entities {
		e.Advance(1)
	}
	return pruneOffScreen(entities, screen)
}

func pruneOffScreen[E object.Entity](entities []E, screen object.Screen) []E {
	return object.Filter(entities, func(e E) bool {
		return !screen.OffScreen(e.Bounds())
	})
}

// applyDifficulty re-derives the tier from the debt. The spawn interval can
// only go down.
func (s *Session) applyDifficulty() {
	tier := Difficulty(s.ledger.Debt())
	if tier != s.tier {
		s.log.Debug("difficulty changed", "speed", tier.ThreatSpeed, "debt", s.ledger.Debt())
	}
	s.tier = tier
	if tier.SpawnInterval > 0 {
		s.spawner.SetInterval(tier.SpawnInterval)
	}
}

func (s *Session) win(now time.Time) {
	if !s.firstShotAt.IsZero() {
		s.completion = now.Sub(s.firstShotAt)
	}
	s.state = StateGameOver
	s.log.Info("debt paid off", "name", s.name, "time", s.completion)
}
