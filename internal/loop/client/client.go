// Package client runs one player's terminal front end: it reads keys, drives
// a session.Session at a fixed frame rate and draws it to the terminal.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/debtblaster/internal/draw"
	"github.com/tomz197/debtblaster/internal/input"
	"github.com/tomz197/debtblaster/internal/loop/config"
	"github.com/tomz197/debtblaster/internal/loop/server"
	"github.com/tomz197/debtblaster/internal/loop/session"
	"github.com/tomz197/debtblaster/internal/object"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	session      *session.Session
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	clock        session.Clock
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	offsetCol    int // Current centering offset of the render area
	offsetRow    int
	idleLimit    bool
	sparks       object.Rand
	log          *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc   draw.TermSizeFunc
	Username       string
	Config         config.Config   // Zero value means config.Default()
	Rand           object.Rand     // Spawn randomness; seeded from the time if nil
	Cues           session.CueSink // Sound cues; silent if nil
	Clock          session.Clock   // Defaults to the wall clock
	Logger         *log.Logger
	DisconnectIdle bool // Warn and then disconnect players who stop pressing keys
}

// NewClient creates a session for one player and registers it with gs.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	clock := opts.Clock
	if clock == nil {
		clock = session.SystemClock
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sess, err := session.New(session.Options{
		Config: opts.Config,
		Clock:  clock,
		Rand:   opts.Rand,
		Cues:   opts.Cues,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("new client: %w", err)
	}
	screen := sess.View().Screen

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, screen.Width, screen.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       gs.RegisterClient(opts.Username),
		session:      sess,
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		clock:        clock,
		lastInput:    clock.Now(),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		offsetCol:    offsetCol,
		offsetRow:    offsetRow,
		idleLimit:    opts.DisconnectIdle,
		sparks:       rand.New(rand.NewSource(time.Now().UnixNano())),
		log:          logger,
	}, nil
}

// Run starts the client loop. Blocks until the player quits, the input
// closes, ctx is cancelled or the server shutdown countdown ends.
func (c *Client) Run(ctx context.Context) error {
	defer c.server.UnregisterClient(c.handle.ID)

	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	if err := c.session.Begin(); err != nil {
		return err
	}
	c.state.introStarted = c.clock.Now()
	c.state.View = c.session.View()

	lastTime := time.Now()

	for c.state.Running {
		select {
		case <-ctx.Done():
			c.state.Running = false
			continue
		default:
		}

		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()
		if err := c.update(); err != nil {
			return err
		}

		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	c.state.releaseParticles()
	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads this frame's keys.
func (c *Client) processInput() {
	c.applyInput(input.ReadInput(c.inputStream))
}

// applyInput records the frame's keys and handles quitting and idling.
func (c *Client) applyInput(in input.Input) {
	c.state.Input = in

	now := c.clock.Now()
	idle := now.Sub(c.lastInput).Seconds()
	switch {
	case len(in.Pressed) > 0 || in.Left || in.Right:
		c.lastInput = now
		c.state.isInactive = false
	case !c.idleLimit:
	case idle > config.InactivityDisconnectUser:
		c.log.Info("disconnecting idle player", "user", c.username)
		c.state.Running = false
	case idle > config.InactivityWarnUser:
		c.state.isInactive = true
	}

	if in.Closed || in.Quit {
		c.state.Running = false
	}
	// 'q' is a letter like any other while typing a name
	if in.QuitKey && (c.state.ShuttingDown || c.session.State() != session.StateNaming) {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			if event.Type == server.EventServerShutdown && !c.state.ShuttingDown {
				c.state.ShuttingDown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth == c.canvas.TerminalWidth() && renderHeight == c.canvas.TerminalHeight() &&
		offsetCol == c.offsetCol && offsetRow == c.offsetRow {
		return
	}

	c.chunkWriter.WriteString("\033[H\033[2J")
	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.canvas.ForceRedraw()
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
	c.offsetCol, c.offsetRow = offsetCol, offsetRow
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(min(termWidth, config.MaxTermWidth), 1)
	renderHeight = max(min(termHeight, config.MaxTermHeight), 1)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

// update advances the current screen by one frame and refreshes the view.
func (c *Client) update() error {
	var err error
	switch c.state.Screen() {
	case ScreenIntro:
		err = c.updateIntro()
	case ScreenNaming:
		err = c.updateNaming()
	case ScreenPlaying:
		c.updatePlaying()
	case ScreenEnd:
		err = c.updateEnd()
	case ScreenShutdown:
		c.updateShutdown()
	}
	c.state.particles = object.UpdateParticles(c.state.particles, c.state.delta.Seconds())
	c.state.View = c.session.View()
	return err
}

// updateIntro skips to name entry on Space or Enter, or after the intro ran out.
func (c *Client) updateIntro() error {
	in := c.state.Input
	if !in.Fire && !in.Enter && c.clock.Now().Sub(c.state.introStarted) < config.IntroDuration {
		return nil
	}
	c.state.name = c.state.name[:0]
	c.inputStream.Reset()
	return c.session.FinishIntro()
}

// updateNaming applies typed characters in order. Enter submits the name.
func (c *Client) updateNaming() error {
	for _, b := range c.state.Input.Pressed {
		switch {
		case b == '\r' || b == '\n':
			c.inputStream.Reset()
			return c.session.SetName(string(c.state.name))
		case b == '\b' || b == 0x7f:
			if n := len(c.state.name); n > 0 {
				c.state.name = c.state.name[:n-1]
			}
		case b >= ' ' && b < 0x7f:
			if len(c.state.name) < config.MaxNameLength {
				c.state.name = append(c.state.name, rune(b))
			}
		}
	}
	return nil
}

// updatePlaying steps the simulation and throws sparks for every hit.
func (c *Client) updatePlaying() {
	in := c.state.Input
	ev := c.session.Step(session.Input{
		Left:  in.Left,
		Right: in.Right,
		Fire:  in.Fire,
		Quit:  in.Quit,
	})
	for _, h := range ev.Hits {
		cx := h.At.X + h.At.W/2
		cy := h.At.Y + h.At.H/2
		c.state.particles = object.SpawnBurst(c.state.particles, c.sparks, cx, cy,
			config.SparkCount, config.SparkSpeed, config.SparkLifetime, h.Kind)
	}
	if ev.Won {
		c.log.Info("player won", "user", c.username, "name", c.session.Name(), "time", c.session.CompletionTime())
		c.state.endLockout = config.EndScreenLockoutSeconds
		c.inputStream.Reset()
	}
}

// updateEnd restarts from the intro when Space is pressed after the lockout.
func (c *Client) updateEnd() error {
	if c.state.endLockout > 0 {
		c.state.endLockout -= c.state.delta.Seconds()
		if c.state.endLockout < 0 {
			c.state.endLockout = 0
		}
	}
	if !c.state.Input.Fire || c.state.endLockout > 0 {
		return nil
	}
	c.state.releaseParticles()
	if err := c.session.Replay(); err != nil {
		return err
	}
	c.inputStream.Reset()
	c.state.introStarted = c.clock.Now()
	return c.session.Begin()
}

// updateShutdown handles the shutdown screen countdown.
func (c *Client) updateShutdown() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
