package client

import (
	"bufio"
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/debtblaster/internal/input"
	"github.com/tomz197/debtblaster/internal/loop/config"
	"github.com/tomz197/debtblaster/internal/loop/server"
	"github.com/tomz197/debtblaster/internal/loop/session"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

type testClient struct {
	*Client
	clock *fakeClock
	out   *bytes.Buffer
	srv   *server.Server
}

func newTestClient(t *testing.T, cfg config.Config, disconnectIdle bool) *testClient {
	t.Helper()
	clk := &fakeClock{now: time.Unix(1_000_000, 0)}
	srv := server.NewServer(nil)
	out := &bytes.Buffer{}
	c, err := NewClient(srv, bufio.NewReader(strings.NewReader("")), out, ClientOptions{
		TermSizeFunc:   func() (int, int, error) { return 80, 30, nil },
		Username:       "tester",
		Config:         cfg,
		Rand:           rand.New(rand.NewSource(1)),
		Clock:          clk,
		DisconnectIdle: disconnectIdle,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if err := c.session.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	c.state.introStarted = clk.now
	c.state.View = c.session.View()
	return &testClient{Client: c, clock: clk, out: out, srv: srv}
}

// frame applies one frame of input and advances the fake clock.
func (tc *testClient) frame(t *testing.T, in input.Input) {
	t.Helper()
	tc.applyInput(in)
	if err := tc.update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	tc.clock.now = tc.clock.now.Add(config.TargetFrameTime)
}

// render draws one frame and returns what was written.
func (tc *testClient) render(t *testing.T) string {
	t.Helper()
	tc.out.Reset()
	if err := tc.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	return tc.out.String()
}

func (tc *testClient) toPlaying(t *testing.T, name string) {
	t.Helper()
	tc.frame(t, input.Input{Fire: true})
	tc.frame(t, input.Input{Pressed: []byte(name + "\r"), Enter: true})
	if got := tc.session.State(); got != session.StatePlaying {
		t.Fatalf("state = %s, want playing", got)
	}
}

func TestNewClientRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.SpawnInterval = 0
	_, err := NewClient(server.NewServer(nil), bufio.NewReader(strings.NewReader("")), &bytes.Buffer{}, ClientOptions{
		TermSizeFunc: func() (int, int, error) { return 80, 30, nil },
		Config:       cfg,
	})
	if err == nil {
		t.Fatal("NewClient accepted a zero spawn interval")
	}
}

func TestIntroSkip(t *testing.T) {
	tc := newTestClient(t, config.Config{}, false)
	if !strings.Contains(tc.render(t), "Starting in 30s") {
		t.Fatal("intro countdown missing")
	}

	tc.frame(t, input.Input{})
	if got := tc.state.Screen(); got != ScreenIntro {
		t.Fatalf("screen = %d without input, want intro", got)
	}
	tc.frame(t, input.Input{Fire: true})
	if got := tc.state.Screen(); got != ScreenNaming {
		t.Fatalf("screen = %d after Space, want naming", got)
	}
	if !strings.Contains(tc.render(t), "Enter your name, Seedizen:") {
		t.Fatal("name prompt missing")
	}
}

func TestIntroTimesOut(t *testing.T) {
	tc := newTestClient(t, config.Config{}, false)
	tc.clock.now = tc.clock.now.Add(config.IntroDuration)
	tc.frame(t, input.Input{})
	if got := tc.session.State(); got != session.StateNaming {
		t.Fatalf("state = %s after the intro ran out, want naming", got)
	}
}

func TestNameEntry(t *testing.T) {
	tc := newTestClient(t, config.Config{}, false)
	tc.frame(t, input.Input{Enter: true, Pressed: []byte("\r")})

	tc.frame(t, input.Input{Pressed: []byte("bobx\x7f")})
	if got := string(tc.state.name); got != "bob" {
		t.Fatalf("name = %q, want %q", got, "bob")
	}
	if got := tc.session.State(); got != session.StateNaming {
		t.Fatalf("state = %s before Enter, want naming", got)
	}

	tc.frame(t, input.Input{Pressed: []byte("\r"), Enter: true})
	if got := tc.session.Name(); got != "bob" {
		t.Fatalf("session name = %q, want %q", got, "bob")
	}
	if got := tc.session.State(); got != session.StatePlaying {
		t.Fatalf("state = %s after Enter, want playing", got)
	}
}

func TestNameEntryLimit(t *testing.T) {
	tc := newTestClient(t, config.Config{}, false)
	tc.frame(t, input.Input{Fire: true})
	tc.frame(t, input.Input{Pressed: []byte(strings.Repeat("x", 40))})
	if got := len(tc.state.name); got != config.MaxNameLength {
		t.Fatalf("name length = %d, want %d", got, config.MaxNameLength)
	}
}

func TestQuitKey(t *testing.T) {
	tests := []struct {
		name    string
		naming  bool
		in      input.Input
		running bool
	}{
		{"q on intro", false, input.Input{QuitKey: true, Pressed: []byte("q")}, false},
		{"q while naming", true, input.Input{QuitKey: true, Pressed: []byte("q")}, true},
		{"ctrl-c while naming", true, input.Input{Quit: true}, false},
		{"input closed", false, input.Input{Closed: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestClient(t, config.Config{}, false)
			if tt.naming {
				tc.frame(t, input.Input{Fire: true})
			}
			tc.applyInput(tt.in)
			if tc.state.Running != tt.running {
				t.Fatalf("Running = %v, want %v", tc.state.Running, tt.running)
			}
		})
	}
}

func TestPlayingHUD(t *testing.T) {
	tc := newTestClient(t, config.Config{}, false)
	tc.toPlaying(t, "bob")
	tc.frame(t, input.Input{Fire: true})

	out := tc.render(t)
	if !strings.Contains(out, "Debt: $10000") {
		t.Errorf("debt missing from HUD: %q", out)
	}
	if !strings.Contains(out, "█") && !strings.Contains(out, "▀") && !strings.Contains(out, "▄") {
		t.Errorf("nothing drawn on the playfield")
	}
}

func TestWinAndReplay(t *testing.T) {
	// A screen as wide as the ship makes every falling entity line up with
	// the stream of shots.
	cfg := config.Default()
	cfg.ScreenWidth = 60
	cfg.ScreenHeight = 200
	cfg.SpawnInterval = 1
	cfg.InitialDebt = 10

	tc := newTestClient(t, cfg, false)
	tc.toPlaying(t, "bob")

	for i := 0; i < 1000 && tc.session.State() == session.StatePlaying; i++ {
		tc.frame(t, input.Input{Fire: true})
	}
	if got := tc.state.Screen(); got != ScreenEnd {
		t.Fatalf("screen = %d, want end screen after paying off the debt", got)
	}
	if len(tc.state.particles) == 0 {
		t.Error("hits left no sparks")
	}

	out := tc.render(t)
	if !strings.Contains(out, "Congratulations, bob! WAGMI!") {
		t.Errorf("win message missing: %q", out)
	}
	if !strings.Contains(out, "Time: ") {
		t.Errorf("completion time missing: %q", out)
	}

	// Held Space from the last shots must not skip the end screen.
	for i := 0; i < 10; i++ {
		tc.frame(t, input.Input{Fire: true})
	}
	if got := tc.session.State(); got != session.StateGameOver {
		t.Fatalf("state = %s after Space during the lockout, want game over", got)
	}

	tc.state.delta = time.Duration(config.EndScreenLockoutSeconds*1000+1) * time.Millisecond
	tc.frame(t, input.Input{Fire: true})
	if got := tc.session.State(); got != session.StateIntro {
		t.Fatalf("state = %s after Space past the lockout, want intro", got)
	}
	if len(tc.state.particles) != 0 {
		t.Errorf("%d sparks survived the replay", len(tc.state.particles))
	}
	if got := tc.session.Debt(); got != 10 {
		t.Errorf("debt after replay = %d, want 10", got)
	}
}

func TestShutdownCountdown(t *testing.T) {
	tc := newTestClient(t, config.Config{}, false)
	tc.srv.Shutdown(0)

	tc.processServerEvents()
	if got := tc.state.Screen(); got != ScreenShutdown {
		t.Fatalf("screen = %d, want shutdown", got)
	}
	if !strings.Contains(tc.render(t), "SERVER SHUTTING DOWN") {
		t.Fatal("shutdown notice missing")
	}

	tc.state.delta = time.Duration(config.ShutdownDisplaySeconds+1) * time.Second
	tc.frame(t, input.Input{})
	if tc.state.Running {
		t.Fatal("client still running after the shutdown countdown")
	}
}

func TestIdleDisconnect(t *testing.T) {
	tc := newTestClient(t, config.Config{}, true)

	tc.clock.now = tc.clock.now.Add((config.InactivityWarnUser + 1) * time.Second)
	tc.applyInput(input.Input{})
	if !tc.state.isInactive {
		t.Fatal("no inactivity warning")
	}
	if !strings.Contains(tc.render(t), "INACTIVITY WARNING") {
		t.Fatal("inactivity screen missing")
	}

	tc.applyInput(input.Input{Pressed: []byte("x")})
	if tc.state.isInactive {
		t.Fatal("key press did not clear the warning")
	}

	tc.clock.now = tc.clock.now.Add((config.InactivityDisconnectUser + 1) * time.Second)
	tc.applyInput(input.Input{})
	if tc.state.Running {
		t.Fatal("idle client still running")
	}
}

func TestIdleIgnoredLocally(t *testing.T) {
	tc := newTestClient(t, config.Config{}, false)
	tc.clock.now = tc.clock.now.Add(time.Hour)
	tc.applyInput(input.Input{})
	if tc.state.isInactive || !tc.state.Running {
		t.Fatal("local client treated as idle")
	}
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		w, h                   int
		rw, rh, offCol, offRow int
	}{
		{80, 30, 80, 30, 0, 0},
		{config.MaxTermWidth + 20, config.MaxTermHeight + 10, config.MaxTermWidth, config.MaxTermHeight, 10, 5},
		{0, 0, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		rw, rh, oc, or := clampTermSize(tt.w, tt.h)
		if rw != tt.rw || rh != tt.rh || oc != tt.offCol || or != tt.offRow {
			t.Errorf("clampTermSize(%d,%d) = %d,%d,%d,%d, want %d,%d,%d,%d",
				tt.w, tt.h, rw, rh, oc, or, tt.rw, tt.rh, tt.offCol, tt.offRow)
		}
	}
}
