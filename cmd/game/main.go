package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/debtblaster/internal/audio"
	"github.com/tomz197/debtblaster/internal/config"
	"github.com/tomz197/debtblaster/internal/loop"
	"github.com/tomz197/debtblaster/internal/loop/client"
	"github.com/tomz197/debtblaster/internal/loop/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// stdout is the game screen, so logs only go to a file when asked for
	logger := log.New(io.Discard)
	if path := config.GetEnv("DEBTBLASTER_LOG", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Level:           log.DebugLevel,
		})
	}

	seed, ok := config.GetEnvInt("DEBTBLASTER_SEED", time.Now().UnixNano())
	if !ok {
		logger.Warn("ignoring invalid DEBTBLASTER_SEED", "value", os.Getenv("DEBTBLASTER_SEED"))
	}
	logger.Info("starting local game", "seed", seed)

	var cues session.CueSink = audio.Nop{}
	if config.GetEnvBool("DEBTBLASTER_AUDIO", true) {
		sm := audio.NewSoundManager(0.5, logger)
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sm.Cleanup()
			cues = sm
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(ctx, reader, os.Stdout, client.ClientOptions{
		Username: os.Getenv("USER"),
		Rand:     rand.New(rand.NewSource(seed)),
		Cues:     cues,
		Logger:   logger,
	})
}
