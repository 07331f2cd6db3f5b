// Package audio plays synthesized sound cues for game events through the
// system speaker. Without an audio device every call is a no-op.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/debtblaster/internal/loop/session"
)

const sampleRate = beep.SampleRate(48000)

// SoundManager mixes cue sounds into a single speaker stream.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	log         *log.Logger
}

// NewSoundManager creates a manager playing at the given linear volume (0..1).
func NewSoundManager(volume float64, logger *log.Logger) *SoundManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
		log:    logger,
	}
}

// Initialize opens the speaker. Calling it again is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Debug("audio ready", "rate", int(sampleRate))
	return nil
}

// Play implements session.CueSink.
func (sm *SoundManager) Play(cue session.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	s := CueStreamer(cue, sampleRate, sm.volume)
	if s == nil {
		return
	}
	// The mixer runs on the speaker goroutine.
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Cleanup silences everything. The speaker itself stays open.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Nop discards every cue. Remote sessions use it since the speaker belongs
// to the server host.
type Nop = session.NopCues

var _ session.CueSink = (*SoundManager)(nil)
