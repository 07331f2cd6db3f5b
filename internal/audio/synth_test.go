package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/debtblaster/internal/loop/session"
)

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, rate)
	if got := drain(osc); got != rate.N(100*time.Millisecond) {
		t.Fatalf("streamed %d samples, want %d", got, rate.N(100*time.Millisecond))
	}
}

func TestOscillatorRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewSweep(200, 2000, 50*time.Millisecond, wave, rate)
		buf := make([][2]float64, 256)
		n, ok := osc.Stream(buf)
		if !ok || n != 256 {
			t.Fatalf("wave %d: Stream = %d,%v, want 256,true", wave, n, ok)
		}
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 || buf[i][0] != buf[i][1] {
				t.Fatalf("wave %d sample %d = %v, want mono in [-1,1]", wave, i, buf[i])
			}
		}
	}
}

func TestEnvelopeAttackStartsSilent(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate) // Constant 1.0
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, 10)
	env.Stream(buf)
	if buf[0][0] != 0 {
		t.Fatalf("first sample = %v, want 0", buf[0][0])
	}
	if buf[9][0] <= buf[1][0] {
		t.Fatalf("attack not rising: %v then %v", buf[1][0], buf[9][0])
	}
}

func TestCueStreamerFinite(t *testing.T) {
	cues := []session.Cue{session.CueShot, session.CueHit, session.CuePowerUp, session.CuePenalty, session.CuePOR}
	for _, cue := range cues {
		s := CueStreamer(cue, sampleRate, 1)
		if s == nil {
			t.Fatalf("%s: nil streamer", cue)
		}
		n := drain(s)
		if n == 0 || n > sampleRate.N(time.Second) {
			t.Errorf("%s: %d samples, want a short non-empty sound", cue, n)
		}
	}
}

func TestCueStreamerUnknown(t *testing.T) {
	if s := CueStreamer(session.Cue(99), sampleRate, 1); s != nil {
		t.Fatal("unknown cue produced a streamer")
	}
}
