package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/tomz197/debtblaster/internal/loop/session"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave, optionally sliding its pitch linearly
// from freq to endFreq over its duration.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator creates a fixed-pitch oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from freq to endFreq.
func NewSweep(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewSource(1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s in a linear attack/sustain/release envelope.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = max(float64(remaining)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. math.Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Cue sound lengths.
const (
	shotDuration    = 60 * time.Millisecond
	hitDuration     = 120 * time.Millisecond
	chimeNote       = 80 * time.Millisecond
	penaltyDuration = 250 * time.Millisecond
	porDuration     = 400 * time.Millisecond
)

// CueStreamer synthesizes the sound for a cue at the given volume.
// It returns nil for unknown cues.
func CueStreamer(cue session.Cue, rate beep.SampleRate, vol float64) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case session.CueShot:
		// Short descending blip
		osc := NewSweep(1200, 600, shotDuration, WaveSquare, rate)
		s = newVolume(NewEnvelope(osc, shotDuration, 2*time.Millisecond, 40*time.Millisecond, rate), 0.3)
	case session.CueHit:
		noise := NewOscillator(0, hitDuration, WaveNoise, rate)
		s = newVolume(NewEnvelope(noise, hitDuration, time.Millisecond, 100*time.Millisecond, rate), 0.5)
	case session.CuePowerUp:
		// Two-note chime, B5 then E6
		n1 := NewEnvelope(NewOscillator(987.77, chimeNote, WaveSquare, rate), chimeNote, 2*time.Millisecond, 30*time.Millisecond, rate)
		n2 := NewEnvelope(NewOscillator(1318.51, 2*chimeNote, WaveSquare, rate), 2*chimeNote, 2*time.Millisecond, 120*time.Millisecond, rate)
		s = newVolume(beep.Seq(n1, n2), 0.3)
	case session.CuePenalty:
		osc := NewSweep(220, 90, penaltyDuration, WaveSaw, rate)
		s = newVolume(NewEnvelope(osc, penaltyDuration, 5*time.Millisecond, 80*time.Millisecond, rate), 0.5)
	case session.CuePOR:
		// Bell: fundamental plus octave overtone
		fund := NewEnvelope(NewOscillator(880, porDuration, WaveSine, rate), porDuration, 5*time.Millisecond, 350*time.Millisecond, rate)
		over := NewEnvelope(NewOscillator(1760, porDuration, WaveSine, rate), porDuration, 5*time.Millisecond, 200*time.Millisecond, rate)
		s = beep.Take(rate.N(porDuration), beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3)))
	default:
		return nil
	}
	return newVolume(s, vol)
}
