package session

// Cue is a fire-and-forget audio trigger.
type Cue int

const (
	CueShot Cue = iota
	CueHit
	CuePowerUp
	CuePenalty
	CuePOR
)

var cueNames = [...]string{
	CueShot:    "shot",
	CueHit:     "hit",
	CuePowerUp: "powerup",
	CuePenalty: "penalty",
	CuePOR:     "por",
}

func (c Cue) String() string {
	if c < 0 || int(c) >= len(cueNames) {
		return "unknown"
	}
	return cueNames[c]
}

// CueSink receives audio cues. Implementations must not block and must not
// report failures back to the simulation.
type CueSink interface {
	Play(c Cue)
}

// NopCues discards every cue.
type NopCues struct{}

// Play implements CueSink.
func (NopCues) Play(Cue) {}
