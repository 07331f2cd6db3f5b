package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a movement key is considered "held" after its
// last press. Terminals only send key repeats, never key releases.
const keyHoldDuration = 60 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Left      bool   // Movement key held
	Right     bool   // Movement key held
	Fire      bool   // Space seen this frame
	Enter     bool   // Seen this frame
	Backspace bool   // Seen this frame
	QuitKey   bool   // 'q' seen this frame; only quits outside name entry
	Quit      bool   // Ctrl-C or a lone Esc seen this frame
	Closed    bool   // The underlying reader is gone
	Pressed   []byte // Raw bytes of this frame, escape sequences removed
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks key state across frames.
type Stream struct {
	ch      chan byte
	state   keyState
	closed  bool
	pending []byte // Escape sequence cut off at the end of the last frame
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Reset forgets held keys, so a key held across a screen change does not
// leak into the next one.
func (s *Stream) Reset() {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := s.parse(buf, time.Now())
	in.Closed = s.closed
	return in
}

// parse turns one frame of raw bytes into an Input, updating held-key state.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	carried := len(s.pending)
	if carried > 0 {
		buf = append(s.pending, buf...)
		s.pending = nil
	}
	in := Input{Pressed: make([]byte, 0, len(buf))}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			// CSI sequence: ESC [ <code>
			if i+2 < len(buf) && buf[i+1] == '[' {
				switch buf[i+2] {
				case 'C': // Right arrow
					s.state.right = now
				case 'D': // Left arrow
					s.state.left = now
				}
				i += 2
				continue
			}
			if i == len(buf)-1 || (i == len(buf)-2 && buf[i+1] == '[') {
				// A trailing ESC or ESC [ may be the start of a key split
				// across reads. Finish it next frame; if nothing followed,
				// a lone ESC quits and a lone ESC [ is dropped.
				if len(buf) > carried {
					s.pending = append([]byte(nil), buf[i:]...)
				} else if i == len(buf)-1 {
					in.Quit = true
				}
				break
			}
			in.Quit = true
			continue
		}

		switch b {
		case 'a', 'A':
			s.state.left = now
		case 'd', 'D':
			s.state.right = now
		case ' ':
			in.Fire = true
		case '\n', '\r':
			in.Enter = true
		case '\b', '\x7f':
			in.Backspace = true
		case 'q', 'Q':
			in.QuitKey = true
		case '\x03':
			in.Quit = true
		}
		in.Pressed = append(in.Pressed, b)
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	return in
}
