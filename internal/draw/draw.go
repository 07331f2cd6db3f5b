// Package draw renders to ANSI terminals: a scaled half-block canvas for the
// playfield and a chunked writer for text overlays.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Color is an ANSI foreground color code. ColorNone marks an empty pixel.
type Color uint8

const (
	ColorNone    Color = 0
	ColorRed     Color = 31
	ColorGreen   Color = 32
	ColorYellow  Color = 33
	ColorBlue    Color = 34
	ColorMagenta Color = 35
	ColorCyan    Color = 36
	ColorWhite   Color = 37
	ColorGray    Color = 90 // Bright black
)

const resetSGR = "\033[0m"

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
