package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x] - ColorNone if unset
	prevPixels     []Color // Pixels as of the last Render
	dirty          []bool  // Per cell: rewrite on next Render even if unchanged
	pen            Color   // Color used by the drawing methods

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder // Buffer for batching render output
	numBuf          [20]byte        // Scratch buffer for integer formatting
	scaledBuf       []Point         // Reusable buffer for fillPolygon scaled points
	intersectionBuf []float64       // Reusable buffer for scanline intersections
	polygonBuf      []Point         // Reusable buffer for polygon point generation
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		pen:           ColorWhite,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.prevPixels = make([]Color, subPixelHeight*termWidth)
		c.dirty = make([]bool, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// SetPen selects the color for subsequent drawing calls.
func (c *Canvas) SetPen(color Color) {
	c.pen = color
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render rewrite every cell. Use it after the
// terminal has been cleared.
func (c *Canvas) ForceRedraw() {
	clear(c.prevPixels)
	for i := range c.dirty {
		c.dirty[i] = true
	}
}

// MarkTextDirty marks n cells starting at the 1-based canvas position
// (col, row) so the next Render overwrites text drawn there.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	row--
	if row < 0 || row >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+n, c.termWidth); x++ {
		c.dirty[row*c.termWidth+x] = true
	}
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = c.pen
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillRect fills an axis-aligned box given in logical coordinates. Any box
// that covers part of the canvas sets at least one pixel.
func (c *Canvas) FillRect(x, y, w, h float64) {
	x1 := int(math.Floor(x * c.scaleX))
	y1 := int(math.Floor(y * c.scaleY))
	x2 := max(x1, int(math.Ceil((x+w)*c.scaleX))-1)
	y2 := max(y1, int(math.Ceil((y+h)*c.scaleY))-1)

	x1, x2 = max(x1, 0), min(x2, c.termWidth-1)
	y1, y2 = max(y1, 0), min(y2, c.subPixelHeight-1)
	for py := y1; py <= y2; py++ {
		row := c.pixels[py*c.termWidth : (py+1)*c.termWidth]
		for px := x1; px <= x2; px++ {
			row[px] = c.pen
		}
	}
}

// StrokeRect outlines an axis-aligned box given in logical coordinates.
func (c *Canvas) StrokeRect(x, y, w, h float64) {
	pts := c.BorrowPoints(4)
	pts[0] = Point{X: x, Y: y}
	pts[1] = Point{X: x + w, Y: y}
	pts[2] = Point{X: x + w, Y: y + h}
	pts[3] = Point{X: x, Y: y + h}
	c.DrawPolygon(pts, false)
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				intersections = append(intersections, x)
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// Slightly under a typical 1500 byte MTU for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using colored half-block characters.
// Only cells that changed since the previous Render, or were marked dirty,
// are written. Cells that became empty are blanked.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 16) // Estimate ~16 bytes per cell

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			cell := row*c.termWidth + col
			changed := top != c.prevPixels[topOffset+col] || bottom != c.prevPixels[bottomOffset+col]
			if !changed && !c.dirty[cell] {
				continue
			}
			c.dirty[cell] = false

			c.moveTo(col+1+c.offsetCol, row+1+c.offsetRow)
			switch {
			case top == ColorNone && bottom == ColorNone:
				c.renderBuf.WriteString(resetSGR)
				c.renderBuf.WriteByte(' ')
			case top == bottom:
				c.sgr(top, ColorNone)
				c.renderBuf.WriteRune(BlockFull)
			case bottom == ColorNone:
				c.sgr(top, ColorNone)
				c.renderBuf.WriteRune(BlockUpperHalf)
			case top == ColorNone:
				c.sgr(bottom, ColorNone)
				c.renderBuf.WriteRune(BlockLowerHalf)
			default:
				c.sgr(top, bottom)
				c.renderBuf.WriteRune(BlockUpperHalf)
			}
		}
	}
	c.renderBuf.WriteString(resetSGR)
	copy(c.prevPixels, c.pixels)

	return writeChunked(w, c.renderBuf.String())
}

// moveTo appends a 1-based cursor position sequence to the render buffer.
func (c *Canvas) moveTo(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// sgr appends a color sequence. A ColorNone background resets it.
func (c *Canvas) sgr(fg, bg Color) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(fg), 10))
	c.renderBuf.WriteByte(';')
	if bg == ColorNone {
		c.renderBuf.WriteString("49")
	} else {
		c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(bg)+10, 10))
	}
	c.renderBuf.WriteByte('m')
}

// writeChunked writes data in pieces no larger than maxChunkSize.
func writeChunked(w io.Writer, data string) error {
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(left) + "H┌" + line + "┐")
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(left) + "H└" + line + "┘")
		} else {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(c.offsetCol+1) + "H" + line)
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(c.offsetCol+1) + "H" + line)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			r := strconv.Itoa(row)
			buf.WriteString("\033[" + r + ";" + strconv.Itoa(left) + "H│\033[" + r + ";" + strconv.Itoa(right) + "H│")
		}
	}

	return writeChunked(w, buf.String())
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
