package client

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/tomz197/debtblaster/internal/draw"
	"github.com/tomz197/debtblaster/internal/loop/config"
	"github.com/tomz197/debtblaster/internal/object"
)

// titleArt is "DEBT BLASTER" in the figlet "small" font.
var titleArt = []string{
	` ___   ___  ___  _____    ___  _       _    ___  _____  ___  ___ `,
	`|   \ | __|| _ )|_   _|  | _ )| |     /_\  / __||_   _|| __|| _ \`,
	`| |) || _| | _ \  | |    | _ \| |__  / _ \ \__ \  | |  | _| |   /`,
	`|___/ |___||___/  |_|    |___/|____|/_/ \_\|___/  |_|  |___||_|_\`,
	`                                                                 `,
}

// colorFor returns the draw color of an entity kind.
func colorFor(k object.Kind) draw.Color {
	switch k {
	case object.KindPlayer:
		return draw.ColorGreen
	case object.KindThreat:
		return draw.ColorRed
	case object.KindSuperSeed:
		return draw.ColorYellow
	case object.KindLoanShark:
		return draw.ColorGray
	case object.KindPOR:
		return draw.ColorMagenta
	default:
		return draw.ColorWhite
	}
}

// blinkOn toggles every 600 ms.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	screen := c.state.Screen()
	if !c.state.drawn || screen != c.state.prevScreen || c.state.isInactive != c.state.wasInactive {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevScreen = screen
		c.state.wasInactive = c.state.isInactive
		c.state.drawn = true
	}

	c.canvas.Clear()
	if screen == ScreenPlaying && !c.state.isInactive {
		c.drawEntities()
	}

	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	// Draw border when terminal exceeds max render resolution
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI(screen)
	return c.chunkWriter.Flush()
}

// drawEntities paints the player, falling entities, projectiles and sparks.
func (c *Client) drawEntities() {
	v := &c.state.View
	cv := c.canvas

	for _, e := range v.Entities {
		b := e.Bounds
		cv.SetPen(colorFor(e.Kind))
		switch e.Kind {
		case object.KindSuperSeed:
			// Diamond
			pts := cv.BorrowPoints(4)
			pts[0] = draw.Point{X: b.X + b.W/2, Y: b.Y}
			pts[1] = draw.Point{X: b.X + b.W, Y: b.Y + b.H/2}
			pts[2] = draw.Point{X: b.X + b.W/2, Y: b.Y + b.H}
			pts[3] = draw.Point{X: b.X, Y: b.Y + b.H/2}
			cv.DrawPolygon(pts, true)
		case object.KindPOR:
			// Framed coin
			cv.StrokeRect(b.X, b.Y, b.W, b.H)
			cv.FillRect(b.X+b.W/4, b.Y+b.H/4, b.W/2, b.H/2)
		default:
			cv.FillRect(b.X, b.Y, b.W, b.H)
		}
	}

	// Ship: arrowhead pointing up
	p := v.Player
	pts := cv.BorrowPoints(4)
	pts[0] = draw.Point{X: p.X + p.W/2, Y: p.Y}
	pts[1] = draw.Point{X: p.X + p.W, Y: p.Y + p.H}
	pts[2] = draw.Point{X: p.X + p.W/2, Y: p.Y + p.H*0.7}
	pts[3] = draw.Point{X: p.X, Y: p.Y + p.H}
	cv.SetPen(colorFor(object.KindPlayer))
	cv.DrawPolygon(pts, true)

	for _, s := range c.state.particles {
		if !s.Visible() {
			continue
		}
		cv.SetPen(colorFor(s.Source))
		cv.FillRect(s.X, s.Y, 1, 1)
	}
}

// text writes s at (col, row) and marks the cells so the canvas clears them
// once the text is gone.
func (c *Client) text(col, row int, s string) {
	col = max(col, 1)
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(s))
}

// centered writes s centered on centerX.
func (c *Client) centered(centerX, row int, s string) {
	c.text(centerX-utf8.RuneCountInString(s)/2, row, s)
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI(screen Screen) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if screen == ScreenShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch screen {
	case ScreenIntro:
		c.drawIntroScreen(centerX, centerY)
	case ScreenNaming:
		c.drawNamingScreen(centerX, centerY)
	case ScreenPlaying:
		c.drawPlayingHUD(termWidth, termHeight, centerX, centerY)
	case ScreenEnd:
		c.drawEndScreen(centerX, centerY)
	}
}

// drawTitle draws the title art with its top line at row and returns the
// first row below it.
func (c *Client) drawTitle(centerX, row int) int {
	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}
	for i, line := range titleArt {
		col := max(centerX-titleWidth/2, 1)
		c.chunkWriter.WriteColorAt(col, row+i, draw.ColorYellow, line)
		c.canvas.MarkTextDirty(col, row+i, len(line))
	}
	return row + len(titleArt)
}

// drawIntroScreen draws the title screen.
func (c *Client) drawIntroScreen(centerX, centerY int) {
	row := c.drawTitle(centerX, centerY-8)

	c.centered(centerX, row+1, "~ Blast the debt down to zero ~")

	controlsY := row + 3
	c.centered(centerX, controlsY, "Controls")
	controlLines := []string{
		"A D / < >  . . .  Move",
		"SPACE  . . . . .  Fire",
		"Q  . . . . . . .  Quit",
	}
	for i, line := range controlLines {
		c.centered(centerX, controlsY+1+i, line)
	}

	legendY := controlsY + len(controlLines) + 2
	legend := []struct {
		kind  object.Kind
		label string
	}{
		{object.KindThreat, "Debt      -$10"},
		{object.KindSuperSeed, "SuperSeed  -1%"},
		{object.KindLoanShark, "LoanShark +10%"},
		{object.KindPOR, "POR  -2% + 3x fire"},
	}
	for i, l := range legend {
		col := centerX - 9
		c.chunkWriter.WriteColorAt(col, legendY+i, colorFor(l.kind), "██")
		c.text(col+3, legendY+i, l.label)
		c.canvas.MarkTextDirty(col, legendY+i, 2)
	}

	promptY := legendY + len(legend) + 1
	if blinkOn() {
		c.centered(centerX, promptY, ">>  Press SPACE to skip  <<")
	}
	left := config.IntroDuration - c.clock.Now().Sub(c.state.introStarted)
	c.centered(centerX, promptY+2, fmt.Sprintf("Starting in %2ds", int(math.Ceil(max(left, 0).Seconds()))))
}

// drawNamingScreen draws the name prompt and what has been typed so far.
func (c *Client) drawNamingScreen(centerX, centerY int) {
	c.drawTitle(centerX, centerY-8)

	c.centered(centerX, centerY-2, "Enter your name, Seedizen:")

	name := string(c.state.name)
	cursor := " "
	if blinkOn() {
		cursor = "_"
	}
	c.centered(centerX, centerY, name+cursor)

	c.centered(centerX, centerY+2, "Press ENTER to start")
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight, centerX, centerY int) {
	v := &c.state.View

	c.text(2, 1, fmt.Sprintf("Debt: $%-6d", v.Debt))

	if v.PORActive {
		secs := int(math.Ceil(v.PORRemaining.Seconds()))
		por := fmt.Sprintf("POR %2ds", secs)
		col := termWidth - len(por) - 1
		c.chunkWriter.WriteColorAt(col, 1, colorFor(object.KindPOR), por)
		c.canvas.MarkTextDirty(col, 1, len(por))
	}

	c.text(2, termHeight, fmt.Sprintf("Time: %-8.2f", v.Elapsed.Seconds()))
	if v.Name != "" {
		c.text(termWidth-len(v.Name)-1, termHeight, v.Name)
	}

	// Notifications stack downward from the center, oldest first
	for i, note := range v.Notifications {
		c.centered(centerX, centerY+i*2, note)
	}
}

// drawEndScreen draws the win screen.
func (c *Client) drawEndScreen(centerX, centerY int) {
	c.drawTitle(centerX, centerY-8)

	v := &c.state.View
	c.centered(centerX, centerY-2, fmt.Sprintf("Time: %.2fs", v.CompletionTime.Seconds()))
	c.centered(centerX, centerY, fmt.Sprintf("Congratulations, %s! WAGMI!", v.Name))
	if c.state.endLockout <= 0 && blinkOn() {
		c.centered(centerX, centerY+2, "Press Space to Play Again")
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.centered(centerX, centerY-2, "INACTIVITY WARNING")

	left := config.InactivityDisconnectUser - c.clock.Now().Sub(c.lastInput).Seconds()
	c.centered(centerX, centerY, fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(max(left, 0)),
	))

	c.centered(centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.centered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.centered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.centered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.centered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %2d seconds...", remaining))
	c.centered(centerX, centerY+4, "Press Q to disconnect now")
}
