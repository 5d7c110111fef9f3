package term

import (
	"bufio"
	"fmt"
	"io"
)

// Mode is the controller's drawing surface.
type Mode int

const (
	// ModeInline renders into a sub-rectangle of the primary screen, leaving
	// terminal-native scrollback above it intact.
	ModeInline Mode = iota
	// ModeAlternate renders full-screen on the alternate surface.
	ModeAlternate
)

// Size is the terminal's dimensions in cells.
type Size struct {
	W, H int
}

// Rect is a viewport rectangle in screen cells, origin top-left, 0-indexed.
type Rect struct {
	X, Y, W, H int
}

// Bottom returns the row just past the rectangle's last row.
func (r Rect) Bottom() int { return r.Y + r.H }

// resumeIntent records, across a suspend, which surface to rebuild on the
// first draw after resume. Single-shot: applied once, then cleared.
type resumeIntent int

const (
	resumeNone resumeIntent = iota
	resumeRealignInline
	resumeRestoreAlternate
)

// SizeFunc reports the current terminal dimensions.
type SizeFunc func() (Size, error)

// CursorRowFunc reports the cursor's current screen row (0-indexed),
// typically by a CPR round trip through the input reader.
type CursorRowFunc func() (int, error)

// RequestCursorReport asks the terminal for a cursor position report. The
// reply arrives on the input stream as ESC [ row ; col R.
func RequestCursorReport(w io.Writer) error {
	if _, err := w.Write(csiCursorReport); err != nil {
		return fmt.Errorf("request cursor report: %w", err)
	}
	return nil
}

// Controller is the terminal state machine. It owns the viewport rectangle,
// the inline/alternate surface transition, resize realignment and the
// suspend/resume intent. It must only be used from the UI context; it is the
// sole writer to the terminal.
type Controller struct {
	w         *bufio.Writer
	size      SizeFunc
	cursorRow CursorRowFunc

	mode           Mode
	viewport       Rect
	savedInline    Rect
	hasSavedInline bool

	lastSize      Size
	lastCursorRow int

	pending    resumeIntent
	suspendRow int
}

// NewController builds a controller writing frames to out. size and
// cursorRow are injectable so the drawing logic is testable against a
// scripted terminal.
func NewController(out io.Writer, size SizeFunc, cursorRow CursorRowFunc) *Controller {
	return &Controller{
		w:         bufio.NewWriterSize(out, 32*1024),
		size:      size,
		cursorRow: cursorRow,
	}
}

// Init realigns the screen so the inline viewport starts at the top without
// clearing: existing lines are scrolled up into native scrollback until the
// cursor reaches row zero.
func (c *Controller) Init() error {
	size, err := c.size()
	if err != nil {
		return fmt.Errorf("init viewport: %w", err)
	}
	if row, err := c.cursorRow(); err == nil && row > 0 {
		writeScrollUp(c.w, row)
	}
	writeCursorPos(c.w, 0, 0)
	if err := c.w.Flush(); err != nil {
		return fmt.Errorf("init viewport: %w", err)
	}

	c.mode = ModeInline
	c.viewport = Rect{X: 0, Y: 0, W: size.W, H: 0}
	c.lastSize = size
	c.lastCursorRow = 0
	return nil
}

// Mode returns the active drawing surface.
func (c *Controller) Mode() Mode { return c.mode }

// Viewport returns the current viewport rectangle.
func (c *Controller) Viewport() Rect { return c.viewport }

// SuspendRow is the screen row the cursor should be parked at before the
// process stops, so shell output lands below the viewport.
func (c *Controller) SuspendRow() int { return c.suspendRow }

// EnterAltScreen switches to the alternate full-screen surface, saving the
// inline rectangle for the return trip. Mode-set writes are best-effort and
// never block the transition.
func (c *Controller) EnterAltScreen() {
	if c.mode == ModeAlternate {
		return
	}
	c.w.Write(csiAltScreenEnter)
	c.w.Write(csiAltScrollOn)

	c.savedInline = c.viewport
	c.hasSavedInline = true
	if size, err := c.size(); err == nil {
		c.lastSize = size
		c.viewport = Rect{X: 0, Y: 0, W: size.W, H: size.H}
	}
	c.clearFromViewportTop()
	c.mode = ModeAlternate
	c.w.Flush()
}

// LeaveAltScreen returns to the inline surface and restores the rectangle
// saved by EnterAltScreen, if any.
func (c *Controller) LeaveAltScreen() {
	if c.mode == ModeInline {
		return
	}
	c.w.Write(csiAltScrollOff)
	c.w.Write(csiAltScreenExit)
	if c.hasSavedInline {
		c.viewport = c.savedInline
		c.hasSavedInline = false
	}
	c.mode = ModeInline
	c.w.Flush()
}

// PrepareSuspend readies the terminal for a job-control stop. In alternate
// mode the alternate surface is left first and RestoreAlternate recorded;
// inline records RealignInline. The cursor is parked at the viewport bottom
// and shown so shell output starts in a sensible place. The caller then
// performs the platform suspend and, after resume, the next Draw applies the
// recorded intent exactly once.
func (c *Controller) PrepareSuspend() {
	if c.mode == ModeAlternate {
		c.w.Write(csiAltScrollOff)
		c.w.Write(csiAltScreenExit)
		c.pending = resumeRestoreAlternate
	} else {
		c.pending = resumeRealignInline
	}
	writeCursorPos(c.w, 0, c.suspendRow)
	c.w.Write(csiCursorShow)
	c.w.Flush()
}

// Draw commits one frame. lines are pre-styled rows, one per viewport row,
// already clipped to the terminal width. The whole frame is emitted inside a
// synchronized-update scope so a concurrently repainting terminal never
// shows it half-drawn; the scope is closed on every exit path. A failed
// frame is fatal for that frame only and may be retried next tick.
func (c *Controller) Draw(lines []string) error {
	size, err := c.size()
	if err != nil {
		return fmt.Errorf("draw: %w", err)
	}

	// Cursor-position queries race with frame bytes if issued inside the
	// synchronized scope, so everything needing one is computed up front.
	prepared := c.pending
	c.pending = resumeNone
	resumeRow := 0
	switch prepared {
	case resumeRealignInline:
		row, err := c.cursorRow()
		if err != nil {
			return fmt.Errorf("draw: realign after resume: %w", err)
		}
		resumeRow = row
	case resumeRestoreAlternate:
		// The shell moved the cursor while we were stopped; the saved inline
		// rectangle follows it so leaving the alternate screen later lands
		// where the session visibly is now.
		if row, err := c.cursorRow(); err == nil && c.hasSavedInline {
			c.savedInline.Y = row
		}
	}

	realigned := Rect{}
	hasRealigned := false
	if c.mode == ModeInline && prepared == resumeNone && size != c.lastSize {
		if row, err := c.cursorRow(); err == nil && row != c.lastCursorRow {
			// The terminal shifted our rows while resizing; move the
			// viewport by the same delta to stay anchored to scrollback.
			realigned = c.viewport
			realigned.Y += row - c.lastCursorRow
			if realigned.Y < 0 {
				realigned.Y = 0
			}
			hasRealigned = true
		}
	}

	c.w.Write(csiSyncBegin)
	drawErr := c.commit(size, prepared, resumeRow, realigned, hasRealigned, lines)
	c.w.Write(csiSyncEnd)
	if err := c.w.Flush(); drawErr == nil && err != nil {
		drawErr = fmt.Errorf("draw: %w", err)
	}
	return drawErr
}

func (c *Controller) commit(size Size, prepared resumeIntent, resumeRow int, realigned Rect, hasRealigned bool, lines []string) error {
	switch prepared {
	case resumeRestoreAlternate:
		c.w.Write(csiAltScreenEnter)
		c.w.Write(csiAltScrollOn)
		c.viewport = Rect{X: 0, Y: 0, W: size.W, H: size.H}
		c.clearFromViewportTop()
	case resumeRealignInline:
		c.viewport = Rect{X: 0, Y: resumeRow, W: size.W, H: 0}
	}

	if hasRealigned {
		c.viewport = realigned
		c.clearFromViewportTop()
	}

	area := c.viewport
	area.X = 0
	area.W = size.W
	area.H = len(lines)
	if area.H > size.H {
		area.H = size.H
	}
	if c.mode == ModeAlternate {
		area.Y = 0
	}
	if area.Bottom() > size.H {
		// Push rows above the viewport into native scrollback so the
		// viewport can grow downward without losing history.
		overflow := area.Bottom() - size.H
		writeRegionScrollUp(c.w, 0, area.Y-1, overflow)
		area.Y = size.H - area.H
	}
	if area != c.viewport {
		c.viewport = area
		c.clearFromViewportTop()
	}

	for i := 0; i < area.H; i++ {
		writeCursorPos(c.w, area.X, area.Y+i)
		c.w.Write(csiEraseLine)
		c.w.WriteString(lines[i])
	}

	bottom := area.Bottom() - 1
	if bottom < 0 {
		bottom = 0
	}
	writeCursorPos(c.w, 0, bottom)

	if c.mode == ModeAlternate && c.hasSavedInline {
		c.suspendRow = c.savedInline.Bottom() - 1
		if c.suspendRow < 0 {
			c.suspendRow = 0
		}
	} else {
		c.suspendRow = bottom
	}
	c.lastSize = size
	if c.mode == ModeInline {
		c.lastCursorRow = bottom
	}
	return nil
}

// clearFromViewportTop erases from the viewport's first row to the end of
// the screen.
func (c *Controller) clearFromViewportTop() {
	writeCursorPos(c.w, 0, c.viewport.Y)
	c.w.Write(csiEraseBelow)
}

// Finish parks the cursor below the viewport on the primary screen so the
// shell prompt lands under the session's final frame. Leaves the alternate
// surface first if it is active.
func (c *Controller) Finish() error {
	if c.mode == ModeAlternate {
		c.LeaveAltScreen()
	}
	writeCursorPos(c.w, 0, c.viewport.Bottom()-1)
	c.w.WriteString("\r\n")
	if err := c.w.Flush(); err != nil {
		return fmt.Errorf("finish viewport: %w", err)
	}
	return nil
}
