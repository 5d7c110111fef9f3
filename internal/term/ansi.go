package term

import (
	"bufio"
)

// Pre-allocated escape sequence fragments (avoid allocations during render)
var (
	csi     = []byte("\x1b[")
	csiRIS  = []byte("\x1bc") // Reset to Initial State (emergency)
	csiSGR0 = []byte("\x1b[0m")

	// Cursor control
	csiCursorHide   = []byte("\x1b[?25l")
	csiCursorShow   = []byte("\x1b[?25h")
	csiCursorReport = []byte("\x1b[6n") // reply arrives as ESC [ row ; col R
	csiCursorPos    = []byte("\x1b[")   // followed by row;colH

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	// Alternate scroll: terminals translate wheel to arrow keys while the
	// alternate screen is active
	csiAltScrollOn  = []byte("\x1b[?1007h")
	csiAltScrollOff = []byte("\x1b[?1007l")

	// Synchronized update: the terminal withholds repaints between begin and
	// end, so a frame is never observed half-drawn
	csiSyncBegin = []byte("\x1b[?2026h")
	csiSyncEnd   = []byte("\x1b[?2026l")

	// Bracketed paste
	csiPasteOn  = []byte("\x1b[?2004h")
	csiPasteOff = []byte("\x1b[?2004l")

	// Kitty keyboard protocol (disambiguate escape codes); not every terminal
	// supports the push, callers treat it as best-effort
	csiKittyPush = []byte("\x1b[>1u")
	csiKittyPop  = []byte("\x1b[<u")

	// Erase
	csiEraseLine  = []byte("\x1b[2K")
	csiEraseBelow = []byte("\x1b[0J")

	// Scroll region reset (full screen)
	csiRegionReset = []byte("\x1b[r")
)

// writeInt writes an integer without allocation.
// Terminal values are small (0-255 common, 0-999 typical max).
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [5]byte
	i := 4
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeCursorPos writes a cursor positioning sequence (0-indexed input).
func writeCursorPos(w *bufio.Writer, col, row int) {
	w.Write(csiCursorPos)
	writeInt(w, row+1)
	w.WriteByte(';')
	writeInt(w, col+1)
	w.WriteByte('H')
}

// writeScrollUp scrolls the whole screen up n lines (CSI n S).
func writeScrollUp(w *bufio.Writer, n int) {
	if n <= 0 {
		return
	}
	w.Write(csi)
	writeInt(w, n)
	w.WriteByte('S')
}

// writeRegionScrollUp scrolls only rows [top, bottom] (0-indexed, inclusive)
// up by n lines, leaving the rest of the screen untouched. Sets DECSTBM for
// the duration and resets it after.
func writeRegionScrollUp(w *bufio.Writer, top, bottom, n int) {
	if n <= 0 || bottom < top {
		return
	}
	w.Write(csi)
	writeInt(w, top+1)
	w.WriteByte(';')
	writeInt(w, bottom+1)
	w.WriteByte('r')
	writeScrollUp(w, n)
	w.Write(csiRegionReset)
}
