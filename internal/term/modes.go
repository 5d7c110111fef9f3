package term

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Modes owns the process-wide terminal mode state: raw input, bracketed
// paste, cursor visibility, keyboard enhancement. Exactly one instance may
// be live; Set and Restore bracket the whole session, and Restore is safe to
// call more than once.
type Modes struct {
	fd    int
	out   io.Writer
	saved *term.State
}

// NewModes prepares mode management for the terminal on fd (stdin for raw
// mode) writing control sequences to out (stdout).
func NewModes(fd int, out io.Writer) *Modes {
	return &Modes{fd: fd, out: out}
}

// Set enters raw mode and enables the session's terminal modes. The kitty
// keyboard push is best-effort; raw mode failure is fatal.
func (m *Modes) Set() error {
	saved, err := term.MakeRaw(m.fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	m.saved = saved

	w := bufio.NewWriter(m.out)
	w.Write(csiPasteOn)
	w.Write(csiKittyPush)
	w.Write(csiCursorHide)
	if err := w.Flush(); err != nil {
		term.Restore(m.fd, m.saved)
		m.saved = nil
		return fmt.Errorf("set terminal modes: %w", err)
	}
	return nil
}

// Restore is the inverse of Set. Mode writes are best-effort; the termios
// restore is the part that matters and its error is returned.
func (m *Modes) Restore() error {
	w := bufio.NewWriter(m.out)
	w.Write(csiKittyPop)
	w.Write(csiPasteOff)
	w.Write(csiCursorShow)
	w.Write(csiSGR0)
	w.Flush()

	if m.saved == nil {
		return nil
	}
	saved := m.saved
	m.saved = nil
	if err := term.Restore(m.fd, saved); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}

// IsTerminal reports whether fd is attached to a terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// EmergencyReset writes every sequence needed to bring a terminal back to a
// sane state. Called from panic recovery when the normal Restore path cannot
// run; errors are ignored since the process is already failing.
func EmergencyReset(w io.Writer) {
	w.Write(csiSyncEnd)
	w.Write(csiAltScrollOff)
	w.Write(csiKittyPop)
	w.Write(csiPasteOff)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiRegionReset)
	w.Write(csiRIS)
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}
