//go:build unix

package term

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Suspender stops the process for job control and re-establishes terminal
// modes when the shell resumes it.
type Suspender struct {
	modes *Modes
}

// NewSuspender wires job-control suspend to the session's mode owner.
func NewSuspender(modes *Modes) *Suspender {
	return &Suspender{modes: modes}
}

// Supported reports whether job control exists on this platform.
func (s *Suspender) Supported() bool { return true }

// Suspend restores the terminal, stops the whole process group with SIGTSTP
// and, once the shell resumes us, re-enters the session's modes. The call
// blocks for the duration of the stop. The caller is responsible for
// PrepareSuspend before and for letting the next draw apply the recorded
// resume intent after.
func (s *Suspender) Suspend() error {
	if err := s.modes.Restore(); err != nil {
		return fmt.Errorf("suspend: %w", err)
	}
	if err := unix.Kill(0, unix.SIGTSTP); err != nil {
		return fmt.Errorf("suspend: signal stop: %w", err)
	}
	// Execution continues here after SIGCONT.
	if err := s.modes.Set(); err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	return nil
}
