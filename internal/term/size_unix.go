//go:build unix

package term

import (
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// DeviceSize queries the terminal dimensions for fd via TIOCGWINSZ.
func DeviceSize(fd int) (Size, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return Size{}, fmt.Errorf("query terminal size: %w", err)
	}
	return Size{W: int(ws.Col), H: int(ws.Row)}, nil
}

// NotifyResize delivers a signal on ch whenever the terminal is resized.
// Stop with StopResize.
func NotifyResize(ch chan<- os.Signal) {
	signal.Notify(ch, unix.SIGWINCH)
}

// StopResize removes the resize subscription installed by NotifyResize.
func StopResize(ch chan<- os.Signal) {
	signal.Stop(ch)
}
