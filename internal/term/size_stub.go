//go:build !unix

package term

import (
	"errors"
	"os"
)

// DeviceSize is unavailable without ioctl support.
func DeviceSize(fd int) (Size, error) {
	return Size{}, errors.New("terminal size query unsupported on this platform")
}

// NotifyResize is a no-op where SIGWINCH does not exist.
func NotifyResize(ch chan<- os.Signal) {}

// StopResize is a no-op where SIGWINCH does not exist.
func StopResize(ch chan<- os.Signal) {}
