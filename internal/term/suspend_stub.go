//go:build !unix

package term

import "errors"

// Suspender is a no-op where job control is unavailable.
type Suspender struct{}

// NewSuspender returns the platform's no-op suspender.
func NewSuspender(modes *Modes) *Suspender { return &Suspender{} }

// Supported reports whether job control exists on this platform.
func (s *Suspender) Supported() bool { return false }

// Suspend fails on platforms without job control.
func (s *Suspender) Suspend() error {
	return errors.New("suspend unsupported on this platform")
}
