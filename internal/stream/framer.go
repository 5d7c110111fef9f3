package stream

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// LineFramer adapts the push-based raw byte feed from the device transport
// into discrete line events on a Mailbox. The transport hands it arbitrary
// chunks; newline placement is entirely up to the source.
type LineFramer struct {
	mbox *Mailbox
	buf  []byte
}

// NewLineFramer wires a framer to the Mailbox it emits into.
func NewLineFramer(m *Mailbox) *LineFramer {
	return &LineFramer{mbox: m}
}

// Accept appends a chunk and emits every complete line found. A trailing
// partial line stays buffered until a newline arrives. Segments that are not
// valid UTF-8 are dropped without error; later segments still emit. Once the
// Mailbox consumer is gone, Accept fails so the blocking transport read
// feeding it unwinds.
func (f *LineFramer) Accept(p []byte) error {
	f.buf = append(f.buf, p...)
	for {
		i := bytes.IndexByte(f.buf, '\n')
		if i < 0 {
			return nil
		}
		seg := f.buf[:i]
		if len(seg) > 0 && seg[len(seg)-1] == '\r' {
			seg = seg[:len(seg)-1]
		}
		if utf8.Valid(seg) {
			if err := f.mbox.Send(string(seg)); err != nil {
				return fmt.Errorf("emit line: %w", err)
			}
		}
		f.buf = f.buf[i+1:]
	}
}

// Write makes the framer usable as the sink of Connection.StreamLogs.
func (f *LineFramer) Write(p []byte) (int, error) {
	if err := f.Accept(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Flush is a no-op: lines are delivered eagerly as they are found, and a
// partial line without a newline is never surfaced.
func (f *LineFramer) Flush() error { return nil }

// Pending returns the number of buffered bytes awaiting a newline.
func (f *LineFramer) Pending() int { return len(f.buf) }
