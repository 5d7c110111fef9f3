package stream

import (
	"errors"
	"sync"
)

// ErrConsumerGone reports that the UI side of the Mailbox has been closed.
// It is the signal that unwinds the pump's blocking transport read.
var ErrConsumerGone = errors.New("stream: mailbox consumer gone")

// mailboxDepth bounds how many lines the pump may run ahead of the UI
// between two drain ticks.
const mailboxDepth = 1024

// Mailbox is the single-producer/single-consumer line channel between the
// log stream pump and the UI. The producer blocks when the consumer lags by
// more than mailboxDepth lines; closing the consumer side is the only
// cancellation signal the producer ever receives.
type Mailbox struct {
	lines chan string
	done  chan struct{}
	once  sync.Once
}

// NewMailbox creates a Mailbox for one device session.
func NewMailbox() *Mailbox {
	return &Mailbox{
		lines: make(chan string, mailboxDepth),
		done:  make(chan struct{}),
	}
}

// Send delivers one line to the consumer. It blocks while the channel is
// full and returns ErrConsumerGone once CloseConsumer has been called.
func (m *Mailbox) Send(line string) error {
	// Check done first so a closed consumer wins over remaining capacity.
	select {
	case <-m.done:
		return ErrConsumerGone
	default:
	}
	select {
	case m.lines <- line:
		return nil
	case <-m.done:
		return ErrConsumerGone
	}
}

// TryRecv pulls one queued line without blocking.
func (m *Mailbox) TryRecv() (string, bool) {
	select {
	case line := <-m.lines:
		return line, true
	default:
		return "", false
	}
}

// CloseConsumer marks the UI side gone. Safe to call multiple times; the
// producer observes it on its next Send.
func (m *Mailbox) CloseConsumer() {
	m.once.Do(func() { close(m.done) })
}
