package stream

import (
	"errors"
	"io"
	"log"
)

// Connection is the live log stream the pump drains. StreamLogs blocks until
// the source disconnects or the sink reports an error.
type Connection interface {
	StreamLogs(sink io.Writer) error
	Close() error
}

// OpenFunc opens a fresh connection to the configured log source.
type OpenFunc func() (Connection, error)

// Pump owns the background connection for one device session. It feeds raw
// chunks into a LineFramer and exits permanently when the transport fails or
// the Mailbox consumer goes away; resuming a session means starting a fresh
// pump with a fresh Mailbox. There is no retry.
type Pump struct {
	conn   Connection
	mbox   *Mailbox
	status *Status
	done   chan struct{}
}

// StartPump opens the source and launches the blocking read loop in a
// goroutine. The open itself runs synchronously so an unreachable source is
// a startup error rather than a silently dead session.
func StartPump(open OpenFunc, status *Status) (*Pump, error) {
	conn, err := open()
	if err != nil {
		return nil, err
	}
	p := &Pump{
		conn:   conn,
		mbox:   NewMailbox(),
		status: status,
		done:   make(chan struct{}),
	}
	go p.run()
	return p, nil
}

// Mailbox returns the consumer half the UI drains once per tick.
func (p *Pump) Mailbox() *Mailbox { return p.mbox }

// Done is closed when the read loop has exited and the connection is closed.
func (p *Pump) Done() <-chan struct{} { return p.done }

func (p *Pump) run() {
	defer close(p.done)
	defer p.conn.Close()

	framer := NewLineFramer(p.mbox)
	err := p.conn.StreamLogs(framer)
	switch {
	case err == nil:
		p.status.SetDisconnected(nil)
		log.Printf("log source closed the stream")
	case errors.Is(err, ErrConsumerGone):
		// Normal shutdown: the UI dropped the Mailbox.
		p.status.SetDisconnected(nil)
	default:
		p.status.SetDisconnected(err)
		log.Printf("log stream ended: %v", err)
	}
}
