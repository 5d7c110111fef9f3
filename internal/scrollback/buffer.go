package scrollback

import "github.com/droidbay/catlog/internal/stream"

// MaxLines caps in-memory log history. On overflow the oldest lines are
// evicted until the cap holds again.
const MaxLines = 65536

// Buffer is the bounded, ordered history of decoded log lines. It is owned
// by the UI context and never touched by the pump. A ring keeps both append
// and eviction O(1) regardless of history size.
type Buffer struct {
	ring  []string
	head  int // index of the oldest line
	count int
	max   int
}

// NewBuffer returns a Buffer capped at MaxLines.
func NewBuffer() *Buffer {
	return newBuffer(MaxLines)
}

func newBuffer(max int) *Buffer {
	return &Buffer{ring: make([]string, max), max: max}
}

// Append adds a line at the tail and reports how many lines were evicted
// from the head to stay within the cap (0 or 1). Callers that track a view
// offset subtract the eviction count so the visible window does not drift.
func (b *Buffer) Append(line string) (evicted int) {
	if b.count == b.max {
		b.ring[b.head] = line
		b.head = (b.head + 1) % b.max
		return 1
	}
	b.ring[(b.head+b.count)%b.max] = line
	b.count++
	return 0
}

// DrainAll pulls every line currently queued in the Mailbox and appends them
// in arrival order. It never blocks: an empty Mailbox returns immediately.
// Called once per UI tick.
func (b *Buffer) DrainAll(m *stream.Mailbox) (added, evicted int) {
	for {
		line, ok := m.TryRecv()
		if !ok {
			return added, evicted
		}
		evicted += b.Append(line)
		added++
	}
}

// Len returns the number of buffered lines.
func (b *Buffer) Len() int { return b.count }

// Line returns the i-th line, oldest first. i must be in [0, Len).
func (b *Buffer) Line(i int) string {
	return b.ring[(b.head+i)%b.max]
}

// Window copies n lines starting at line index start, clamped to the
// buffered range. This is the slice the renderer paints.
func (b *Buffer) Window(start, n int) []string {
	if start < 0 {
		start = 0
	}
	if start >= b.count || n <= 0 {
		return nil
	}
	if start+n > b.count {
		n = b.count - start
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = b.Line(start + i)
	}
	return out
}
