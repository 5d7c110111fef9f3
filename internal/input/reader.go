package input

import (
	"bytes"
	"errors"
	"io"
	"time"
	"unicode/utf8"
)

var pasteEnd = []byte("\x1b[201~")

// ErrReportTimeout reports that the terminal never answered a cursor
// position query. Callers fall back to their last known position.
var ErrReportTimeout = errors.New("input: cursor report timed out")

// Reader decodes raw terminal input into events. Key and paste events go to
// the Events channel; cursor position reports are routed separately so the
// viewport controller can wait for them without racing the key stream.
type Reader struct {
	src     io.Reader
	events  chan Event
	reports chan CursorReport
	done    chan struct{}

	// Persistent assembly buffer; escape sequences and UTF-8 runes may
	// arrive split across reads.
	buf []byte
}

// NewReader wraps the raw input source, normally stdin in raw mode.
func NewReader(src io.Reader) *Reader {
	return &Reader{
		src:     src,
		events:  make(chan Event, 256),
		reports: make(chan CursorReport, 1),
		done:    make(chan struct{}),
	}
}

// Events returns the decoded event stream.
func (r *Reader) Events() <-chan Event { return r.events }

// Start begins reading in a goroutine. The loop ends when the source errors
// or closes, emitting EventError or EventClosed last.
func (r *Reader) Start() {
	go r.readLoop()
}

// WaitCursorReport blocks for the next cursor position report. The caller
// writes the query first; stale reports queued before the call are dropped.
func (r *Reader) WaitCursorReport(timeout time.Duration) (CursorReport, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case rep := <-r.reports:
		return rep, nil
	case <-r.done:
		return CursorReport{}, errors.New("input: reader closed")
	case <-t.C:
		return CursorReport{}, ErrReportTimeout
	}
}

func (r *Reader) readLoop() {
	defer close(r.done)
	chunk := make([]byte, 256)
	for {
		n, err := r.src.Read(chunk)
		if n > 0 {
			r.buf = append(r.buf, chunk[:n]...)
			consumed := r.parse(r.buf)
			if consumed > 0 {
				r.buf = append(r.buf[:0], r.buf[consumed:]...)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.send(Event{Type: EventClosed})
			} else {
				r.send(Event{Type: EventError, Err: err})
			}
			return
		}
	}
}

// parse decodes as many complete events as the buffer holds and returns the
// consumed byte count, stopping at an incomplete trailing sequence.
func (r *Reader) parse(data []byte) int {
	i := 0
	n := len(data)
	for i < n {
		b := data[i]

		if b == 0x1b {
			consumed, ev, ok := r.parseEscape(data[i:])
			if !ok {
				return i // incomplete, wait for more bytes
			}
			if ev.Type != EventKey || ev.Key != KeyNone {
				r.send(ev)
			}
			i += consumed
			continue
		}

		if b < 0x20 {
			if ev := controlEvent(b); ev.Key != KeyNone {
				r.send(ev)
			}
			i++
			continue
		}

		if b == 0x7f {
			r.send(Event{Type: EventKey, Key: KeyBackspace})
			i++
			continue
		}

		if b < 0x80 {
			r.send(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++
			continue
		}

		// UTF-8 multibyte; wait if the tail of the rune has not arrived.
		if !utf8.FullRune(data[i:]) {
			return i
		}
		rn, size := utf8.DecodeRune(data[i:])
		if rn != utf8.RuneError {
			r.send(Event{Type: EventKey, Key: KeyRune, Rune: rn})
		}
		i += size
	}
	return i
}

// parseEscape decodes one escape sequence. ok is false when the sequence is
// still incomplete.
func (r *Reader) parseEscape(data []byte) (int, Event, bool) {
	if len(data) < 2 {
		return 0, Event{}, false
	}
	switch data[1] {
	case '[':
		return r.parseCSI(data)
	case 'O':
		if len(data) < 3 {
			return 0, Event{}, false
		}
		switch data[2] {
		case 'A':
			return 3, Event{Type: EventKey, Key: KeyUp}, true
		case 'B':
			return 3, Event{Type: EventKey, Key: KeyDown}, true
		case 'C':
			return 3, Event{Type: EventKey, Key: KeyRight}, true
		case 'D':
			return 3, Event{Type: EventKey, Key: KeyLeft}, true
		case 'H':
			return 3, Event{Type: EventKey, Key: KeyHome}, true
		case 'F':
			return 3, Event{Type: EventKey, Key: KeyEnd}, true
		}
		return 3, Event{Type: EventKey, Key: KeyNone}, true
	default:
		// Standalone ESC (or an alt-modified key we do not use).
		return 1, Event{Type: EventKey, Key: KeyEscape}, true
	}
}

func (r *Reader) parseCSI(data []byte) (int, Event, bool) {
	// Scan for the final byte; parameters are digits and semicolons.
	end := 2
	for end < len(data) && end < 32 {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			end++
			goto terminated
		}
		if b != ';' && (b < '0' || b > '9') && b != '?' && b != '<' {
			// Malformed; swallow the introducer and resync.
			return 2, Event{Type: EventKey, Key: KeyNone}, true
		}
		end++
	}
	if end >= 32 {
		return end, Event{Type: EventKey, Key: KeyNone}, true
	}
	return 0, Event{}, false

terminated:
	seq := data[2:end]
	final := seq[len(seq)-1]
	params := seq[:len(seq)-1]

	switch final {
	case 'A':
		return end, Event{Type: EventKey, Key: KeyUp}, true
	case 'B':
		return end, Event{Type: EventKey, Key: KeyDown}, true
	case 'C':
		return end, Event{Type: EventKey, Key: KeyRight}, true
	case 'D':
		return end, Event{Type: EventKey, Key: KeyLeft}, true
	case 'H':
		return end, Event{Type: EventKey, Key: KeyHome}, true
	case 'F':
		return end, Event{Type: EventKey, Key: KeyEnd}, true
	case 'R':
		if row, col, ok := splitPair(params); ok {
			r.sendReport(CursorReport{Row: row - 1, Col: col - 1})
		}
		return end, Event{Type: EventKey, Key: KeyNone}, true
	case '~':
		switch string(params) {
		case "1", "7":
			return end, Event{Type: EventKey, Key: KeyHome}, true
		case "4", "8":
			return end, Event{Type: EventKey, Key: KeyEnd}, true
		case "5":
			return end, Event{Type: EventKey, Key: KeyPageUp}, true
		case "6":
			return end, Event{Type: EventKey, Key: KeyPageDown}, true
		case "200":
			return r.parsePaste(data, end)
		}
		return end, Event{Type: EventKey, Key: KeyNone}, true
	}
	return end, Event{Type: EventKey, Key: KeyNone}, true
}

// parsePaste collects everything between the bracketed paste markers.
func (r *Reader) parsePaste(data []byte, bodyStart int) (int, Event, bool) {
	idx := bytes.Index(data[bodyStart:], pasteEnd)
	if idx < 0 {
		return 0, Event{}, false
	}
	body := string(data[bodyStart : bodyStart+idx])
	return bodyStart + idx + len(pasteEnd), Event{Type: EventPaste, Paste: body}, true
}

func controlEvent(b byte) Event {
	switch b {
	case 0x03:
		return Event{Type: EventKey, Key: KeyCtrlC}
	case 0x09:
		return Event{Type: EventKey, Key: KeyTab}
	case 0x0a, 0x0d:
		return Event{Type: EventKey, Key: KeyEnter}
	case 0x08:
		return Event{Type: EventKey, Key: KeyBackspace}
	case 0x1a:
		return Event{Type: EventKey, Key: KeyCtrlZ}
	}
	return Event{Type: EventKey, Key: KeyNone}
}

// splitPair parses "row;col" decimal parameters.
func splitPair(params []byte) (int, int, bool) {
	sep := bytes.IndexByte(params, ';')
	if sep <= 0 || sep == len(params)-1 {
		return 0, 0, false
	}
	row, ok1 := atoi(params[:sep])
	col, ok2 := atoi(params[sep+1:])
	return row, col, ok1 && ok2
}

func atoi(b []byte) (int, bool) {
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
		if n > 99999 {
			return 0, false
		}
	}
	return n, len(b) > 0
}

// send delivers an event without blocking; a full queue drops the event.
func (r *Reader) send(ev Event) {
	select {
	case r.events <- ev:
	default:
	}
}

// sendReport keeps only the most recent report pending.
func (r *Reader) sendReport(rep CursorReport) {
	select {
	case r.reports <- rep:
	default:
		select {
		case <-r.reports:
		default:
		}
		select {
		case r.reports <- rep:
		default:
		}
	}
}
