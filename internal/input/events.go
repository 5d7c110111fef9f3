package input

// EventType distinguishes input event categories.
type EventType uint8

const (
	EventKey EventType = iota
	EventPaste
	EventError
	EventClosed
)

// Key identifies a recognized key.
type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeyCtrlC
	KeyCtrlZ
)

// Event is one decoded terminal input event.
type Event struct {
	Type  EventType
	Key   Key
	Rune  rune
	Paste string
	Err   error
}

// CursorReport is a cursor position report (CPR), the terminal's reply to a
// position query. Rows and columns are 0-indexed here.
type CursorReport struct {
	Row, Col int
}
