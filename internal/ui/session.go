package ui

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/droidbay/catlog/internal/input"
	"github.com/droidbay/catlog/internal/scrollback"
	"github.com/droidbay/catlog/internal/stream"
	"github.com/droidbay/catlog/internal/term"
)

// inlineLogRows caps how many log rows the inline viewport grows to; the
// alternate screen always uses the full terminal height.
const inlineLogRows = 12

// chromeRows is the tab bar plus the status line.
const chromeRows = 2

// Options wires the session loop to its collaborators.
type Options struct {
	Serial   string
	Tick     time.Duration
	Mailbox  *stream.Mailbox
	Status   *stream.Status
	Ctrl     *term.Controller
	Reader   *input.Reader
	Suspend  *term.Suspender
	Size     term.SizeFunc
	Theme    Theme
	ResizeCh <-chan os.Signal
	Quit     <-chan struct{}
}

// Session is the single UI context. It owns the scrollback buffer, the
// scroll state and the viewport controller, and is the only terminal writer.
type Session struct {
	opts   Options
	buf    *scrollback.Buffer
	scroll scrollback.ScrollState
	tab    Tab
	theme  Theme
}

// NewSession builds the session state around an empty buffer in tail-follow.
func NewSession(opts Options) *Session {
	if opts.Tick <= 0 {
		opts.Tick = 50 * time.Millisecond
	}
	return &Session{
		opts:   opts,
		buf:    scrollback.NewBuffer(),
		scroll: scrollback.NewScrollState(),
		tab:    TabLogs,
		theme:  opts.Theme,
	}
}

// Run drives the loop until the user quits or input closes. It blocks on a
// single select: the next input event, resize signal or scheduled tick.
// The mailbox consumer is closed on the way out, which unwinds the pump.
func (s *Session) Run() error {
	defer s.opts.Mailbox.CloseConsumer()

	ticker := time.NewTicker(s.opts.Tick)
	defer ticker.Stop()

	if err := s.redraw(); err != nil {
		return err
	}

	for {
		select {
		case <-s.opts.Quit:
			return nil
		case ev, ok := <-s.opts.Reader.Events():
			if !ok {
				return nil
			}
			quit, err := s.handleEvent(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			if err := s.redraw(); err != nil {
				log.Printf("draw failed: %v", err)
			}
		case <-s.opts.ResizeCh:
			if err := s.redraw(); err != nil {
				log.Printf("draw after resize failed: %v", err)
			}
		case <-ticker.C:
			added, evicted := s.buf.DrainAll(s.opts.Mailbox)
			if evicted > 0 {
				s.scroll.ReduceOffset(evicted)
			}
			if added > 0 || evicted > 0 || s.scroll.FollowTail {
				if err := s.redraw(); err != nil {
					log.Printf("draw failed: %v", err)
				}
			}
		}
	}
}

func (s *Session) handleEvent(ev input.Event) (quit bool, err error) {
	switch ev.Type {
	case input.EventClosed:
		return true, nil
	case input.EventError:
		return true, fmt.Errorf("input: %w", ev.Err)
	case input.EventKey:
		return s.handleKey(ev)
	}
	return false, nil
}

func (s *Session) handleKey(ev input.Event) (bool, error) {
	height := s.innerHeight()
	total := s.buf.Len()

	switch {
	case ev.Key == input.KeyRune && ev.Rune == 'q', ev.Key == input.KeyCtrlC:
		return true, nil

	case ev.Key == input.KeyTab:
		if s.tab == TabLogs {
			s.tab = TabHelp
		} else {
			s.tab = TabLogs
		}

	case ev.Key == input.KeyEnter, ev.Key == input.KeyRune && ev.Rune == 'f':
		if s.opts.Ctrl.Mode() == term.ModeInline {
			s.opts.Ctrl.EnterAltScreen()
		} else {
			s.opts.Ctrl.LeaveAltScreen()
		}

	case ev.Key == input.KeyDown, ev.Key == input.KeyRune && ev.Rune == 'j':
		s.scroll.LineDown(total, height)
	case ev.Key == input.KeyUp, ev.Key == input.KeyRune && ev.Rune == 'k':
		s.scroll.LineUp(total, height)
	case ev.Key == input.KeyLeft, ev.Key == input.KeyRune && ev.Rune == 'h':
		s.scroll.Left()
	case ev.Key == input.KeyRight, ev.Key == input.KeyRune && ev.Rune == 'l':
		s.scroll.Right(s.maxXOffset())

	case ev.Key == input.KeyHome, ev.Key == input.KeyRune && ev.Rune == 'g':
		s.scroll.JumpTop()
	case ev.Key == input.KeyEnd, ev.Key == input.KeyRune && ev.Rune == 'G':
		s.scroll.JumpBottom(total, height)

	case ev.Key == input.KeyPageUp:
		for i := 0; i < height; i++ {
			s.scroll.LineUp(total, height)
		}
	case ev.Key == input.KeyPageDown:
		for i := 0; i < height; i++ {
			s.scroll.LineDown(total, height)
		}

	case ev.Key == input.KeyCtrlZ:
		if s.opts.Suspend != nil && s.opts.Suspend.Supported() {
			s.opts.Ctrl.PrepareSuspend()
			if err := s.opts.Suspend.Suspend(); err != nil {
				return false, err
			}
		}
	}
	return false, nil
}

// innerHeight is the number of log rows the current surface shows.
func (s *Session) innerHeight() int {
	size, err := s.opts.Size()
	if err != nil {
		return inlineLogRows
	}
	if s.opts.Ctrl.Mode() == term.ModeAlternate {
		h := size.H - chromeRows
		if h < 1 {
			h = 1
		}
		return h
	}
	h := s.buf.Len()
	if h > inlineLogRows {
		h = inlineLogRows
	}
	if avail := size.H - chromeRows; h > avail {
		h = avail
	}
	if h < 1 {
		h = 1
	}
	return h
}

// maxXOffset bounds horizontal scrolling to the widest visible line.
func (s *Session) maxXOffset() int {
	size, err := s.opts.Size()
	if err != nil {
		return 0
	}
	height := s.innerHeight()
	window := s.buf.Window(s.scroll.Offset, height)
	widest := 0
	for _, line := range window {
		if w := lineWidth(line); w > widest {
			widest = w
		}
	}
	limit := widest - size.W
	if limit < 0 {
		limit = 0
	}
	return limit
}

// redraw recomputes the window and commits one frame.
func (s *Session) redraw() error {
	size, err := s.opts.Size()
	if err != nil {
		return fmt.Errorf("redraw: %w", err)
	}
	height := s.innerHeight()
	s.scroll.Tick(s.buf.Len(), height)

	rows := make([]string, 0, height+chromeRows)
	rows = append(rows, renderTabs(s.theme, s.tab, size.W))

	switch s.tab {
	case TabLogs:
		window := s.buf.Window(s.scroll.Offset, height)
		logRows := renderLogRows(s.theme, window, s.scroll.XOffset, size.W)
		for len(logRows) < height {
			logRows = append(logRows, "")
		}
		rows = append(rows, logRows...)
	case TabHelp:
		helpRows := renderHelp(s.theme, size.W)
		if len(helpRows) > height {
			helpRows = helpRows[:height]
		}
		for len(helpRows) < height {
			helpRows = append(helpRows, "")
		}
		rows = append(rows, helpRows...)
	}

	sess := s.opts.Status.Snapshot()
	rows = append(rows, renderStatus(s.theme, statusInfo{
		serial:     s.opts.Serial,
		total:      s.buf.Len(),
		offset:     s.scroll.Offset,
		followTail: s.scroll.FollowTail,
		connected:  sess.Connected,
		lastError:  sess.LastError,
	}, size.W))

	return s.opts.Ctrl.Draw(rows)
}
