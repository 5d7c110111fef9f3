package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Tab identifies the visible pane.
type Tab int

const (
	TabLogs Tab = iota
	TabHelp
)

// priorityOf extracts the logcat priority letter from a line. Both the
// threadtime format ("01-02 03:04:05.678  1234  5678 I Tag: msg") and the
// brief format ("I/Tag( 123): msg") are recognized.
func priorityOf(line string) byte {
	if len(line) >= 2 && line[1] == '/' && isPriority(line[0]) {
		return line[0]
	}
	fields := strings.Fields(line)
	for i, f := range fields {
		if i > 5 {
			break
		}
		if len(f) == 1 && isPriority(f[0]) {
			return f[0]
		}
	}
	return 'I'
}

func isPriority(b byte) bool {
	switch b {
	case 'V', 'D', 'I', 'W', 'E', 'F':
		return true
	}
	return false
}

// clipLine cuts xoff display columns off the left of line and truncates the
// remainder to width columns. Width accounting is rune-aware so wide glyphs
// do not break the frame.
func clipLine(line string, xoff, width int) string {
	if width <= 0 {
		return ""
	}
	if xoff > 0 {
		skipped := 0
		i := 0
		for i < len(line) && skipped < xoff {
			r, size := utf8.DecodeRuneInString(line[i:])
			skipped += runewidth.RuneWidth(r)
			i += size
		}
		line = line[i:]
	}
	return runewidth.Truncate(line, width, "")
}

// lineWidth is the display width of a line in columns.
func lineWidth(line string) int {
	return runewidth.StringWidth(line)
}

// renderTabs draws the tab bar row.
func renderTabs(t Theme, active Tab, width int) string {
	logs := " Logs "
	help := " Help "
	var row string
	if active == TabLogs {
		row = t.TabActive.Render(logs) + t.TabInactive.Render(help)
	} else {
		row = t.TabInactive.Render(logs) + t.TabActive.Render(help)
	}
	return row
}

// renderStatus draws the status row: device, buffer fill, scroll position
// and any transport error.
func renderStatus(t Theme, st statusInfo, width int) string {
	mode := "tail"
	if !st.followTail {
		mode = fmt.Sprintf("line %d", st.offset+1)
	}
	left := fmt.Sprintf(" %s | %d lines | %s", st.serial, st.total, mode)
	if !st.connected {
		if st.lastError != nil {
			msg := clipLine(st.lastError.Error(), 0, width-lineWidth(left)-14)
			return t.Status.Render(left) + t.StatusError.Render(" | disconnected: "+msg)
		}
		return t.Status.Render(left) + t.StatusError.Render(" | disconnected")
	}
	return t.Status.Render(left)
}

type statusInfo struct {
	serial     string
	total      int
	offset     int
	followTail bool
	connected  bool
	lastError  error
}

// renderLogRows styles and clips one viewport window of log lines.
func renderLogRows(t Theme, window []string, xoff, width int) []string {
	rows := make([]string, 0, len(window))
	for _, line := range window {
		clipped := clipLine(line, xoff, width)
		rows = append(rows, t.styleFor(priorityOf(line)).Render(clipped))
	}
	return rows
}

var helpEntries = [][2]string{
	{"j / down", "scroll down one line"},
	{"k / up", "scroll up one line"},
	{"h / left", "scroll left"},
	{"l / right", "scroll right"},
	{"g / Home", "jump to the oldest line"},
	{"G / End", "jump to the newest line and follow"},
	{"PgUp / PgDn", "scroll by a page"},
	{"Enter / f", "toggle full-screen view"},
	{"Tab", "switch between logs and help"},
	{"Ctrl+Z", "suspend to the shell"},
	{"q", "quit"},
}

// renderHelp draws the keybinding reference rows.
func renderHelp(t Theme, width int) []string {
	rows := make([]string, 0, len(helpEntries))
	for _, e := range helpEntries {
		key := t.HelpKey.Render(runewidth.FillRight(e[0], 14))
		rows = append(rows, " "+key+t.HelpDesc.Render(clipLine(e[1], 0, width-16)))
	}
	return rows
}
