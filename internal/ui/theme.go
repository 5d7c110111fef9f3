package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the log view. Priority colors follow the usual
// logcat convention.
type Theme struct {
	Verbose lipgloss.Style
	Debug   lipgloss.Style
	Info    lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Fatal   lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style
}

// DefaultTheme returns the standard palette.
func DefaultTheme() Theme {
	return Theme{
		Verbose: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Debug:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Fatal:   lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),

		TabActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")),
		TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Status:      lipgloss.NewStyle().Faint(true),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		HelpKey:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		HelpDesc:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	}
}

// styleFor picks the priority style for one log line.
func (t Theme) styleFor(p byte) lipgloss.Style {
	switch p {
	case 'V':
		return t.Verbose
	case 'D':
		return t.Debug
	case 'I':
		return t.Info
	case 'W':
		return t.Warn
	case 'E':
		return t.Error
	case 'F':
		return t.Fatal
	}
	return t.Info
}
