// Package picker is the pre-session device chooser. It runs a small Bubble
// Tea program to completion before the viewport controller takes ownership
// of the terminal, so the two never share it.
package picker

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/droidbay/catlog/internal/adb"
)

// ErrAborted reports that the user backed out without choosing a device.
var ErrAborted = errors.New("picker: no device selected")

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

type deviceItem struct {
	dev adb.Device
}

func (d deviceItem) Title() string { return d.dev.Serial }

func (d deviceItem) Description() string {
	if d.dev.Online() {
		return "ready"
	}
	return d.dev.State
}

func (d deviceItem) FilterValue() string { return d.dev.Serial }

type model struct {
	list     list.Model
	choice   adb.Device
	chosen   bool
	aborted  bool
	quitting bool
}

func newModel(devices []adb.Device) model {
	items := make([]list.Item, 0, len(devices))
	for _, d := range devices {
		items = append(items, deviceItem{dev: d})
	}

	l := list.New(items, list.NewDefaultDelegate(), 40, len(devices)*3+6)
	l.Title = "Select a device"
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return model{list: l}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.aborted = true
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(deviceItem); ok && item.dev.Online() {
				m.choice = item.dev
				m.chosen = true
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View() + "\n" + footerStyle.Render("enter: attach  q: quit")
}

// Run shows the chooser and blocks until the user picks an online device or
// backs out. With exactly one online device it short-circuits without
// touching the terminal.
func Run(devices []adb.Device) (adb.Device, error) {
	online := make([]adb.Device, 0, len(devices))
	for _, d := range devices {
		if d.Online() {
			online = append(online, d)
		}
	}
	if len(online) == 0 {
		return adb.Device{}, adb.ErrNoDevices
	}
	if len(online) == 1 {
		return online[0], nil
	}

	final, err := tea.NewProgram(newModel(devices)).Run()
	if err != nil {
		return adb.Device{}, fmt.Errorf("device chooser: %w", err)
	}
	m, ok := final.(model)
	if !ok || !m.chosen {
		return adb.Device{}, ErrAborted
	}
	return m.choice, nil
}
