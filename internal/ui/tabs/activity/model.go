// Package activity provides the weekly activity tab.
package activity

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tbielski/sessiondeck/internal/app"
	"github.com/tbielski/sessiondeck/internal/i18n"
	"github.com/tbielski/sessiondeck/internal/ui/components"
)

// keyMap defines the key bindings specific to the activity tab.
type keyMap struct {
	ToggleTrend key.Binding
	Refresh     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ToggleTrend: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle trend"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

// Model represents the activity tab state.
type Model struct {
	state     *app.State
	bundle    *i18n.Bundle
	chart     components.ActivityChart
	spinner   components.LoadingSpinner
	viewport  viewport.Model
	keys      keyMap
	width     int
	height    int
	showTrend bool
}

// New creates a new activity model.
func New(state *app.State, bundle *i18n.Bundle) *Model {
	return &Model{
		state:     state,
		bundle:    bundle,
		chart:     components.NewActivityChart(),
		spinner:   components.NewSpinner(bundle.T("activity.loading", "Loading activity...")),
		viewport:  viewport.New(0, 0),
		keys:      defaultKeyMap(),
		showTrend: true,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.ToggleTrend):
			m.showTrend = !m.showTrend
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// SetSize sets the available size for the activity tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.ToggleTrend, m.keys.Refresh}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.ToggleTrend},
		{m.keys.Refresh},
	}
}
