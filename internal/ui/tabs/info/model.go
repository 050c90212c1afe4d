// Package info provides the configuration and about tab.
package info

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tbielski/sessiondeck/internal/app"
	"github.com/tbielski/sessiondeck/internal/config"
	"github.com/tbielski/sessiondeck/internal/i18n"
)

type keyMap struct {
	Settings key.Binding
	Update   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Update: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "check for updates"),
		),
	}
}

// Model represents the info tab state.
type Model struct {
	state    *app.State
	cfg      *config.Config
	bundle   *i18n.Bundle
	viewport viewport.Model
	keys     keyMap
	width    int
	height   int
}

// New creates a new info model.
func New(state *app.State, cfg *config.Config, bundle *i18n.Bundle) *Model {
	return &Model{
		state:    state,
		cfg:      cfg,
		bundle:   bundle,
		viewport: viewport.New(0, 0),
		keys:     defaultKeyMap(),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmd tea.Cmd
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		m.viewport, cmd = m.viewport.Update(keyMsg)
	}
	return m, cmd
}

// SetSize sets the available size for the info tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Settings, m.keys.Update}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Settings},
		{m.keys.Update},
	}
}
