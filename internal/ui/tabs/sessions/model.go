// Package sessions provides the session browser tab.
package sessions

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tbielski/sessiondeck/internal/app"
	"github.com/tbielski/sessiondeck/internal/config"
	"github.com/tbielski/sessiondeck/internal/i18n"
	"github.com/tbielski/sessiondeck/internal/models"
	"github.com/tbielski/sessiondeck/internal/ui/components"
	"github.com/tbielski/sessiondeck/internal/ui/modal"
	"github.com/tbielski/sessiondeck/internal/ui/render"
)

// keyMap defines the key bindings specific to the sessions tab.
type keyMap struct {
	NextSession key.Binding
	PrevSession key.Binding
	Open        key.Binding
	NextOutput  key.Binding
	PrevOutput  key.Binding
	Toggle      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextSession: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next session"),
		),
		PrevSession: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "prev session"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open session"),
		),
		NextOutput: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next output"),
		),
		PrevOutput: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prev output"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expand/collapse"),
		),
	}
}

// callBlock pairs a tool call with its collapsible formatted output.
type callBlock struct {
	call models.ToolCall
	body render.Collapsible
}

// Model represents the sessions tab state.
type Model struct {
	state    *app.State
	bundle   *i18n.Bundle
	commands *app.Commands
	cfg      *config.Config

	markdown *render.Markdown
	terminal render.Terminal
	spinner  components.LoadingSpinner
	viewport viewport.Model
	keys     keyMap

	detailID      string
	messages      []models.Message
	blocks        []callBlock
	selectedBlock int
	collapseLines int

	width  int
	height int
}

// New creates a new sessions model.
func New(state *app.State, bundle *i18n.Bundle, commands *app.Commands, cfg *config.Config) *Model {
	collapseLines := cfg.CollapseLines
	if collapseLines < 1 {
		collapseLines = render.DefaultCollapseLines
	}

	return &Model{
		state:         state,
		bundle:        bundle,
		commands:      commands,
		cfg:           cfg,
		markdown:      render.NewMarkdown(80, cfg.DarkTheme),
		terminal:      render.NewTerminal(),
		spinner:       components.NewSpinner(bundle.T("sessions.loading", "Loading sessions...")),
		viewport:      viewport.New(0, 0),
		keys:          defaultKeyMap(),
		collapseLines: collapseLines,
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
		if cmd := m.handleKeyMsg(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case app.SessionsLoadedMsg:
		// Reload the open detail when the underlying session changed.
		if m.detailID != "" && m.commands != nil {
			cmds = append(cmds, m.commands.LoadSessionDetail(m.detailID))
		}

	case app.SessionDetailMsg:
		m.handleDetail(msg)

	case modal.SettingsClosedMsg:
		if msg.Saved {
			m.reformatBlocks()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	count := m.state.SessionCount()

	switch {
	case key.Matches(msg, m.keys.NextSession):
		if count > 0 {
			m.state.SetSelectedIndex((m.state.GetSelectedIndex() + 1) % count)
		}

	case key.Matches(msg, m.keys.PrevSession):
		if count > 0 {
			m.state.SetSelectedIndex((m.state.GetSelectedIndex() - 1 + count) % count)
		}

	case key.Matches(msg, m.keys.Open):
		return m.openSelected()

	case key.Matches(msg, m.keys.NextOutput):
		if len(m.blocks) > 0 {
			m.selectedBlock = (m.selectedBlock + 1) % len(m.blocks)
		}

	case key.Matches(msg, m.keys.PrevOutput):
		if len(m.blocks) > 0 {
			m.selectedBlock = (m.selectedBlock - 1 + len(m.blocks)) % len(m.blocks)
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.selectedBlock < len(m.blocks) {
			m.blocks[m.selectedBlock].body.Toggle()
		}

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// openSelected loads the detail for the currently selected session.
func (m *Model) openSelected() tea.Cmd {
	sessions := m.state.GetSessions()
	idx := m.state.GetSelectedIndex()
	if idx >= len(sessions) || m.commands == nil {
		return nil
	}
	return m.commands.LoadSessionDetail(sessions[idx].ID)
}

// handleDetail replaces the open detail with freshly formatted blocks.
func (m *Model) handleDetail(msg app.SessionDetailMsg) {
	if msg.Error != nil {
		return
	}

	m.refreshRenderOptions()

	m.detailID = msg.SessionID
	m.messages = msg.Messages
	m.blocks = make([]callBlock, 0, len(msg.ToolCalls))
	m.selectedBlock = 0

	for _, call := range msg.ToolCalls {
		m.blocks = append(m.blocks, callBlock{
			call: call,
			body: render.NewCollapsible(m.formatOutput(call), m.collapseLines),
		})
	}
}

// refreshRenderOptions picks up theme and collapse-threshold changes made
// through the settings modal.
func (m *Model) refreshRenderOptions() {
	if m.cfg.CollapseLines >= 1 {
		m.collapseLines = m.cfg.CollapseLines
	}
	m.markdown.SetDark(m.cfg.DarkTheme)
}

// reformatBlocks re-renders the open detail with the current options.
func (m *Model) reformatBlocks() {
	m.refreshRenderOptions()
	for i := range m.blocks {
		m.blocks[i].body = render.NewCollapsible(m.formatOutput(m.blocks[i].call), m.collapseLines)
	}
}

// formatOutput picks the presentation for a tool call's output.
func (m *Model) formatOutput(call models.ToolCall) string {
	if call.Terminal != nil {
		return m.terminal.Render(*call.Terminal, m.contentWidth())
	}
	return m.markdown.RenderToolOutput(call.Output)
}

func (m *Model) contentWidth() int {
	w := m.width - 10
	if w < 40 {
		w = 40
	}
	return w
}

// SetSize sets the available size for the sessions tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.markdown.SetWidth(m.contentWidth())
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.NextSession,
		m.keys.PrevSession,
		m.keys.Open,
		m.keys.Toggle,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.NextSession, m.keys.PrevSession, m.keys.Open},
		{m.keys.NextOutput, m.keys.PrevOutput, m.keys.Toggle},
	}
}
