package sessions

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tbielski/sessiondeck/internal/models"
	"github.com/tbielski/sessiondeck/internal/pathutil"
	"github.com/tbielski/sessiondeck/internal/ui/styles"
)

const sessionListHeight = 8

// View renders the sessions tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, styles.TitleStyle.Render(m.bundle.T("sessions.title", "Sessions")))

	sessions := m.state.GetSessions()
	if len(sessions) == 0 {
		if m.state.AnyLoading() {
			sections = append(sections, m.spinner.ViewWithLabel())
		} else {
			sections = append(sections, styles.HelpStyle.Render(
				m.bundle.T("sessions.empty", "No sessions found")))
		}
	} else {
		sections = append(sections, m.renderList(sessions))
		if m.detailID != "" {
			sections = append(sections, m.renderDetail())
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderList draws the selectable session list, windowed around the selection.
func (m *Model) renderList(sessions []models.Session) string {
	selected := m.state.GetSelectedIndex()

	start := 0
	if selected >= sessionListHeight {
		start = selected - sessionListHeight + 1
	}
	end := start + sessionListHeight
	if end > len(sessions) {
		end = len(sessions)
	}

	home := pathutil.DetectHomeDir(projectPaths(sessions))

	var rows []string
	for i := start; i < end; i++ {
		s := sessions[i]
		line := fmt.Sprintf("%-14s  %s  %s",
			s.LastActiveAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%5d tok", s.Tokens),
			pathutil.DisplayPath(s.ProjectPath, home),
		)
		if i == selected {
			rows = append(rows, styles.SelectedListItemStyle.Render(line))
		} else {
			rows = append(rows, styles.ListItemStyle.Render(line))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func projectPaths(sessions []models.Session) []string {
	paths := make([]string, 0, len(sessions))
	for _, s := range sessions {
		if s.ProjectPath != "" {
			paths = append(paths, s.ProjectPath)
		}
	}
	return paths
}

// renderDetail draws the opened session's tool outputs.
func (m *Model) renderDetail() string {
	var rows []string

	rows = append(rows, "")
	rows = append(rows, styles.SubTitleStyle.Render(
		m.bundle.T("sessions.tool_output", "Tool Output")))

	if len(m.blocks) == 0 {
		rows = append(rows, styles.HelpStyle.Render("(no tool output)"))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	for i := range m.blocks {
		rows = append(rows, m.renderBlock(i))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderBlock(i int) string {
	block := &m.blocks[i]

	header := block.call.Name
	if block.call.Terminal != nil {
		header += "  " + styles.HelpStyle.Render(
			m.bundle.TF("sessions.exit_code", "exit {code}",
				map[string]string{"code": fmt.Sprintf("%d", block.call.Terminal.ExitCode)}))
	}
	if block.body.Collapsible() {
		hint := m.bundle.T("sessions.expand", "Show all lines")
		if !block.body.Collapsed() {
			hint = m.bundle.T("sessions.collapse", "Collapse")
		}
		header += "  " + styles.CollapsedHintStyle.Render("[e] "+hint)
	}

	if i == m.selectedBlock {
		header = styles.FocusedStyle.Render("▸ ") + header
	} else {
		header = "  " + header
	}

	body := styles.MonoBlockStyle.Render(block.body.View())
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}
