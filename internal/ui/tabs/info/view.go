package info

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tbielski/sessiondeck/internal/pathutil"
	"github.com/tbielski/sessiondeck/internal/ui/styles"
	"github.com/tbielski/sessiondeck/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderAboutCard(),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render(m.bundle.T("info.title", "Info"))
	subtitle := styles.HelpStyle.Render(
		m.bundle.T("info.subtitle", "Configuration and application information"))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderConfigCard() string {
	project := m.state.ProjectPath()
	home := pathutil.DetectHomeDir([]string{project, m.cfg.SessionsDir, m.cfg.DatabasePath})

	theme := m.bundle.T("info.theme_light", "light")
	if m.cfg.DarkTheme {
		theme = m.bundle.T("info.theme_dark", "dark")
	}

	rows := []string{
		styles.CardTitleStyle.Render(m.bundle.T("info.configuration", "Configuration")),
		m.row("info.project", "Project", displayOrDash(project, home)),
		m.row("info.sessions_dir", "Sessions directory", pathutil.DisplayPath(m.cfg.SessionsDir, home)),
		m.row("info.database", "Database", pathutil.DisplayPath(m.cfg.DatabasePath, home)),
		m.row("info.locale", "Locale", m.cfg.Locale),
		m.row("info.theme", "Theme", theme),
	}

	return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderAboutCard() string {
	sessionCount := m.bundle.TF("info.session_count", "{count} sessions indexed",
		map[string]string{"count": fmt.Sprintf("%d", m.state.SessionCount())})

	rows := []string{
		styles.CardTitleStyle.Render(m.bundle.T("info.about", "About")),
		styles.InfoTextStyle.Render(version.Info()),
		styles.InfoTextStyle.Render(sessionCount),
		m.renderUpdateRow(),
	}

	return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderUpdateRow() string {
	info := m.state.GetUpdateInfo()
	label := styles.HelpStyle.Render(m.bundle.T("info.update_state", "Update check") + ": ")
	return label + styles.InfoTextStyle.Render(info.State.String())
}

func (m *Model) row(key, fallback, value string) string {
	label := styles.HelpStyle.Render(m.bundle.T(key, fallback) + ": ")
	return label + styles.InfoTextStyle.Render(value)
}

func displayOrDash(p, home string) string {
	if p == "" {
		return "(none)"
	}
	return pathutil.DisplayPath(p, home)
}
