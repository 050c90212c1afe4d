package activity

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tbielski/sessiondeck/internal/models"
	"github.com/tbielski/sessiondeck/internal/ui/components"
	"github.com/tbielski/sessiondeck/internal/ui/styles"
)

// View renders the activity tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())

	week := m.state.GetWeek()
	if len(week.Days) == 0 {
		if m.state.AnyLoading() {
			sections = append(sections, m.spinner.ViewWithLabel())
		} else {
			sections = append(sections, styles.HelpStyle.Render(
				m.bundle.T("activity.empty", "No activity recorded yet")))
		}
	} else {
		sections = append(sections, m.renderWeekCard(week))
		if m.showTrend {
			sections = append(sections, m.renderTrendCard())
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render(m.bundle.T("activity.title", "Weekly Activity"))
	subtitle := styles.HelpStyle.Render(
		m.bundle.T("activity.subtitle", "Token, message and session counts for the last 7 days"))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderWeekCard(week models.WeekSummary) string {
	chart := m.chart.Render(week, m.weekdayLabels(week))
	summary := m.renderSummary(week)

	return styles.CardStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, chart, "", summary),
	)
}

// weekdayLabels maps each day in the summary to its localized weekday name.
func (m *Model) weekdayLabels(week models.WeekSummary) []string {
	names := m.bundle.TList("activity.weekdays")
	labels := make([]string, len(week.Days))
	for i, d := range week.Days {
		idx := int(d.Date.Weekday())
		if idx < len(names) {
			labels[i] = names[idx]
		}
	}
	return labels
}

func (m *Model) renderSummary(week models.WeekSummary) string {
	avgTokens := m.bundle.TF("activity.avg_tokens", "avg {tokens} tokens/day",
		map[string]string{"tokens": formatCount(week.AvgTokensDay)})
	avgMessages := m.bundle.TF("activity.avg_messages", "avg {messages} msgs/day",
		map[string]string{"messages": fmt.Sprintf("%d", week.AvgMessagesDay)})
	activeDays := m.bundle.TF("activity.active_days", "{count} active days",
		map[string]string{"count": fmt.Sprintf("%d", week.ActiveDays)})

	sep := styles.HelpSeparatorStyle.Render("  ·  ")
	return styles.InfoTextStyle.Render(avgTokens) + sep +
		styles.InfoTextStyle.Render(avgMessages) + sep +
		styles.SuccessTextStyle.Render(activeDays)
}

func (m *Model) renderTrendCard() string {
	trend := m.state.GetTrend()
	if len(trend) == 0 {
		return ""
	}

	chartWidth := m.width - 16
	chart := components.RenderLineChart(trend, chartWidth, 6, "tokens / 30 days")

	return styles.CardStyle.Render(chart)
}

// formatCount renders token counts compactly (12.3k style above 10k).
func formatCount(n int64) string {
	if n >= 10_000 {
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	}
	return fmt.Sprintf("%d", n)
}
