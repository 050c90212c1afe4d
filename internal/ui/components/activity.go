package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/tbielski/sessiondeck/internal/models"
	"github.com/tbielski/sessiondeck/internal/ui/styles"
)

// Partial block characters indexed by eighths filled, 0 through 8.
var eighthBlocks = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// ActivityChart renders a week of daily usage as vertical bars.
type ActivityChart struct {
	// Rows is the column height in terminal rows.
	Rows int
	// BarWidth is how many cells wide each bar is.
	BarWidth int
	// Gap is the spacing between columns.
	Gap int
}

// NewActivityChart returns a chart with the default geometry.
func NewActivityChart() ActivityChart {
	return ActivityChart{Rows: 5, BarWidth: 3, Gap: 2}
}

// Render draws the bar columns with one label per day underneath. Labels and
// days are matched by index; the last day's label is highlighted as today.
func (c ActivityChart) Render(summary models.WeekSummary, labels []string) string {
	if len(summary.Days) == 0 {
		return styles.HelpStyle.Render("No activity recorded")
	}

	rows := c.Rows
	if rows < 1 {
		rows = 1
	}
	barWidth := c.BarWidth
	if barWidth < 1 {
		barWidth = 1
	}
	gap := strings.Repeat(" ", c.Gap)

	heights := make([]int, len(summary.Days))
	for i, d := range summary.Days {
		heights[i] = summary.BarEighths(d, rows)
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteString("\n")
		}
		fromBottom := rows - 1 - row
		for i, d := range summary.Days {
			if i > 0 {
				b.WriteString(gap)
			}
			fill := heights[i] - fromBottom*8
			if fill < 0 {
				fill = 0
			}
			if fill > 8 {
				fill = 8
			}
			cell := strings.Repeat(eighthBlocks[fill], barWidth)
			if d.Tokens == 0 {
				b.WriteString(styles.BarZeroStyle.Render(cell))
			} else {
				b.WriteString(styles.BarActiveStyle.Render(cell))
			}
		}
	}

	b.WriteString("\n")
	for i := range summary.Days {
		if i > 0 {
			b.WriteString(gap)
		}
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		label = fitLabel(label, barWidth)
		if i == len(summary.Days)-1 {
			b.WriteString(styles.BarTodayLabelStyle.Render(label))
		} else {
			b.WriteString(styles.BarLabelStyle.Render(label))
		}
	}

	return b.String()
}

// fitLabel truncates or pads a label to exactly width cells.
func fitLabel(label string, width int) string {
	label = runewidth.Truncate(label, width, "")
	for runewidth.StringWidth(label) < width {
		label += " "
	}
	return label
}

// Width returns the rendered chart width in cells for n days.
func (c ActivityChart) Width(n int) int {
	if n < 1 {
		return 0
	}
	return n*c.BarWidth + (n-1)*c.Gap
}
