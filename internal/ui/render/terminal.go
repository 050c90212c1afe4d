package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/tbielski/sessiondeck/internal/models"
	"github.com/tbielski/sessiondeck/internal/ui/styles"
)

// Terminal renders captured command executions.
type Terminal struct {
	// ShowLineNumbers adds a gutter to the output block.
	ShowLineNumbers bool
	// TimeLayout formats the execution timestamp.
	TimeLayout string
}

// NewTerminal returns a renderer with the default presentation.
func NewTerminal() Terminal {
	return Terminal{
		ShowLineNumbers: true,
		TimeLayout:      "15:04:05",
	}
}

// Render formats one terminal record: a header line with the command, exit
// badge and timestamp, then the captured output. Stderr output is colored as
// an error stream.
func (t Terminal) Render(rec models.TerminalRecord, width int) string {
	var b strings.Builder

	b.WriteString(t.renderHeader(rec, width))
	b.WriteString("\n")
	b.WriteString(t.renderOutput(rec))

	return b.String()
}

func (t Terminal) renderHeader(rec models.TerminalRecord, width int) string {
	badge := styles.ExitOkBadgeStyle.Render(fmt.Sprintf("[%d]", rec.ExitCode))
	if rec.IsError() {
		badge = styles.ExitErrBadgeStyle.Render(fmt.Sprintf("[%d]", rec.ExitCode))
	}

	stamp := ""
	if !rec.Timestamp.IsZero() {
		stamp = styles.HelpStyle.Render(rec.Timestamp.Format(t.TimeLayout))
	}

	cmd := "$ " + rec.Command
	// Leave room for badge and timestamp on one line.
	reserved := runewidth.StringWidth(fmt.Sprintf("[%d] ", rec.ExitCode)) + len(t.TimeLayout) + 2
	if width > reserved+4 {
		cmd = runewidth.Truncate(cmd, width-reserved, "…")
	}

	parts := []string{badge, cmd}
	if stamp != "" {
		parts = append(parts, stamp)
	}
	return strings.Join(parts, " ")
}

func (t Terminal) renderOutput(rec models.TerminalRecord) string {
	if rec.Output == "" {
		return styles.HelpStyle.Render("(no output)")
	}

	lines := strings.Split(strings.TrimRight(rec.Output, "\n"), "\n")
	gutterWidth := len(fmt.Sprintf("%d", len(lines)))

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		if t.ShowLineNumbers {
			num := fmt.Sprintf("%*d ", gutterWidth, i+1)
			b.WriteString(styles.LineNumberStyle.Render(num))
		}
		if rec.Stream == models.StreamStderr {
			b.WriteString(styles.StderrTextStyle.Render(line))
		} else {
			b.WriteString(line)
		}
	}
	return b.String()
}
