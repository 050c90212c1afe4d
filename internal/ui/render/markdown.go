package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders tool output through glamour with a stable width.
type Markdown struct {
	renderer *glamour.TermRenderer
	width    int
	dark     bool
}

// NewMarkdown creates a renderer for the given wrap width and theme.
func NewMarkdown(width int, dark bool) *Markdown {
	m := &Markdown{dark: dark}
	m.SetWidth(width)
	return m
}

// SetWidth rebuilds the renderer for a new wrap width.
func (m *Markdown) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	if m.renderer != nil && m.width == width {
		return
	}
	m.width = width
	m.rebuild()
}

// SetDark rebuilds the renderer when the theme changes.
func (m *Markdown) SetDark(dark bool) {
	if m.renderer != nil && m.dark == dark {
		return
	}
	m.dark = dark
	m.rebuild()
}

func (m *Markdown) rebuild() {
	style := glamour.WithStandardStyle("light")
	if m.dark {
		style = glamour.WithStandardStyle("dark")
	}

	renderer, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(m.width),
	)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = renderer
}

// Render converts markdown to styled terminal text. Falls back to the raw
// input when rendering fails so output is never lost.
func (m *Markdown) Render(markdown string) string {
	if m.renderer == nil {
		return markdown
	}
	out, err := m.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(out, "\n")
}

// RenderToolOutput picks the presentation for a tool's text output: directory
// trees stay monospace verbatim, everything else goes through markdown.
func (m *Markdown) RenderToolOutput(output string) string {
	if LooksLikeFileTree(output) {
		return output
	}
	return m.Render(output)
}
