package styles

import (
	"github.com/alecthomas/chroma/v2"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Chroma style names backing the two palettes.
const (
	darkStyleName  = "github-dark"
	lightStyleName = "github"
)

// CodePalette carries the colors used when rendering code blocks.
type CodePalette struct {
	Background lipgloss.Color
	Text       lipgloss.Color
	LineNumber lipgloss.Color
}

// Palette fallbacks for when a chroma style omits an entry.
var (
	darkFallback = CodePalette{
		Background: lipgloss.Color("#1e1e1e"),
		Text:       lipgloss.Color("#d4d4d4"),
		LineNumber: lipgloss.Color("#858585"),
	}
	lightFallback = CodePalette{
		Background: lipgloss.Color("#ffffff"),
		Text:       lipgloss.Color("#1f2328"),
		LineNumber: lipgloss.Color("#6e7781"),
	}
)

// GetCodePalette returns the code-block palette for the requested theme. Colors
// come from the corresponding chroma style so highlighted output and the
// surrounding frame agree.
func GetCodePalette(dark bool) CodePalette {
	name, fallback := lightStyleName, lightFallback
	if dark {
		name, fallback = darkStyleName, darkFallback
	}

	style := chromastyles.Get(name)
	if style == nil {
		return fallback
	}

	palette := fallback
	if c := style.Get(chroma.Background).Background; c.IsSet() {
		palette.Background = lipgloss.Color(c.String())
	}
	if c := style.Get(chroma.Text).Colour; c.IsSet() {
		palette.Text = lipgloss.Color(c.String())
	}
	if c := style.Get(chroma.LineNumbers).Colour; c.IsSet() {
		palette.LineNumber = lipgloss.Color(c.String())
	}
	return palette
}

// ChromaStyleName maps the theme flag to the chroma style identifier used for
// full syntax highlighting.
func ChromaStyleName(dark bool) string {
	if dark {
		return darkStyleName
	}
	return lightStyleName
}
