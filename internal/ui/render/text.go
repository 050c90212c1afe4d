// Package render formats tool output for display.
package render

import (
	"fmt"
	"strings"

	"github.com/tbielski/sessiondeck/internal/ui/styles"
)

// DefaultCollapseLines is the fallback collapsed height.
const DefaultCollapseLines = 15

// treeDrawingChars appear in directory-tree listings produced by file tools.
var treeDrawingChars = []string{"│", "├", "└", "─"}

// listMarkers are the line prefixes of plain-text listings.
var listMarkers = []string{"- ", "* ", "+ "}

// LooksLikeFileTree reports whether output resembles a directory tree. The
// output must contain a path separator and either tree-drawing characters or
// lines led by list markers; prose with an occasional slash stays markdown.
func LooksLikeFileTree(s string) bool {
	if !strings.ContainsAny(s, "/\\") {
		return false
	}

	for _, c := range treeDrawingChars {
		if strings.Contains(s, c) {
			return true
		}
	}

	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		for _, m := range listMarkers {
			if strings.HasPrefix(trimmed, m) {
				return true
			}
		}
	}
	return false
}

// Collapsible is tool output that can be shown truncated or in full. The full
// text is always retained; collapsing only changes what View returns.
type Collapsible struct {
	// MaxLines is the collapsed height. Zero means DefaultCollapseLines.
	MaxLines int

	text      string
	lines     []string
	collapsed bool
}

// NewCollapsible wraps text, starting collapsed when it exceeds the limit.
func NewCollapsible(text string, maxLines int) Collapsible {
	if maxLines < 1 {
		maxLines = DefaultCollapseLines
	}
	lines := strings.Split(text, "\n")
	return Collapsible{
		MaxLines:  maxLines,
		text:      text,
		lines:     lines,
		collapsed: len(lines) > maxLines,
	}
}

// Collapse truncates the view. Repeated calls are no-ops.
func (c *Collapsible) Collapse() {
	if len(c.lines) > c.MaxLines {
		c.collapsed = true
	}
}

// Expand shows the full text. Repeated calls are no-ops.
func (c *Collapsible) Expand() {
	c.collapsed = false
}

// Toggle flips between collapsed and expanded.
func (c *Collapsible) Toggle() {
	if c.collapsed {
		c.Expand()
	} else {
		c.Collapse()
	}
}

// Collapsed reports whether the view is currently truncated.
func (c Collapsible) Collapsed() bool {
	return c.collapsed
}

// Collapsible reports whether the text is long enough to truncate at all.
func (c Collapsible) Collapsible() bool {
	return len(c.lines) > c.MaxLines
}

// Text returns the full underlying text regardless of view state.
func (c Collapsible) Text() string {
	return c.text
}

// LineCount returns the total number of lines in the full text.
func (c Collapsible) LineCount() int {
	return len(c.lines)
}

// View returns the visible text: all lines when expanded, the first MaxLines
// plus a hint when collapsed.
func (c Collapsible) View() string {
	if !c.collapsed || len(c.lines) <= c.MaxLines {
		return c.text
	}

	hidden := len(c.lines) - c.MaxLines
	visible := strings.Join(c.lines[:c.MaxLines], "\n")
	hint := styles.CollapsedHintStyle.Render(fmt.Sprintf("… %d more lines", hidden))
	return visible + "\n" + hint
}
