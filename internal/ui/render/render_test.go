package render

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tbielski/sessiondeck/internal/models"
)

func TestLooksLikeFileTree(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "tree drawing output",
			input: "src/\n├── main.go\n└── util/\n    └── path.go",
			want:  true,
		},
		{
			name:  "list marker paths",
			input: "- src/main.go\n- src/util/path.go",
			want:  true,
		},
		{
			name:  "windows paths with markers",
			input: "* C:\\Users\\alice\\proj\\main.go",
			want:  true,
		},
		{
			name:  "prose with a slash",
			input: "Either/or, the build passed.\nNothing else to report.",
			want:  false,
		},
		{
			name:  "markers without paths",
			input: "- first item\n- second item",
			want:  false,
		},
		{
			name:  "plain markdown",
			input: "# Result\n\nAll tests passed.",
			want:  false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := LooksLikeFileTree(c.input); got != c.want {
				t.Errorf("LooksLikeFileTree(%q) = %v, want %v", c.input, got, c.want)
			}
		})
	}
}

func makeLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestCollapsible_LongOutput(t *testing.T) {
	c := NewCollapsible(makeLines(20), 15)

	if !c.Collapsed() {
		t.Fatal("20 lines over a 15 line limit should start collapsed")
	}

	view := c.View()
	if !strings.Contains(view, "line 15") {
		t.Error("collapsed view should include the last visible line")
	}
	if strings.Contains(view, "line 16") {
		t.Error("collapsed view should hide lines past the limit")
	}
	if !strings.Contains(view, "5 more lines") {
		t.Errorf("collapsed view should count hidden lines, got %q", view)
	}

	c.Expand()
	if !strings.Contains(c.View(), "line 20") {
		t.Error("expanded view should show the full text")
	}

	// Expand and collapse are idempotent.
	c.Expand()
	if c.Collapsed() {
		t.Error("double Expand should stay expanded")
	}
	c.Collapse()
	c.Collapse()
	if !c.Collapsed() {
		t.Error("double Collapse should stay collapsed")
	}
}

func TestCollapsible_ShortOutput(t *testing.T) {
	c := NewCollapsible(makeLines(5), 15)

	if c.Collapsed() {
		t.Error("short output should start expanded")
	}
	c.Collapse()
	if c.Collapsed() {
		t.Error("short output cannot be collapsed")
	}
	if c.View() != makeLines(5) {
		t.Error("short output renders verbatim")
	}
}

func TestCollapsible_RetainsFullText(t *testing.T) {
	text := makeLines(30)
	c := NewCollapsible(text, 15)

	c.Collapse()
	if c.Text() != text {
		t.Error("collapsing must not discard the underlying text")
	}
	if c.LineCount() != 30 {
		t.Errorf("LineCount = %d, want 30", c.LineCount())
	}
}

func TestMarkdown_RenderToolOutput(t *testing.T) {
	m := NewMarkdown(80, true)

	tree := "pkg/\n├── a.go\n└── b.go"
	if got := m.RenderToolOutput(tree); got != tree {
		t.Error("file trees must pass through verbatim")
	}

	md := "# Heading\n\nsome **bold** text"
	got := m.RenderToolOutput(md)
	if got == "" {
		t.Error("markdown render should not be empty")
	}
	if strings.Contains(got, "**bold**") {
		t.Error("markdown markers should be consumed by rendering")
	}
}

func TestMarkdown_SetDarkRebuilds(t *testing.T) {
	m := NewMarkdown(40, false)

	m.SetDark(true)
	if !m.dark {
		t.Error("SetDark(true) should switch the theme")
	}
	if m.renderer == nil {
		t.Fatal("theme change should rebuild the renderer")
	}
	if m.Render("plain text") == "" {
		t.Error("rebuilt renderer should still render")
	}

	// No-op when the theme is unchanged.
	before := m.renderer
	m.SetDark(true)
	if m.renderer != before {
		t.Error("unchanged theme must not rebuild")
	}
}

func TestTerminal_Render(t *testing.T) {
	tr := NewTerminal()
	rec := models.TerminalRecord{
		Command:   "go test ./...",
		Stream:    models.StreamStdout,
		Output:    "ok\tpkg\t0.1s\n",
		Timestamp: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		ExitCode:  0,
	}

	out := tr.Render(rec, 80)
	if !strings.Contains(out, "go test ./...") {
		t.Error("rendered record should include the command")
	}
	if !strings.Contains(out, "[0]") {
		t.Error("rendered record should include the exit badge")
	}
	if !strings.Contains(out, "10:30:00") {
		t.Error("rendered record should include the timestamp")
	}
	if !strings.Contains(out, "ok") {
		t.Error("rendered record should include the output")
	}
}

func TestTerminal_RenderEmptyOutput(t *testing.T) {
	tr := NewTerminal()
	out := tr.Render(models.TerminalRecord{Command: "true"}, 80)
	if !strings.Contains(out, "(no output)") {
		t.Errorf("empty output should render the placeholder, got %q", out)
	}
}

func TestTerminal_StderrIsError(t *testing.T) {
	rec := models.TerminalRecord{
		Command:  "make",
		Stream:   models.StreamStderr,
		Output:   "undefined symbol",
		ExitCode: 0,
	}
	if !rec.IsError() {
		t.Error("stderr output counts as an error even with exit code 0")
	}
}
