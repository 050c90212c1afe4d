package modal

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tbielski/sessiondeck/internal/config"
	"github.com/tbielski/sessiondeck/internal/ui/styles"
)

// SettingsName is the registry key for the settings modal.
const SettingsName = "settings"

// SettingsResult carries the edited values when the form is submitted.
type SettingsResult struct {
	Locale        string
	DarkTheme     bool
	UpdateCheck   bool
	CollapseLines int
}

// SettingsClosedMsg is emitted when the settings modal finishes. Saved is
// false when the user aborted the form.
type SettingsClosedMsg struct {
	Saved  bool
	Result SettingsResult
}

// Settings wraps a huh form editing the runtime-changeable options.
type Settings struct {
	cfg      *config.Config
	form     *huh.Form
	registry *Registry
	result   SettingsResult

	// collapseInput backs the line-count field; parsed on submit.
	collapseInput string

	width int
}

// NewSettings builds the form pre-filled from the current configuration.
func NewSettings(cfg *config.Config, registry *Registry) *Settings {
	s := &Settings{
		cfg:      cfg,
		registry: registry,
	}
	s.buildForm()
	return s
}

// buildForm re-seeds the edited values from the configuration and constructs
// a fresh form. A completed huh form keeps its terminal state, so every open
// needs a new one.
func (s *Settings) buildForm() {
	s.result = SettingsResult{
		Locale:        s.cfg.Locale,
		DarkTheme:     s.cfg.DarkTheme,
		UpdateCheck:   s.cfg.UpdateCheck,
		CollapseLines: s.cfg.CollapseLines,
	}
	s.collapseInput = strconv.Itoa(s.result.CollapseLines)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Language").
				Options(
					huh.NewOption("English", "en"),
				).
				Value(&s.result.Locale),
			huh.NewConfirm().
				Title("Dark syntax theme").
				Value(&s.result.DarkTheme),
			huh.NewConfirm().
				Title("Check for updates on startup").
				Value(&s.result.UpdateCheck),
			huh.NewInput().
				Title("Collapsed output lines").
				Validate(validateLineCount).
				Value(&s.collapseInput),
		),
	).WithShowHelp(true)
}

// validateLineCount accepts positive integers only.
func validateLineCount(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

// Open registers the modal as active and starts a fresh form.
func (s *Settings) Open() tea.Cmd {
	s.registry.Open(SettingsName)
	s.buildForm()
	return s.form.Init()
}

// IsOpen reports whether the settings modal is the active one.
func (s *Settings) IsOpen() bool {
	return s.registry.IsOpen(SettingsName)
}

// SetWidth sets the rendered modal width.
func (s *Settings) SetWidth(width int) {
	s.width = width
}

// Update advances the form. When it completes or aborts, the modal closes and
// a SettingsClosedMsg is issued.
func (s *Settings) Update(msg tea.Msg) tea.Cmd {
	if !s.IsOpen() {
		return nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		s.registry.Close(SettingsName)
		return func() tea.Msg {
			return SettingsClosedMsg{Saved: false}
		}
	}

	model, cmd := s.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		s.form = form
	}

	if s.form.State == huh.StateCompleted {
		s.registry.Close(SettingsName)
		if n, err := strconv.Atoi(s.collapseInput); err == nil && n >= 1 {
			s.result.CollapseLines = n
		}
		result := s.result
		return func() tea.Msg {
			return SettingsClosedMsg{Saved: true, Result: result}
		}
	}
	if s.form.State == huh.StateAborted {
		s.registry.Close(SettingsName)
		return func() tea.Msg {
			return SettingsClosedMsg{Saved: false}
		}
	}

	return cmd
}

// View renders the form inside the modal frame, or "" when closed.
func (s *Settings) View() string {
	if !s.IsOpen() {
		return ""
	}

	content := styles.TitleStyle.Render("Settings") + "\n" + s.form.View()
	style := styles.ModalContentStyle
	if s.width > 0 {
		style = style.Width(s.width)
	}
	return style.Render(content)
}
