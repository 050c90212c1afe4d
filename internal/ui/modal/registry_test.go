package modal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tbielski/sessiondeck/internal/config"
)

func TestRegistry_OpenClose(t *testing.T) {
	r := NewRegistry()

	if r.AnyOpen() {
		t.Error("fresh registry should have nothing open")
	}

	r.Open("settings")
	if !r.IsOpen("settings") {
		t.Error("settings should be open")
	}
	if r.Active() != "settings" {
		t.Errorf("Active = %q, want settings", r.Active())
	}

	r.Close("settings")
	if r.IsOpen("settings") || r.AnyOpen() {
		t.Error("settings should be closed")
	}
}

func TestRegistry_OpenReplacesActive(t *testing.T) {
	r := NewRegistry()

	r.Open("settings")
	r.Open("help")

	if r.IsOpen("settings") {
		t.Error("opening a second modal must close the first")
	}
	if !r.IsOpen("help") {
		t.Error("help should be the active modal")
	}
}

func TestRegistry_CloseWrongNameIsNoop(t *testing.T) {
	r := NewRegistry()

	r.Open("settings")
	r.Close("help")

	if !r.IsOpen("settings") {
		t.Error("closing an inactive modal must not touch the active one")
	}
}

func TestSettings_OpenAndEscape(t *testing.T) {
	cfg := &config.Config{Locale: "en", DarkTheme: true, UpdateCheck: true}
	r := NewRegistry()
	s := NewSettings(cfg, r)

	if s.IsOpen() {
		t.Error("settings should start closed")
	}
	if s.View() != "" {
		t.Error("closed settings should render empty")
	}

	_ = s.Open()
	if !s.IsOpen() {
		t.Fatal("settings should be open")
	}
	if s.View() == "" {
		t.Error("open settings should render the form")
	}

	cmd := s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.IsOpen() {
		t.Error("escape should close the modal")
	}
	if cmd == nil {
		t.Fatal("escape should issue a closed message")
	}
	msg, ok := cmd().(SettingsClosedMsg)
	if !ok {
		t.Fatalf("unexpected message type %T", cmd())
	}
	if msg.Saved {
		t.Error("escape must not report a save")
	}
}

func TestSettings_UpdateWhileClosedIsNoop(t *testing.T) {
	cfg := &config.Config{Locale: "en"}
	s := NewSettings(cfg, NewRegistry())

	if cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("closed modal must ignore input")
	}
}

// completeForm drives the open form straight to its completed state.
func completeForm(t *testing.T, s *Settings) SettingsClosedMsg {
	t.Helper()

	s.form.State = huh.StateCompleted
	cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("completed form should issue a closed message")
	}
	msg, ok := cmd().(SettingsClosedMsg)
	if !ok {
		t.Fatalf("unexpected message type %T", cmd())
	}
	return msg
}

func TestSettings_ReopenAfterSaveAcceptsInput(t *testing.T) {
	cfg := &config.Config{Locale: "en", DarkTheme: true, UpdateCheck: true, CollapseLines: 15}
	r := NewRegistry()
	s := NewSettings(cfg, r)

	_ = s.Open()
	msg := completeForm(t, s)
	if !msg.Saved {
		t.Fatal("completing the form should report a save")
	}
	if s.IsOpen() {
		t.Fatal("modal should close after save")
	}

	// A second open must start a fresh form, not replay the completed one.
	_ = s.Open()
	if !s.IsOpen() {
		t.Fatal("modal should reopen")
	}
	if s.form.State == huh.StateCompleted {
		t.Fatal("reopened form must not start completed")
	}

	cmd := s.Update(tea.KeyMsg{Type: tea.KeyDown})
	if !s.IsOpen() {
		t.Error("reopened modal must stay open on the first key press")
	}
	if cmd != nil {
		if _, ok := cmd().(SettingsClosedMsg); ok {
			t.Error("reopened modal must not emit a stale closed message")
		}
	}
}

func TestSettings_CollapseLinesParsedOnSave(t *testing.T) {
	cfg := &config.Config{Locale: "en", CollapseLines: 15}
	s := NewSettings(cfg, NewRegistry())

	_ = s.Open()
	s.collapseInput = "25"
	msg := completeForm(t, s)

	if msg.Result.CollapseLines != 25 {
		t.Errorf("CollapseLines = %d, want 25", msg.Result.CollapseLines)
	}
}

func TestSettings_OpenReseedsFromConfig(t *testing.T) {
	cfg := &config.Config{Locale: "en", DarkTheme: true, CollapseLines: 15}
	s := NewSettings(cfg, NewRegistry())

	// Abandoned edits must not leak into the next open.
	_ = s.Open()
	s.result.DarkTheme = false
	s.collapseInput = "999"
	_ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})

	_ = s.Open()
	if !s.result.DarkTheme {
		t.Error("reopen should restore the configured theme")
	}
	if s.collapseInput != "15" {
		t.Errorf("collapseInput = %q, want 15", s.collapseInput)
	}
}

func TestValidateLineCount(t *testing.T) {
	if err := validateLineCount("15"); err != nil {
		t.Errorf("15 should validate, got %v", err)
	}
	if err := validateLineCount("0"); err == nil {
		t.Error("0 must not validate")
	}
	if err := validateLineCount("abc"); err == nil {
		t.Error("non-numeric input must not validate")
	}
}
