// Package main is the entry point for the SessionDeck TUI application.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tbielski/sessiondeck/internal/app"
	"github.com/tbielski/sessiondeck/internal/config"
	"github.com/tbielski/sessiondeck/internal/i18n"
	"github.com/tbielski/sessiondeck/internal/logger"
	"github.com/tbielski/sessiondeck/internal/services"
	"github.com/tbielski/sessiondeck/internal/ui/tabs/activity"
	"github.com/tbielski/sessiondeck/internal/ui/tabs/info"
	"github.com/tbielski/sessiondeck/internal/ui/tabs/sessions"
	"github.com/tbielski/sessiondeck/internal/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	bundle, err := i18n.Load(cfg.Locale)
	if err != nil {
		return fmt.Errorf("failed to load locale %q: %w", cfg.Locale, err)
	}

	// Starts the session watcher and the update checker.
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			logger.Warn("error closing services", "error", closeErr)
		}
	}()

	model := app.NewModel(svcManager, cfg, bundle)

	// Each tab receives the shared application state for consistent data access.
	state := model.GetState()
	tabs := []app.Tab{
		activity.New(state, bundle),
		sessions.New(state, bundle, model.GetCommands(), cfg),
		info.New(state, cfg, bundle),
	}
	model.SetTabs(tabs)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`SessionDeck - agent session activity and tool output viewer

Usage:
  sdeck [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-3             Switch between tabs (Activity, Sessions, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  Enter           Open a session
  e               Expand/collapse tool output
  r               Refresh data
  s               Open settings
  u               Check for updates
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  SESSIONS_DIR     Session transcript directory
  DATABASE_PATH    SQLite cache path
  LOCALE           UI locale (default: en)
  DARK_THEME       Dark syntax palette (default: true)
  UPDATE_CHECK     Check for updates on startup (default: true)
  COLLAPSE_LINES   Collapsed tool output line count (default: 15)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/sessiondeck/.env
  - ~/.sessiondeck/.env

For more information, visit: https://github.com/tbielski/sessiondeck`)
}
