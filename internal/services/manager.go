// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/tbielski/sessiondeck/internal/config"
	"github.com/tbielski/sessiondeck/internal/db"
	"github.com/tbielski/sessiondeck/internal/models"
	"github.com/tbielski/sessiondeck/internal/services/sessions"
	"github.com/tbielski/sessiondeck/internal/services/update"
	"github.com/tbielski/sessiondeck/internal/version"
)

type (
	// SessionsChangedEvent is emitted when the session store contents change.
	SessionsChangedEvent struct{}

	// UpdateEvent is emitted for every update-check state change.
	UpdateEvent struct {
		Info models.UpdateInfo
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (SessionsChangedEvent) isServiceEvent() {}
func (UpdateEvent) isServiceEvent()          {}
func (ErrorEvent) isServiceEvent()           {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	sessions    *sessions.Service
	update      *update.Service
	store       *db.DB
	cfg         *config.Config
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
	notified    bool
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:      cfg,
		stopChan: make(chan struct{}),
	}

	var err error
	m.store, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.sessions, err = sessions.New(cfg.SessionsDir, m.store)
	if err != nil {
		_ = m.store.Close()
		return nil, fmt.Errorf("failed to initialize sessions service: %w", err)
	}

	installed := update.InstalledFromManifest(filepath.Join(filepath.Dir(cfg.SessionsDir), "package.json"))
	if installed == "" {
		installed = version.Current()
	}
	m.update = update.New(update.Config{
		URL:       cfg.UpdateURL,
		Timeout:   cfg.UpdateTimeout,
		Installed: installed,
	})

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.sessions.Events():
			m.handleSessionEvent(event)

		case event := <-m.update.Events():
			m.handleUpdateEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleSessionEvent(event sessions.Event) {
	switch event.Type {
	case sessions.EventSessionsLoaded, sessions.EventSessionsChanged:
		m.broadcast(SessionsChangedEvent{})

	case sessions.EventError:
		m.broadcast(ErrorEvent{
			Service: "sessions",
			Error:   event.Error,
		})
	}
}

func (m *Manager) handleUpdateEvent(event update.Event) {
	m.broadcast(UpdateEvent{Info: event.Info})

	if event.Info.State == models.UpdateAvailable {
		m.notifyUpdateAvailable(event.Info)
	}
}

// notifyUpdateAvailable fires a desktop notification once per process for a
// newly discovered release.
func (m *Manager) notifyUpdateAvailable(info models.UpdateInfo) {
	m.mu.Lock()
	already := m.notified
	m.notified = true
	m.mu.Unlock()

	if already {
		return
	}

	title := "SessionDeck update available"
	body := fmt.Sprintf("Version %s is available (installed: %s)", info.Latest, info.Installed)
	_ = beeep.Notify(title, body, "")
}

// CheckForUpdates runs an update check in the background. Results arrive via
// the event channel.
func (m *Manager) CheckForUpdates() {
	go func() {
		m.update.Check(context.Background())
	}()
}

// CheckForUpdatesNow runs an update check synchronously and returns the result.
func (m *Manager) CheckForUpdatesNow(ctx context.Context) models.UpdateInfo {
	return m.update.Check(ctx)
}

// GetRecentSessions returns the most recently active sessions.
func (m *Manager) GetRecentSessions(limit int) ([]models.Session, error) {
	return m.store.GetRecentSessions(limit)
}

// GetMessages returns a session's messages.
func (m *Manager) GetMessages(sessionID string) ([]models.Message, error) {
	return m.store.GetMessages(sessionID)
}

// GetToolCalls returns a session's tool calls.
func (m *Manager) GetToolCalls(sessionID string) ([]models.ToolCall, error) {
	return m.store.GetToolCalls(sessionID)
}

// GetWeekActivity returns the last 7 days of daily records.
func (m *Manager) GetWeekActivity() ([]models.DailyActivity, error) {
	return m.store.GetDailyActivity(7)
}

// GetTokenTrend returns one token total per day for the trend chart.
func (m *Manager) GetTokenTrend(days int) ([]float64, error) {
	return m.store.GetDailyTokenTrend(days)
}

// GetProjectPaths returns the distinct project paths seen across sessions.
func (m *Manager) GetProjectPaths() ([]string, error) {
	return m.store.GetProjectPaths()
}

// Config returns the loaded configuration.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close shuts down all services.
func (m *Manager) Close() error {
	close(m.stopChan)

	var firstErr error
	if err := m.sessions.Close(); err != nil {
		firstErr = err
	}
	if err := m.store.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	return firstErr
}
