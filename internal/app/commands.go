package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tbielski/sessiondeck/internal/models"
	"github.com/tbielski/sessiondeck/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	// trendDays is how many days of token history the trend chart shows.
	trendDays = 30
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadSessionsCmd loads sessions plus the derived weekly summary and trend.
func loadSessionsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		sessions, err := mgr.GetRecentSessions(100)
		if err != nil {
			return SessionsLoadedMsg{Error: err}
		}

		days, err := mgr.GetWeekActivity()
		if err != nil {
			return SessionsLoadedMsg{Error: err}
		}

		trend, err := mgr.GetTokenTrend(trendDays)
		if err != nil {
			return SessionsLoadedMsg{Error: err}
		}

		return SessionsLoadedMsg{
			Sessions: sessions,
			Week:     models.NewWeekSummary(days),
			Trend:    trend,
		}
	}
}

// loadSessionDetailCmd loads one session's messages and tool calls.
func loadSessionDetailCmd(mgr *services.Manager, sessionID string) tea.Cmd {
	return func() tea.Msg {
		msgs, err := mgr.GetMessages(sessionID)
		if err != nil {
			return SessionDetailMsg{SessionID: sessionID, Error: err}
		}
		calls, err := mgr.GetToolCalls(sessionID)
		if err != nil {
			return SessionDetailMsg{SessionID: sessionID, Error: err}
		}
		return SessionDetailMsg{
			SessionID: sessionID,
			Messages:  msgs,
			ToolCalls: calls,
		}
	}
}

// checkUpdateCmd kicks off a background update check. Results arrive as
// UpdateEvents through the service subscription.
func checkUpdateCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.CheckForUpdates()
		return nil
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}

// Commands provides a public interface to the command functions for tabs.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// LoadSessions returns a command that reloads sessions and activity.
func (c *Commands) LoadSessions() tea.Cmd {
	return loadSessionsCmd(c.manager)
}

// LoadSessionDetail returns a command that loads one session's records.
func (c *Commands) LoadSessionDetail(sessionID string) tea.Cmd {
	return loadSessionDetailCmd(c.manager, sessionID)
}

// CheckUpdate returns a command that starts a background update check.
func (c *Commands) CheckUpdate() tea.Cmd {
	return checkUpdateCmd(c.manager)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}
