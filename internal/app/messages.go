package app

import (
	"time"

	"github.com/tbielski/sessiondeck/internal/models"
	"github.com/tbielski/sessiondeck/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// SessionsLoadedMsg contains the session list and derived activity data.
type SessionsLoadedMsg struct {
	Sessions []models.Session
	Week     models.WeekSummary
	Trend    []float64
	Error    error
}

// SessionDetailMsg contains one session's messages and tool calls.
type SessionDetailMsg struct {
	SessionID string
	Messages  []models.Message
	ToolCalls []models.ToolCall
	Error     error
}

// UpdateCheckRequestedMsg asks for a manual update check.
type UpdateCheckRequestedMsg struct{}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearNotificationsMsg requests clearing all notifications.
type ClearNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// OpenSettingsMsg opens the settings modal.
type OpenSettingsMsg struct{}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct{}
