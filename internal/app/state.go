// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/tbielski/sessiondeck/internal/models"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial  bool
	Sessions bool
}

// State is the shared application state. Tabs read from it; only the root
// model writes.
type State struct {
	mu sync.RWMutex

	sessions     []models.Session
	week         models.WeekSummary
	trend        []float64
	projectPath  string
	selectedIdx  int
	updateInfo   models.UpdateInfo

	Loading LoadingState

	lastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty application state.
func NewState() *State {
	return &State{
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "initial":
		s.Loading.Initial = loading
	case "sessions":
		s.Loading.Sessions = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial || s.Loading.Sessions
}

// SetSessions replaces the session list. The project path tracks the most
// recently active session.
func (s *State) SetSessions(sessions []models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = sessions
	s.lastUpdated = time.Now()

	if len(sessions) > 0 {
		s.projectPath = sessions[0].ProjectPath
	}
	if s.selectedIdx >= len(sessions) {
		s.selectedIdx = 0
	}
}

// GetSessions returns a copy of the session list.
func (s *State) GetSessions() []models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]models.Session, len(s.sessions))
	copy(sessions, s.sessions)
	return sessions
}

// SessionCount returns the number of loaded sessions.
func (s *State) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ProjectPath returns the active project path. Read-only; the value follows
// the most recent session.
func (s *State) ProjectPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectPath
}

// SetWeek replaces the weekly activity summary.
func (s *State) SetWeek(week models.WeekSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.week = week
	s.lastUpdated = time.Now()
}

// GetWeek returns the weekly activity summary.
func (s *State) GetWeek() models.WeekSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.week
}

// SetTrend replaces the token trend series.
func (s *State) SetTrend(trend []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trend = trend
}

// GetTrend returns a copy of the token trend series.
func (s *State) GetTrend() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trend := make([]float64, len(s.trend))
	copy(trend, s.trend)
	return trend
}

// SetUpdateInfo records the latest update-check result.
func (s *State) SetUpdateInfo(info models.UpdateInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateInfo = info
}

// GetUpdateInfo returns the latest update-check result.
func (s *State) GetUpdateInfo() models.UpdateInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updateInfo
}

// GetSelectedIndex returns the currently selected session index.
func (s *State) GetSelectedIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedIdx
}

// SetSelectedIndex updates the selected session index.
func (s *State) SetSelectedIndex(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx < 0 {
		idx = 0
	}
	s.selectedIdx = idx
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	// Keep only the last 10 notifications
	if len(s.notifications) > 10 {
		s.notifications = s.notifications[len(s.notifications)-10:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// GetLastUpdated returns the last time the state was updated.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}
