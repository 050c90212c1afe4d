package components

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tbielski/sessiondeck/internal/models"
	"github.com/tbielski/sessiondeck/internal/ui/styles"
)

// NoticeExpiredMsg is emitted when an auto-dismiss timer fires. Seq identifies
// the showing it was armed for; a stale Seq means the notice was hidden or
// re-shown in the meantime and the message is ignored.
type NoticeExpiredMsg struct {
	Seq int
}

// UpdateNotice is a transient banner reporting update-check progress. A
// terminal result dismisses itself after SuccessDuration; a check stuck in the
// checking state is force-dismissed after CheckingTimeout.
type UpdateNotice struct {
	// SuccessDuration is how long a finished check stays visible.
	SuccessDuration time.Duration
	// CheckingTimeout force-dismisses a notice stuck in the checking state.
	CheckingTimeout time.Duration

	visible bool
	info    models.UpdateInfo
	seq     int
}

// NewUpdateNotice creates a notice with the given timer durations.
func NewUpdateNotice(successDuration, checkingTimeout time.Duration) UpdateNotice {
	if successDuration <= 0 {
		successDuration = 4 * time.Second
	}
	if checkingTimeout <= 0 {
		checkingTimeout = 10 * time.Second
	}
	return UpdateNotice{
		SuccessDuration: successDuration,
		CheckingTimeout: checkingTimeout,
	}
}

// Show makes the notice visible for the given check state and arms the
// matching dismiss timer. Re-showing invalidates any timer armed earlier.
func (n *UpdateNotice) Show(info models.UpdateInfo) tea.Cmd {
	n.seq++
	n.visible = true
	n.info = info

	duration := n.SuccessDuration
	if info.State == models.UpdateChecking {
		duration = n.CheckingTimeout
	}

	seq := n.seq
	return tea.Tick(duration, func(time.Time) tea.Msg {
		return NoticeExpiredMsg{Seq: seq}
	})
}

// Hide dismisses the notice and invalidates any pending timer.
func (n *UpdateNotice) Hide() {
	n.seq++
	n.visible = false
}

// Update handles timer expiry. Returns true when the message dismissed the
// notice; stale or foreign messages leave it untouched.
func (n *UpdateNotice) Update(msg tea.Msg) bool {
	expired, ok := msg.(NoticeExpiredMsg)
	if !ok {
		return false
	}
	if !n.visible || expired.Seq != n.seq {
		return false
	}
	n.visible = false
	return true
}

// Visible reports whether the notice is currently shown.
func (n UpdateNotice) Visible() bool {
	return n.visible
}

// Info returns the check result currently displayed.
func (n UpdateNotice) Info() models.UpdateInfo {
	return n.info
}

// View renders the notice banner, or "" when hidden.
func (n UpdateNotice) View() string {
	if !n.visible {
		return ""
	}

	switch n.info.State {
	case models.UpdateChecking:
		return styles.NotificationInfoStyle.Render("Checking for updates...")
	case models.UpdateAvailable:
		return styles.NotificationWarningStyle.Render(
			fmt.Sprintf("Update available: %s → %s", n.info.Installed, n.info.Latest))
	case models.UpdateCurrent:
		return styles.NotificationSuccessStyle.Render(
			fmt.Sprintf("Up to date (%s)", n.info.Installed))
	case models.UpdateFailed:
		msg := "Update check failed"
		if n.info.Err != nil {
			msg = fmt.Sprintf("Update check failed: %v", n.info.Err)
		}
		return styles.NotificationErrorStyle.Render(msg)
	default:
		return ""
	}
}
