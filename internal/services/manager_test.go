package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/tbielski/sessiondeck/internal/config"
	"github.com/tbielski/sessiondeck/internal/models"
)

func newTestManager(t *testing.T, updateURL string) *Manager {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		SessionsDir:    filepath.Join(dir, "sessions"),
		DatabasePath:   filepath.Join(dir, "test.db"),
		Locale:         "en",
		UpdateURL:      updateURL,
		UpdateTimeout:  2 * time.Second,
		NoticeDuration: 4 * time.Second,
		CollapseLines:  15,
	}

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestNewManager_EmptyStore(t *testing.T) {
	m := newTestManager(t, "http://127.0.0.1:0")

	sessions, err := m.GetRecentSessions(10)
	if err != nil {
		t.Fatalf("GetRecentSessions failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("expected empty store, got %d sessions", len(sessions))
	}

	week, err := m.GetWeekActivity()
	if err != nil {
		t.Fatalf("GetWeekActivity failed: %v", err)
	}
	if len(week) != 7 {
		t.Errorf("expected 7 zero-filled days, got %d", len(week))
	}
}

func TestManager_SubscribeReceivesEvents(t *testing.T) {
	m := newTestManager(t, "http://127.0.0.1:0")

	ch, _ := m.Subscribe()
	m.broadcast(SessionsChangedEvent{})

	select {
	case ev := <-ch:
		if _, ok := ev.(SessionsChangedEvent); !ok {
			t.Errorf("unexpected event type %T", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive broadcast event")
	}
}

func TestManager_Unsubscribe(t *testing.T) {
	m := newTestManager(t, "http://127.0.0.1:0")

	ch, _ := m.Subscribe()
	m.Unsubscribe(ch)

	// Channel is closed after unsubscribe.
	select {
	case _, open := <-ch:
		if open {
			t.Error("expected closed channel after Unsubscribe")
		}
	case <-time.After(time.Second):
		t.Fatal("channel was not closed")
	}

	// Broadcasting after unsubscribe must not panic.
	m.broadcast(SessionsChangedEvent{})
}

func TestManager_UpdateEventRouting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name": "v99.0.0"}`))
	}))
	defer server.Close()

	m := newTestManager(t, server.URL)
	ch, _ := m.Subscribe()

	info := m.CheckForUpdatesNow(context.Background())
	if info.State != models.UpdateAvailable {
		t.Fatalf("State = %v, want UpdateAvailable", info.State)
	}

	// Checking then available, both routed to the subscriber.
	sawChecking, sawAvailable := false, false
	timeout := time.After(2 * time.Second)
	for !sawAvailable {
		select {
		case ev := <-ch:
			if ue, ok := ev.(UpdateEvent); ok {
				switch ue.Info.State {
				case models.UpdateChecking:
					sawChecking = true
				case models.UpdateAvailable:
					sawAvailable = true
				}
			}
		case <-timeout:
			t.Fatal("timed out waiting for update events")
		}
	}
	if !sawChecking {
		t.Error("expected a checking-state event before the result")
	}
}
