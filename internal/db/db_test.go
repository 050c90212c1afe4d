package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tbielski/sessiondeck/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	return database
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	database, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer database.Close()

	if database.Path() != dbPath {
		t.Errorf("Expected path %s, got %s", dbPath, database.Path())
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "test.db")

	database, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database with nested path: %v", err)
	}
	defer database.Close()

	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Error("Nested directories were not created")
	}
}

func TestSchema_TablesExist(t *testing.T) {
	database := newTestDB(t)
	defer database.Close()

	tables := []string{"sessions", "messages", "tool_calls"}

	for _, table := range tables {
		var name string
		err := database.QueryRowContext(context.Background(),
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s does not exist: %v", table, err)
		}
	}
}

func TestUpsertSession(t *testing.T) {
	database := newTestDB(t)
	defer database.Close()

	now := time.Now().UTC().Truncate(time.Second)
	s := &models.Session{
		ID:           "sess-1",
		ProjectPath:  "/Users/alice/proj",
		StartedAt:    now.Add(-time.Hour),
		LastActiveAt: now,
		Tokens:       1200,
		Messages:     8,
		ToolCalls:    3,
	}

	if err := database.UpsertSession(s); err != nil {
		t.Fatalf("UpsertSession failed: %v", err)
	}

	// Update the same session
	s.Tokens = 2400
	if err := database.UpsertSession(s); err != nil {
		t.Fatalf("UpsertSession (update) failed: %v", err)
	}

	sessions, err := database.GetRecentSessions(10)
	if err != nil {
		t.Fatalf("GetRecentSessions failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].Tokens != 2400 {
		t.Errorf("Tokens = %d, want 2400 after upsert", sessions[0].Tokens)
	}
	if sessions[0].ProjectPath != "/Users/alice/proj" {
		t.Errorf("ProjectPath = %s", sessions[0].ProjectPath)
	}
}

func TestMessages_RoundTrip(t *testing.T) {
	database := newTestDB(t)
	defer database.Close()

	m := &models.Message{
		ID:        "msg-1",
		SessionID: "sess-1",
		Role:      models.RoleAssistant,
		Content:   "hello",
		Tokens:    42,
		CreatedAt: time.Now().UTC(),
	}
	if err := database.InsertMessage(m); err != nil {
		t.Fatalf("InsertMessage failed: %v", err)
	}
	// Duplicate is ignored.
	if err := database.InsertMessage(m); err != nil {
		t.Fatalf("InsertMessage duplicate failed: %v", err)
	}

	msgs, err := database.GetMessages("sess-1")
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Role != models.RoleAssistant || msgs[0].Tokens != 42 {
		t.Errorf("message round trip mismatch: %+v", msgs[0])
	}
}

func TestToolCalls_TerminalRecord(t *testing.T) {
	database := newTestDB(t)
	defer database.Close()

	tc := &models.ToolCall{
		ID:        "tc-1",
		SessionID: "sess-1",
		Name:      "bash",
		Terminal: &models.TerminalRecord{
			Command:  "go test ./...",
			Stream:   models.StreamStderr,
			Output:   "FAIL",
			ExitCode: 1,
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := database.InsertToolCall(tc); err != nil {
		t.Fatalf("InsertToolCall failed: %v", err)
	}

	plain := &models.ToolCall{
		ID:        "tc-2",
		SessionID: "sess-1",
		Name:      "read_file",
		Output:    "package main",
		CreatedAt: time.Now().UTC().Add(time.Second),
	}
	if err := database.InsertToolCall(plain); err != nil {
		t.Fatalf("InsertToolCall (plain) failed: %v", err)
	}

	calls, err := database.GetToolCalls("sess-1")
	if err != nil {
		t.Fatalf("GetToolCalls failed: %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("expected 2 tool calls, got %d", len(calls))
	}

	term := calls[0]
	if term.Terminal == nil {
		t.Fatal("first tool call should have a terminal record")
	}
	if term.Terminal.Command != "go test ./..." {
		t.Errorf("Command = %s", term.Terminal.Command)
	}
	if term.Terminal.Stream != models.StreamStderr || term.Terminal.ExitCode != 1 {
		t.Errorf("terminal record mismatch: %+v", term.Terminal)
	}
	if !term.Terminal.IsError() {
		t.Error("stderr exit-1 record should be an error")
	}

	if calls[1].Terminal != nil {
		t.Error("plain tool call should not have a terminal record")
	}
}

func TestGetDailyActivity(t *testing.T) {
	database := newTestDB(t)
	defer database.Close()

	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1)

	seed := []*models.Message{
		{ID: "m1", SessionID: "s1", Role: models.RoleUser, Tokens: 100, CreatedAt: now},
		{ID: "m2", SessionID: "s1", Role: models.RoleAssistant, Tokens: 300, CreatedAt: now},
		{ID: "m3", SessionID: "s2", Role: models.RoleUser, Tokens: 50, CreatedAt: yesterday},
	}
	for _, m := range seed {
		if err := database.InsertMessage(m); err != nil {
			t.Fatalf("InsertMessage failed: %v", err)
		}
	}

	activity, err := database.GetDailyActivity(7)
	if err != nil {
		t.Fatalf("GetDailyActivity failed: %v", err)
	}
	if len(activity) != 7 {
		t.Fatalf("expected 7 days, got %d", len(activity))
	}

	today := activity[6]
	if today.Tokens != 400 {
		t.Errorf("today tokens = %d, want 400", today.Tokens)
	}
	if today.Messages != 2 {
		t.Errorf("today messages = %d, want 2", today.Messages)
	}
	if today.Sessions != 1 {
		t.Errorf("today sessions = %d, want 1", today.Sessions)
	}

	if activity[5].Tokens != 50 {
		t.Errorf("yesterday tokens = %d, want 50", activity[5].Tokens)
	}

	// Idle days are zero-filled, never missing.
	for i := 0; i < 5; i++ {
		if activity[i].Tokens != 0 || activity[i].Messages != 0 {
			t.Errorf("day %d should be zero, got %+v", i, activity[i])
		}
		if activity[i].Date.IsZero() {
			t.Errorf("day %d date should be set", i)
		}
	}
}

func TestGetProjectPaths(t *testing.T) {
	database := newTestDB(t)
	defer database.Close()

	now := time.Now().UTC()
	for i, path := range []string{"/Users/alice/a", "/Users/alice/b", "/Users/alice/a", ""} {
		s := &models.Session{
			ID:           string(rune('a' + i)),
			ProjectPath:  path,
			StartedAt:    now,
			LastActiveAt: now,
		}
		if err := database.UpsertSession(s); err != nil {
			t.Fatalf("UpsertSession failed: %v", err)
		}
	}

	paths, err := database.GetProjectPaths()
	if err != nil {
		t.Fatalf("GetProjectPaths failed: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("expected 2 distinct paths, got %v", paths)
	}
}
