package sessions

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tbielski/sessiondeck/internal/logger"
	"github.com/tbielski/sessiondeck/internal/models"
)

// transcriptEntry is one line of a session transcript. Fields are a union over
// the entry types; Type selects which ones are meaningful.
type transcriptEntry struct {
	Type      string `json:"type"` // "message" or "tool_call"
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Tokens    int64  `json:"tokens"`
	Timestamp string `json:"timestamp"`
	Cwd       string `json:"cwd"`

	// tool_call fields
	Name     string `json:"name"`
	Output   string `json:"output"`
	Command  string `json:"command"`
	Stream   string `json:"stream"`
	ExitCode int    `json:"exit_code"`
}

// parsedSession is the result of reading one transcript file.
type parsedSession struct {
	Session   models.Session
	Messages  []models.Message
	ToolCalls []models.ToolCall
}

// parseTranscript reads a JSONL transcript. Malformed lines are skipped, not
// fatal; an unreadable file is an error.
func parseTranscript(path string) (*parsedSession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer func() { _ = f.Close() }()

	sessionID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ps := &parsedSession{Session: models.Session{ID: sessionID}}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry transcriptEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			logger.Debug("skipping malformed transcript line",
				"file", filepath.Base(path), "line", lineNo, "error", err)
			continue
		}

		ts := parseTimestamp(entry.Timestamp)
		if entry.Cwd != "" && ps.Session.ProjectPath == "" {
			ps.Session.ProjectPath = entry.Cwd
		}

		switch entry.Type {
		case "message":
			ps.Messages = append(ps.Messages, models.Message{
				ID:        entryID(entry.ID, sessionID, lineNo),
				SessionID: sessionID,
				Role:      models.MessageRole(entry.Role),
				Content:   entry.Content,
				Tokens:    entry.Tokens,
				CreatedAt: ts,
			})
			ps.Session.Tokens += entry.Tokens
			ps.Session.Messages++

		case "tool_call":
			tc := models.ToolCall{
				ID:        entryID(entry.ID, sessionID, lineNo),
				SessionID: sessionID,
				Name:      entry.Name,
				Output:    entry.Output,
				CreatedAt: ts,
			}
			if entry.Command != "" {
				stream := models.Stream(entry.Stream)
				if stream == "" {
					stream = models.StreamStdout
				}
				tc.Terminal = &models.TerminalRecord{
					Command:   entry.Command,
					Stream:    stream,
					Output:    entry.Output,
					Timestamp: ts,
					ExitCode:  entry.ExitCode,
				}
			}
			ps.ToolCalls = append(ps.ToolCalls, tc)
			ps.Session.ToolCalls++
		}

		if !ts.IsZero() {
			if ps.Session.StartedAt.IsZero() || ts.Before(ps.Session.StartedAt) {
				ps.Session.StartedAt = ts
			}
			if ts.After(ps.Session.LastActiveAt) {
				ps.Session.LastActiveAt = ts
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}

	if ps.Session.StartedAt.IsZero() {
		ps.Session.StartedAt = time.Now()
		ps.Session.LastActiveAt = ps.Session.StartedAt
	}

	return ps, nil
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}

// entryID returns the entry's own ID, or a stable synthetic one for
// transcripts that omit IDs.
func entryID(id, sessionID string, lineNo int) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("%s-%d", sessionID, lineNo)
}
