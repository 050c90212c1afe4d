package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tbielski/sessiondeck/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

// UpsertSession inserts or replaces a session row.
func (db *DB) UpsertSession(s *models.Session) error {
	query := `
		INSERT INTO sessions (id, project_path, started_at, last_active_at, tokens, messages, tool_calls)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_path = excluded.project_path,
			last_active_at = excluded.last_active_at,
			tokens = excluded.tokens,
			messages = excluded.messages,
			tool_calls = excluded.tool_calls
	`

	_, err := db.ExecContext(context.Background(), query,
		s.ID,
		s.ProjectPath,
		s.StartedAt.UTC().Format(timeLayout),
		s.LastActiveAt.UTC().Format(timeLayout),
		s.Tokens,
		s.Messages,
		s.ToolCalls,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}
	return nil
}

// InsertMessage stores a message, ignoring duplicates.
func (db *DB) InsertMessage(m *models.Message) error {
	query := `
		INSERT OR IGNORE INTO messages (id, session_id, role, content, tokens, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := db.ExecContext(context.Background(), query,
		m.ID, m.SessionID, string(m.Role), m.Content, m.Tokens,
		createdAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// InsertToolCall stores a tool call, ignoring duplicates. Terminal fields are
// flattened into nullable columns.
func (db *DB) InsertToolCall(tc *models.ToolCall) error {
	query := `
		INSERT OR IGNORE INTO tool_calls (id, session_id, name, output, command, stream, exit_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := tc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var command, stream sql.NullString
	var exitCode sql.NullInt64
	output := tc.Output
	if tc.Terminal != nil {
		command = sql.NullString{String: tc.Terminal.Command, Valid: true}
		stream = sql.NullString{String: string(tc.Terminal.Stream), Valid: true}
		exitCode = sql.NullInt64{Int64: int64(tc.Terminal.ExitCode), Valid: true}
		if output == "" {
			output = tc.Terminal.Output
		}
	}

	_, err := db.ExecContext(context.Background(), query,
		tc.ID, tc.SessionID, tc.Name, output, command, stream, exitCode,
		createdAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert tool call: %w", err)
	}
	return nil
}

// GetRecentSessions returns the most recently active sessions.
func (db *DB) GetRecentSessions(limit int) ([]models.Session, error) {
	query := `
		SELECT id, project_path, started_at, last_active_at, tokens, messages, tool_calls
		FROM sessions
		ORDER BY last_active_at DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		var started, lastActive string
		if err := rows.Scan(&s.ID, &s.ProjectPath, &started, &lastActive,
			&s.Tokens, &s.Messages, &s.ToolCalls); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		s.StartedAt, _ = time.Parse(timeLayout, started)
		s.LastActiveAt, _ = time.Parse(timeLayout, lastActive)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// GetMessages returns a session's messages in chronological order.
func (db *DB) GetMessages(sessionID string) ([]models.Message, error) {
	query := `
		SELECT id, session_id, role, content, tokens, created_at
		FROM messages
		WHERE session_id = ?
		ORDER BY created_at ASC
	`

	rows, err := db.QueryContext(context.Background(), query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var msgs []models.Message
	for rows.Next() {
		var m models.Message
		var role, created string
		if err := rows.Scan(&m.ID, &m.SessionID, &role, &m.Content, &m.Tokens, &created); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.Role = models.MessageRole(role)
		m.CreatedAt, _ = time.Parse(timeLayout, created)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// GetToolCalls returns a session's tool calls in chronological order.
func (db *DB) GetToolCalls(sessionID string) ([]models.ToolCall, error) {
	query := `
		SELECT id, session_id, name, output, command, stream, exit_code, created_at
		FROM tool_calls
		WHERE session_id = ?
		ORDER BY created_at ASC
	`

	rows, err := db.QueryContext(context.Background(), query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tool calls: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var calls []models.ToolCall
	for rows.Next() {
		var tc models.ToolCall
		var command, stream sql.NullString
		var exitCode sql.NullInt64
		var created string
		if err := rows.Scan(&tc.ID, &tc.SessionID, &tc.Name, &tc.Output,
			&command, &stream, &exitCode, &created); err != nil {
			return nil, fmt.Errorf("failed to scan tool call: %w", err)
		}
		tc.CreatedAt, _ = time.Parse(timeLayout, created)
		if command.Valid {
			tc.Terminal = &models.TerminalRecord{
				Command:   command.String,
				Stream:    models.Stream(stream.String),
				Output:    tc.Output,
				Timestamp: tc.CreatedAt,
				ExitCode:  int(exitCode.Int64),
			}
		}
		calls = append(calls, tc)
	}
	return calls, rows.Err()
}

// GetDailyActivity aggregates token, message and session counts per calendar
// day for the last N days. Days without any data are filled with zero records
// so the caller always gets exactly `days` entries, oldest first.
func (db *DB) GetDailyActivity(days int) ([]models.DailyActivity, error) {
	if days < 1 {
		days = 1
	}

	query := `
		SELECT date(m.created_at) AS day,
		       COALESCE(SUM(m.tokens), 0),
		       COUNT(m.id),
		       COUNT(DISTINCT m.session_id)
		FROM messages m
		WHERE m.created_at >= date('now', ?)
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := db.QueryContext(context.Background(), query, fmt.Sprintf("-%d days", days-1))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily activity: %w", err)
	}
	defer func() { _ = rows.Close() }()

	byDay := make(map[string]models.DailyActivity)
	for rows.Next() {
		var day string
		var d models.DailyActivity
		if err := rows.Scan(&day, &d.Tokens, &d.Messages, &d.Sessions); err != nil {
			return nil, fmt.Errorf("failed to scan daily activity: %w", err)
		}
		byDay[day] = d
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Fill the full window, zero records for idle days.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	out := make([]models.DailyActivity, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		key := date.Format("2006-01-02")
		d := byDay[key]
		d.Date = date
		out = append(out, d)
	}
	return out, nil
}

// GetDailyTokenTrend returns one token total per day for the last N days, for
// the trend chart.
func (db *DB) GetDailyTokenTrend(days int) ([]float64, error) {
	activity, err := db.GetDailyActivity(days)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(activity))
	for i, d := range activity {
		out[i] = float64(d.Tokens)
	}
	return out, nil
}

// GetProjectPaths returns the distinct project paths seen across sessions.
func (db *DB) GetProjectPaths() ([]string, error) {
	rows, err := db.QueryContext(context.Background(),
		`SELECT DISTINCT project_path FROM sessions WHERE project_path != '' ORDER BY project_path`)
	if err != nil {
		return nil, fmt.Errorf("failed to query project paths: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan project path: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
