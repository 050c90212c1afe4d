package models

import "time"

// Session is one recorded agent session. Sessions are ingested from transcript
// files and never mutated by the UI.
type Session struct {
	ID           string
	ProjectPath  string
	StartedAt    time.Time
	LastActiveAt time.Time
	Tokens       int64
	Messages     int
	ToolCalls    int
}

// MessageRole identifies who produced a message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is a single conversational entry within a session.
type Message struct {
	ID        string
	SessionID string
	Role      MessageRole
	Content   string
	Tokens    int64
	CreatedAt time.Time
}

// Stream discriminates captured terminal output.
type Stream string

const (
	StreamStdout Stream = "stdout"
	StreamStderr Stream = "stderr"
)

// TerminalRecord is a captured command execution: the command line, which
// stream the output came from, the captured text, and the exit code.
type TerminalRecord struct {
	Command   string
	Stream    Stream
	Output    string
	Timestamp time.Time
	ExitCode  int
}

// IsError reports whether the record represents a failed command or stderr
// capture.
func (r TerminalRecord) IsError() bool {
	return r.ExitCode != 0 || r.Stream == StreamStderr
}

// ToolCall is one tool execution within a session. Terminal is set for shell
// tools; Output holds the raw text for everything else.
type ToolCall struct {
	ID        string
	SessionID string
	Name      string
	Output    string
	Terminal  *TerminalRecord
	CreatedAt time.Time
}
