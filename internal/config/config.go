// Package config contains everything related to configuration
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// SessionsDir is the directory holding agent session transcripts (JSONL).
	SessionsDir string
	// DatabasePath is the SQLite cache location.
	DatabasePath string
	// Locale selects the string resource bundle.
	Locale string
	// DarkTheme selects the dark syntax palette.
	DarkTheme bool
	// UpdateCheck enables the startup update check.
	UpdateCheck bool
	// UpdateURL is the endpoint queried for the latest released version.
	UpdateURL string
	// UpdateTimeout bounds a single update check and doubles as the
	// checking-notice failsafe dismissal.
	UpdateTimeout time.Duration
	// NoticeDuration is how long a success notice stays visible.
	NoticeDuration time.Duration
	// CollapseLines is the maximum line count shown for collapsed tool output.
	CollapseLines int
}

// Default values
const (
	defaultUpdateURL      = "https://api.github.com/repos/tbielski/sessiondeck/releases/latest"
	defaultUpdateTimeout  = 10 * time.Second
	defaultNoticeDuration = 4 * time.Second
	defaultCollapseLines  = 15
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		SessionsDir:    getEnvString("SESSIONS_DIR", getDefaultSessionsDir()),
		DatabasePath:   getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		Locale:         getEnvString("LOCALE", "en"),
		DarkTheme:      getEnvBool("DARK_THEME", true),
		UpdateCheck:    getEnvBool("UPDATE_CHECK", true),
		UpdateURL:      getEnvString("UPDATE_URL", defaultUpdateURL),
		UpdateTimeout:  getEnvDuration("UPDATE_TIMEOUT", defaultUpdateTimeout),
		NoticeDuration: getEnvDuration("NOTICE_DURATION", defaultNoticeDuration),
		CollapseLines:  getEnvInt("COLLAPSE_LINES", defaultCollapseLines),
	}

	if cfg.CollapseLines < 1 {
		cfg.CollapseLines = defaultCollapseLines
	}

	// Ensure database directory exists
	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "sessiondeck", ".env"),
			filepath.Join(home, ".sessiondeck", ".env"),
		)
	}

	return paths
}

// getDefaultSessionsDir returns the default transcripts directory.
func getDefaultSessionsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sessions"
	}
	return filepath.Join(home, ".config", "sessiondeck", "sessions")
}

// getDefaultDatabasePath returns the default path for the SQLite cache.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sessiondeck.db"
	}
	return filepath.Join(home, ".config", "sessiondeck", "sessiondeck.db")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
