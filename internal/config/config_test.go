package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("DATABASE_PATH", filepath.Join(tmp, "test.db"))
	t.Setenv("SESSIONS_DIR", tmp)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Locale != "en" {
		t.Errorf("Locale = %s, want en", cfg.Locale)
	}
	if !cfg.DarkTheme {
		t.Error("DarkTheme should default to true")
	}
	if cfg.NoticeDuration != defaultNoticeDuration {
		t.Errorf("NoticeDuration = %v, want %v", cfg.NoticeDuration, defaultNoticeDuration)
	}
	if cfg.UpdateTimeout != defaultUpdateTimeout {
		t.Errorf("UpdateTimeout = %v, want %v", cfg.UpdateTimeout, defaultUpdateTimeout)
	}
	if cfg.CollapseLines != defaultCollapseLines {
		t.Errorf("CollapseLines = %d, want %d", cfg.CollapseLines, defaultCollapseLines)
	}
}

func TestLoad_Overrides(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("DATABASE_PATH", filepath.Join(tmp, "test.db"))
	t.Setenv("SESSIONS_DIR", tmp)
	t.Setenv("LOCALE", "de")
	t.Setenv("DARK_THEME", "false")
	t.Setenv("NOTICE_DURATION", "2s")
	t.Setenv("UPDATE_TIMEOUT", "5")
	t.Setenv("COLLAPSE_LINES", "20")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Locale != "de" {
		t.Errorf("Locale = %s, want de", cfg.Locale)
	}
	if cfg.DarkTheme {
		t.Error("DarkTheme should be false")
	}
	if cfg.NoticeDuration != 2*time.Second {
		t.Errorf("NoticeDuration = %v, want 2s", cfg.NoticeDuration)
	}
	// Bare numbers parse as seconds.
	if cfg.UpdateTimeout != 5*time.Second {
		t.Errorf("UpdateTimeout = %v, want 5s", cfg.UpdateTimeout)
	}
	if cfg.CollapseLines != 20 {
		t.Errorf("CollapseLines = %d, want 20", cfg.CollapseLines)
	}
}

func TestLoad_InvalidCollapseLines(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("DATABASE_PATH", filepath.Join(tmp, "test.db"))
	t.Setenv("SESSIONS_DIR", tmp)
	t.Setenv("COLLAPSE_LINES", "-3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CollapseLines != defaultCollapseLines {
		t.Errorf("CollapseLines = %d, want default %d", cfg.CollapseLines, defaultCollapseLines)
	}
}
