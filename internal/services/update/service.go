// Package update checks for newer released versions of the monitored agent CLI.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tbielski/sessiondeck/internal/logger"
	"github.com/tbielski/sessiondeck/internal/models"
)

// EventType defines the type of update event.
type EventType int

const (
	EventCheckStarted EventType = iota
	EventCheckCompleted
	EventCheckFailed
)

// Event represents an update service event.
type Event struct {
	Type  EventType
	Info  models.UpdateInfo
	Error error
}

// Config holds the update checker configuration.
type Config struct {
	// URL is the release endpoint returning {"tag_name": "vX.Y.Z"}.
	URL string
	// Timeout bounds a single check.
	Timeout time.Duration
	// Installed is the currently installed version.
	Installed string
}

// Service performs update checks on demand.
type Service struct {
	cfg       Config
	client    *http.Client
	eventChan chan Event
}

// New creates an update service.
func New(cfg Config) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Service{
		cfg:       cfg,
		client:    &http.Client{Timeout: cfg.Timeout},
		eventChan: make(chan Event, 10),
	}
}

// Events returns the event channel for subscribing to check results.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// releaseResponse is the subset of the release API payload we need.
type releaseResponse struct {
	TagName string `json:"tag_name"`
}

// Check fetches the latest released version and compares it to the installed
// one. The returned info always carries a terminal state; errors are also
// reported through the event channel.
func (s *Service) Check(ctx context.Context) models.UpdateInfo {
	s.sendEvent(Event{Type: EventCheckStarted, Info: models.UpdateInfo{
		State:     models.UpdateChecking,
		Installed: s.cfg.Installed,
	}})

	info := models.UpdateInfo{
		Installed: s.cfg.Installed,
		CheckedAt: time.Now(),
	}

	latest, err := s.fetchLatest(ctx)
	if err != nil {
		info.State = models.UpdateFailed
		info.Err = err
		logger.Warn("update check failed", "error", err)
		s.sendEvent(Event{Type: EventCheckFailed, Info: info, Error: err})
		return info
	}

	info.Latest = latest
	if CompareVersions(latest, s.cfg.Installed) > 0 {
		info.State = models.UpdateAvailable
	} else {
		info.State = models.UpdateCurrent
	}

	s.sendEvent(Event{Type: EventCheckCompleted, Info: info})
	return info
}

func (s *Service) fetchLatest(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release endpoint returned %d", resp.StatusCode)
	}

	var release releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to decode release response: %w", err)
	}
	if release.TagName == "" {
		return "", fmt.Errorf("release response missing tag_name")
	}

	return strings.TrimPrefix(release.TagName, "v"), nil
}

func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
	}
}

// versionRe matches a "version": "..." entry in a package manifest.
var versionRe = regexp.MustCompile(`"version"\s*:\s*"([^"]+)"`)

// InstalledFromManifest extracts the installed version from a local package
// manifest. Returns "" when the file is missing or carries no version, which
// callers treat as "always behind".
func InstalledFromManifest(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	if match := versionRe.FindSubmatch(content); len(match) > 1 {
		return string(match[1])
	}
	return ""
}

// CompareVersions compares two dotted version strings numerically. Returns
// >0 when a is newer, <0 when b is newer, 0 when equal. Non-numeric segments
// compare as zero.
func CompareVersions(a, b string) int {
	as := strings.Split(strings.TrimPrefix(a, "v"), ".")
	bs := strings.Split(strings.TrimPrefix(b, "v"), ".")

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}

	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(as) {
			av, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bv, _ = strconv.Atoi(bs[i])
		}
		if av != bv {
			return av - bv
		}
	}
	return 0
}
