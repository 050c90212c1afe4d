// Package sessions ingests session transcripts with file watching.
package sessions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tbielski/sessiondeck/internal/db"
	"github.com/tbielski/sessiondeck/internal/logger"
)

// EventType defines the type of session event.
type EventType int

const (
	EventSessionsLoaded EventType = iota
	EventSessionsChanged
	EventError
)

// Event represents a session service event.
type Event struct {
	Type  EventType
	Error error
}

// Service scans a transcript directory into the store and watches it for
// changes. Transcripts are read-only inputs; the store is the only thing the
// service writes.
type Service struct {
	mu            sync.RWMutex
	dir           string
	store         *db.DB
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
}

// New creates a sessions service, performs the initial scan and starts the
// directory watcher.
func New(dir string, store *db.DB) (*Service, error) {
	s := &Service{
		dir:       dir,
		store:     store,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	if err := s.Scan(); err != nil {
		return nil, fmt.Errorf("initial scan failed: %w", err)
	}

	if err := s.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}

	s.sendEvent(Event{Type: EventSessionsLoaded})

	return s, nil
}

// Events returns the event channel for subscribing to session changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Dir returns the watched transcript directory.
func (s *Service) Dir() string {
	return s.dir
}

// Scan ingests every transcript in the directory. Individual bad files are
// logged and skipped.
func (s *Service) Scan() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read sessions directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		if err := s.ingestFile(filepath.Join(s.dir, entry.Name())); err != nil {
			logger.Warn("failed to ingest transcript", "file", entry.Name(), "error", err)
		}
	}
	return nil
}

// ingestFile parses one transcript and upserts its records into the store.
func (s *Service) ingestFile(path string) error {
	parsed, err := parseTranscript(path)
	if err != nil {
		return err
	}

	if err := s.store.UpsertSession(&parsed.Session); err != nil {
		return err
	}
	for i := range parsed.Messages {
		if err := s.store.InsertMessage(&parsed.Messages[i]); err != nil {
			return err
		}
	}
	for i := range parsed.ToolCalls {
		if err := s.store.InsertToolCall(&parsed.ToolCalls[i]); err != nil {
			return err
		}
	}
	return nil
}

// startWatcher starts the file system watcher.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	if err := watcher.Add(s.dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	const debounceInterval = 200 * time.Millisecond

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if !strings.HasSuffix(event.Name, ".jsonl") {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				// Debounce rapid transcript appends
				s.mu.Lock()
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(debounceInterval, s.handleChange)
				s.mu.Unlock()
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// handleChange rescans the directory after transcripts changed on disk.
func (s *Service) handleChange() {
	if err := s.Scan(); err != nil {
		s.sendEvent(Event{Type: EventError, Error: err})
		return
	}
	s.sendEvent(Event{Type: EventSessionsChanged})
}

func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		logger.Warn("session event channel full, dropping event", "type", event.Type)
	}
}

// Close stops the watcher and event loop.
func (s *Service) Close() error {
	close(s.stopChan)
	s.mu.Lock()
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.mu.Unlock()
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
