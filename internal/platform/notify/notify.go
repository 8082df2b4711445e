package notify

import (
	"fmt"
	"io"
	"sync"
	"time"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level
	Message string
	At      time.Time
}

// Notifier receives user-facing notifications. The HTTP client emits exactly
// one notification per failed request through this interface.
type Notifier interface {
	Notify(n Notification)
}

const (
	storeCapacity   = 50
	channelCapacity = 32
)

// Store is an injectable fan-in buffer of recent notifications. The TUI
// drains Updates; CLI handlers read Recent. A fresh Store per test replaces
// any module-level reset.
type Store struct {
	mu      sync.Mutex
	items   []Notification
	updates chan Notification
}

func NewStore() *Store {
	return &Store{updates: make(chan Notification, channelCapacity)}
}

func (s *Store) Notify(n Notification) {
	if n.At.IsZero() {
		n.At = time.Now().UTC()
	}
	s.mu.Lock()
	s.items = append(s.items, n)
	if len(s.items) > storeCapacity {
		s.items = s.items[len(s.items)-storeCapacity:]
	}
	s.mu.Unlock()

	// Drop on a full channel rather than block the emitter.
	select {
	case s.updates <- n:
	default:
	}
}

// Updates exposes the live feed consumed by the TUI event loop.
func (s *Store) Updates() <-chan Notification {
	return s.updates
}

// Recent returns up to limit notifications, newest last.
func (s *Store) Recent(limit int) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit > len(s.items) {
		limit = len(s.items)
	}
	out := make([]Notification, limit)
	copy(out, s.items[len(s.items)-limit:])
	return out
}

// Writer mirrors notifications onto an io.Writer, for CLI usage where there
// is no status bar.
type Writer struct {
	W io.Writer
}

func (w Writer) Notify(n Notification) {
	_, _ = fmt.Fprintf(w.W, "[%s] %s\n", n.Level, n.Message)
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(n Notification) {
	for _, target := range m {
		target.Notify(n)
	}
}
