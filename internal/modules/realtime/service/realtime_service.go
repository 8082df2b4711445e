package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	booksin "inkwell/internal/modules/books/port/in"
	"inkwell/internal/modules/realtime/domain"
	realtimeout "inkwell/internal/modules/realtime/port/out"
	"inkwell/internal/platform/notify"
)

const refreshTimeout = 15 * time.Second

// Hooks let the shell react to push traffic without the service knowing
// anything about the UI.
type Hooks struct {
	OnCreditsAdded func(amount int)
	OnProgress     func()
	OnCelebrate    func(bookID string)
}

// RealtimeService owns the channel lifecycle and the progress tracker. One
// channel per credential; a credential switch closes the old one before
// opening the next. The dismiss timer for terminal progress states also
// lives here, keeping the tracker itself clock-free.
type RealtimeService struct {
	factory  realtimeout.ChannelFactory
	books    booksin.Usecase
	notifier notify.Notifier
	logger   *slog.Logger
	hooks    Hooks

	afterFunc func(d time.Duration, fn func()) *time.Timer

	mu      sync.Mutex
	channel realtimeout.Channel
	status  realtimeout.ChannelStatus
	tracker *domain.Tracker
	dismiss *time.Timer
}

func NewRealtimeService(factory realtimeout.ChannelFactory, books booksin.Usecase, notifier notify.Notifier, logger *slog.Logger) *RealtimeService {
	return &RealtimeService{
		factory:   factory,
		books:     books,
		notifier:  notifier,
		logger:    logger,
		afterFunc: time.AfterFunc,
		tracker:   domain.NewTracker(),
		status:    realtimeout.ChannelStatus{State: realtimeout.StateIdle},
	}
}

func (s *RealtimeService) SetHooks(hooks Hooks) {
	s.mu.Lock()
	s.hooks = hooks
	s.mu.Unlock()
}

// SetAfterFunc swaps the timer source, for tests.
func (s *RealtimeService) SetAfterFunc(fn func(d time.Duration, fn func()) *time.Timer) {
	s.afterFunc = fn
}

func (s *RealtimeService) SetCredential(key string) {
	s.mu.Lock()
	old := s.channel
	s.channel = nil
	s.status = realtimeout.ChannelStatus{State: realtimeout.StateIdle}
	s.mu.Unlock()
	if old != nil {
		old.Close()
	}
	if key == "" {
		return
	}

	channel := s.factory.New(key, realtimeout.ChannelHandlers{
		OnFrame:  s.handleFrame,
		OnStatus: s.handleStatus,
	})
	s.mu.Lock()
	s.channel = channel
	s.mu.Unlock()
	channel.Open()
}

func (s *RealtimeService) handleStatus(status realtimeout.ChannelStatus) {
	s.mu.Lock()
	s.status = status
	hook := s.hooks.OnProgress
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
}

func (s *RealtimeService) handleFrame(frame domain.Frame) {
	switch frame.Type {
	case domain.EventCreditsAdded:
		s.notify(notify.LevelSuccess, fmt.Sprintf("%d credits added to your account", frame.Credits.Amount))
		s.mu.Lock()
		hook := s.hooks.OnCreditsAdded
		s.mu.Unlock()
		if hook != nil {
			hook(frame.Credits.Amount)
		}
	case domain.EventAutoGenProgress:
		s.applyProgress(frame.Progress)
	}
}

func (s *RealtimeService) applyProgress(event domain.AutoGenProgress) {
	s.mu.Lock()
	outcome := s.tracker.Apply(event)
	if !outcome.Changed {
		s.mu.Unlock()
		return
	}
	// Any accepted event supersedes a pending dismissal; a fresh job can
	// start right after a terminal state.
	s.stopDismissLocked()
	if outcome.Terminal {
		s.dismiss = s.afterFunc(outcome.DismissAfter, s.dismissNow)
	}
	hooks := s.hooks
	s.mu.Unlock()

	if outcome.Completed {
		go s.refreshBook(event.BookID)
		s.notify(notify.LevelSuccess, "book generation finished")
		if hooks.OnCelebrate != nil {
			hooks.OnCelebrate(event.BookID)
		}
	}
	if hooks.OnProgress != nil {
		hooks.OnProgress()
	}
}

func (s *RealtimeService) dismissNow() {
	s.mu.Lock()
	s.tracker.Dismiss()
	hook := s.hooks.OnProgress
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
}

func (s *RealtimeService) refreshBook(bookID string) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	if _, err := s.books.Refresh(ctx, bookID); err != nil {
		s.logger.Warn("refresh after generation failed", "book_id", bookID, "err", err)
	}
}

func (s *RealtimeService) WatchBook(bookID string) {
	s.mu.Lock()
	s.stopDismissLocked()
	s.tracker.Watch(bookID)
	s.mu.Unlock()
}

func (s *RealtimeService) Unwatch() {
	s.mu.Lock()
	s.stopDismissLocked()
	s.tracker.Unwatch()
	s.mu.Unlock()
}

func (s *RealtimeService) stopDismissLocked() {
	if s.dismiss != nil {
		s.dismiss.Stop()
		s.dismiss = nil
	}
}

func (s *RealtimeService) Progress() (domain.AutoGenProgress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.View()
}

func (s *RealtimeService) Status() realtimeout.ChannelStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *RealtimeService) Shutdown() {
	s.mu.Lock()
	s.stopDismissLocked()
	channel := s.channel
	s.channel = nil
	s.mu.Unlock()
	if channel != nil {
		channel.Close()
	}
}

func (s *RealtimeService) notify(level notify.Level, message string) {
	if s.notifier != nil {
		s.notifier.Notify(notify.Notification{Level: level, Message: message})
	}
}
