package domain

import "time"

const (
	// DismissAfterCompleted keeps the finished state on screen long enough
	// to read before the view clears itself.
	DismissAfterCompleted = 3 * time.Second
	// DismissAfterError gives failure text a little longer.
	DismissAfterError = 5 * time.Second
)

// Outcome is what applying one progress event changed.
type Outcome struct {
	Changed      bool
	Terminal     bool
	Completed    bool
	DismissAfter time.Duration
}

// Tracker reconciles auto-generation progress events against the one book
// the user is looking at. Acceptance keys on book ID alone, so a job
// started on another device reports here just the same. An accepted event
// replaces the entire displayed state: duplicates and out-of-order
// percents resolve to whatever arrived last.
type Tracker struct {
	bookID  string
	visible bool
	view    AutoGenProgress
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Watch sets the book under observation and clears any previous view.
func (t *Tracker) Watch(bookID string) {
	t.bookID = bookID
	t.visible = false
	t.view = AutoGenProgress{}
}

func (t *Tracker) Unwatch() {
	t.Watch("")
}

func (t *Tracker) Watching() string { return t.bookID }

// Apply reconciles one event. Events for other books and unknown phases
// leave the view untouched.
func (t *Tracker) Apply(event AutoGenProgress) Outcome {
	if t.bookID == "" || event.BookID != t.bookID {
		return Outcome{}
	}
	if !event.Phase.Known() {
		return Outcome{}
	}

	t.view = event
	t.visible = true

	outcome := Outcome{Changed: true}
	switch event.Phase {
	case PhaseCompleted:
		outcome.Terminal = true
		outcome.Completed = true
		outcome.DismissAfter = DismissAfterCompleted
	case PhaseError:
		outcome.Terminal = true
		outcome.DismissAfter = DismissAfterError
	}
	return outcome
}

// Dismiss hides the view. The dismissal timer lives with the caller; the
// tracker itself has no clock.
func (t *Tracker) Dismiss() {
	t.visible = false
}

// View returns the current snapshot and whether it should be on screen.
func (t *Tracker) View() (AutoGenProgress, bool) {
	return t.view, t.visible
}
