package domain_test

import (
	"testing"
	"time"

	"inkwell/internal/modules/realtime/domain"
)

func progress(bookID string, phase domain.Phase, percent float64) domain.AutoGenProgress {
	return domain.AutoGenProgress{BookID: bookID, Phase: phase, Percent: percent}
}

func TestApplyReplacesWholeState(t *testing.T) {
	t.Parallel()
	tracker := domain.NewTracker()
	tracker.Watch("bk-1")

	first := progress("bk-1", domain.PhaseGeneratingPage, 40)
	first.Message = "page 4 of 10"
	if outcome := tracker.Apply(first); !outcome.Changed || outcome.Terminal {
		t.Fatalf("non-terminal event should change and stay open: %+v", outcome)
	}

	second := progress("bk-1", domain.PhaseGeneratingPage, 70)
	if outcome := tracker.Apply(second); !outcome.Changed {
		t.Fatalf("second event should apply")
	}

	view, visible := tracker.View()
	if !visible {
		t.Fatalf("view should be on screen")
	}
	if view.Percent != 70 {
		t.Fatalf("later event wins, got percent %.0f", view.Percent)
	}
	if view.Message != "" {
		t.Fatalf("state is replaced, not merged; stale message survived: %q", view.Message)
	}
}

func TestApplyIgnoresOtherBooks(t *testing.T) {
	t.Parallel()
	tracker := domain.NewTracker()
	tracker.Watch("bk-1")

	if outcome := tracker.Apply(progress("bk-2", domain.PhaseGeneratingPage, 50)); outcome.Changed {
		t.Fatalf("event for another book must not change the view")
	}
	if _, visible := tracker.View(); visible {
		t.Fatalf("nothing should be visible")
	}
}

func TestApplyIgnoresUnknownPhase(t *testing.T) {
	t.Parallel()
	tracker := domain.NewTracker()
	tracker.Watch("bk-1")
	if outcome := tracker.Apply(progress("bk-1", domain.Phase("warming_up"), 10)); outcome.Changed {
		t.Fatalf("unknown phase must be dropped")
	}
}

func TestApplyWithoutWatchIsNoOp(t *testing.T) {
	t.Parallel()
	tracker := domain.NewTracker()
	if outcome := tracker.Apply(progress("bk-1", domain.PhaseStarted, 0)); outcome.Changed {
		t.Fatalf("no book under observation, nothing to change")
	}
}

func TestCompletedOutcome(t *testing.T) {
	t.Parallel()
	tracker := domain.NewTracker()
	tracker.Watch("bk-1")

	outcome := tracker.Apply(progress("bk-1", domain.PhaseCompleted, 100))
	if !outcome.Changed || !outcome.Terminal || !outcome.Completed {
		t.Fatalf("completed should be terminal and flagged: %+v", outcome)
	}
	if outcome.DismissAfter != 3*time.Second {
		t.Fatalf("completed dismisses after 3s, got %s", outcome.DismissAfter)
	}
	if _, visible := tracker.View(); !visible {
		t.Fatalf("terminal state is visible until dismissed")
	}

	tracker.Dismiss()
	if _, visible := tracker.View(); visible {
		t.Fatalf("dismiss should hide the view")
	}
}

func TestErrorOutcomeKeepsVerbatimText(t *testing.T) {
	t.Parallel()
	tracker := domain.NewTracker()
	tracker.Watch("bk-1")

	event := progress("bk-1", domain.PhaseError, 62)
	event.Error = "model backend timed out on page 7"
	outcome := tracker.Apply(event)
	if !outcome.Terminal || outcome.Completed {
		t.Fatalf("error is terminal but not completed: %+v", outcome)
	}
	if outcome.DismissAfter != 5*time.Second {
		t.Fatalf("error dismisses after 5s, got %s", outcome.DismissAfter)
	}
	view, _ := tracker.View()
	if view.Error != "model backend timed out on page 7" {
		t.Fatalf("error text must pass through verbatim, got %q", view.Error)
	}
}

func TestDuplicateTerminalEventsAreIdempotent(t *testing.T) {
	t.Parallel()
	tracker := domain.NewTracker()
	tracker.Watch("bk-1")

	done := progress("bk-1", domain.PhaseCompleted, 100)
	first := tracker.Apply(done)
	second := tracker.Apply(done)
	if first != second {
		t.Fatalf("duplicate delivery should produce the same outcome: %+v vs %+v", first, second)
	}
	view, visible := tracker.View()
	if !visible || view.Percent != 100 {
		t.Fatalf("state unchanged by duplicate, got %+v visible=%v", view, visible)
	}
}

func TestWatchResetsPreviousView(t *testing.T) {
	t.Parallel()
	tracker := domain.NewTracker()
	tracker.Watch("bk-1")
	tracker.Apply(progress("bk-1", domain.PhaseGeneratingPage, 30))

	tracker.Watch("bk-2")
	if _, visible := tracker.View(); visible {
		t.Fatalf("watching a new book clears the old view")
	}
	if outcome := tracker.Apply(progress("bk-1", domain.PhaseGeneratingPage, 60)); outcome.Changed {
		t.Fatalf("old book's events no longer apply")
	}
}
