package notify_test

import (
	"strings"
	"testing"

	"inkwell/internal/platform/notify"
)

func TestStoreKeepsRecentInOrder(t *testing.T) {
	t.Parallel()
	store := notify.NewStore()
	store.Notify(notify.Notification{Level: notify.LevelInfo, Message: "one"})
	store.Notify(notify.Notification{Level: notify.LevelError, Message: "two"})

	recent := store.Recent(10)
	if len(recent) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(recent))
	}
	if recent[0].Message != "one" || recent[1].Message != "two" {
		t.Fatalf("unexpected order: %+v", recent)
	}
	if recent[0].At.IsZero() {
		t.Fatalf("timestamp should be filled in")
	}
}

func TestStoreUpdatesFeed(t *testing.T) {
	t.Parallel()
	store := notify.NewStore()
	store.Notify(notify.Notification{Message: "ping"})
	select {
	case n := <-store.Updates():
		if n.Message != "ping" {
			t.Fatalf("unexpected update: %+v", n)
		}
	default:
		t.Fatalf("update should be buffered")
	}
}

func TestWriterFormatsLevel(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	notify.Writer{W: &sb}.Notify(notify.Notification{Level: notify.LevelWarn, Message: "careful"})
	if got := sb.String(); got != "[warn] careful\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}
