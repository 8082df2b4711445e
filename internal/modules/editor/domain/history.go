package domain

// maxDepth bounds the snapshot list so a long editing session cannot grow
// memory without limit. Oldest snapshots fall off first.
const maxDepth = 100

// History is a linear undo/redo buffer over full text snapshots. A cursor
// points at the current snapshot; Set discards everything after the cursor
// before appending, so redo is only available immediately after undo.
type History struct {
	snapshots []string
	cursor    int
}

func NewHistory(initial string) *History {
	return &History{snapshots: []string{initial}}
}

func (h *History) Current() string {
	return h.snapshots[h.cursor]
}

// Set records a new snapshot. Equal values are a no-op so key repeats and
// cursor moves do not pollute the buffer.
func (h *History) Set(value string) {
	if value == h.Current() {
		return
	}
	h.snapshots = append(h.snapshots[:h.cursor+1], value)
	h.cursor++
	if len(h.snapshots) > maxDepth {
		drop := len(h.snapshots) - maxDepth
		h.snapshots = h.snapshots[drop:]
		h.cursor -= drop
	}
}

func (h *History) CanUndo() bool { return h.cursor > 0 }

func (h *History) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }

// Undo steps back one snapshot. At the oldest snapshot it reports false
// and keeps the value.
func (h *History) Undo() (string, bool) {
	if !h.CanUndo() {
		return h.Current(), false
	}
	h.cursor--
	return h.Current(), true
}

// Redo steps forward one snapshot. Past the newest snapshot it reports
// false and keeps the value.
func (h *History) Redo() (string, bool) {
	if !h.CanRedo() {
		return h.Current(), false
	}
	h.cursor++
	return h.Current(), true
}

// Reset discards all history and starts over at value. Used when the
// committed content changes from outside the buffer: navigation to another
// page or a successful save.
func (h *History) Reset(value string) {
	h.snapshots = []string{value}
	h.cursor = 0
}
