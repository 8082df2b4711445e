package domain_test

import (
	"fmt"
	"testing"

	"inkwell/internal/modules/editor/domain"
)

func TestSetUndoRedoLinearSequence(t *testing.T) {
	t.Parallel()
	h := domain.NewHistory("a")
	h.Set("ab")
	h.Set("abc")

	if v, ok := h.Undo(); !ok || v != "ab" {
		t.Fatalf("first undo: got %q ok=%v", v, ok)
	}
	if v, ok := h.Undo(); !ok || v != "a" {
		t.Fatalf("second undo: got %q ok=%v", v, ok)
	}
	if v, ok := h.Redo(); !ok || v != "ab" {
		t.Fatalf("redo: got %q ok=%v", v, ok)
	}
	if v, ok := h.Redo(); !ok || v != "abc" {
		t.Fatalf("second redo: got %q ok=%v", v, ok)
	}
}

func TestUndoRedoAtBoundsAreNoOps(t *testing.T) {
	t.Parallel()
	h := domain.NewHistory("a")
	if v, ok := h.Undo(); ok || v != "a" {
		t.Fatalf("undo at oldest should be a no-op, got %q ok=%v", v, ok)
	}
	if v, ok := h.Redo(); ok || v != "a" {
		t.Fatalf("redo at newest should be a no-op, got %q ok=%v", v, ok)
	}
	if h.CanUndo() || h.CanRedo() {
		t.Fatalf("fresh buffer should have no undo/redo")
	}
}

func TestSetTruncatesRedoTail(t *testing.T) {
	t.Parallel()
	h := domain.NewHistory("a")
	h.Set("ab")
	h.Set("abc")
	if _, ok := h.Undo(); !ok {
		t.Fatalf("undo should succeed")
	}
	h.Set("abX")

	if h.CanRedo() {
		t.Fatalf("a set after undo must drop the redo tail")
	}
	if v, ok := h.Undo(); !ok || v != "ab" {
		t.Fatalf("undo after branch: got %q ok=%v", v, ok)
	}
	if v, ok := h.Redo(); !ok || v != "abX" {
		t.Fatalf("redo should land on the new branch, got %q ok=%v", v, ok)
	}
}

func TestSetEqualValueIsNoOp(t *testing.T) {
	t.Parallel()
	h := domain.NewHistory("a")
	h.Set("ab")
	h.Set("ab")
	if v, ok := h.Undo(); !ok || v != "a" {
		t.Fatalf("duplicate set should not add a snapshot, got %q ok=%v", v, ok)
	}
	if h.CanUndo() {
		t.Fatalf("only one real edit happened")
	}
}

func TestResetDiscardsHistory(t *testing.T) {
	t.Parallel()
	h := domain.NewHistory("a")
	h.Set("ab")
	h.Set("abc")
	h.Reset("fresh")

	if h.Current() != "fresh" {
		t.Fatalf("reset should install the new value, got %q", h.Current())
	}
	if h.CanUndo() || h.CanRedo() {
		t.Fatalf("reset must leave no undo or redo")
	}
}

func TestDepthIsBounded(t *testing.T) {
	t.Parallel()
	h := domain.NewHistory("v0")
	for i := 1; i <= 300; i++ {
		h.Set(fmt.Sprintf("v%d", i))
	}
	if h.Current() != "v300" {
		t.Fatalf("newest snapshot must survive, got %q", h.Current())
	}
	undos := 0
	for {
		if _, ok := h.Undo(); !ok {
			break
		}
		undos++
	}
	if undos >= 300 {
		t.Fatalf("history must be bounded, got %d undos", undos)
	}
	if undos == 0 {
		t.Fatalf("bounded history should still allow undo")
	}
}
