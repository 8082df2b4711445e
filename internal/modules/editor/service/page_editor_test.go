package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	booksdto "inkwell/internal/modules/books/dto"
	"inkwell/internal/modules/editor/dto"
	"inkwell/internal/modules/editor/service"
	"inkwell/internal/platform/logging"
)

type fakeBooks struct {
	mu    sync.Mutex
	saves []booksdto.UpdatePageInput
	err   error
}

func (f *fakeBooks) saved() []booksdto.UpdatePageInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]booksdto.UpdatePageInput, len(f.saves))
	copy(out, f.saves)
	return out
}

func (f *fakeBooks) UpdatePage(_ context.Context, input booksdto.UpdatePageInput) (booksdto.PageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return booksdto.PageOutput{}, f.err
	}
	f.saves = append(f.saves, input)
	return booksdto.PageOutput{ID: input.PageID, BookID: input.BookID, Content: input.Content}, nil
}

func (f *fakeBooks) List(context.Context) (booksdto.ListOutput, error) {
	return booksdto.ListOutput{}, nil
}
func (f *fakeBooks) Get(context.Context, string) (booksdto.BookDetailOutput, error) {
	return booksdto.BookDetailOutput{}, nil
}
func (f *fakeBooks) Create(context.Context, booksdto.CreateInput) (booksdto.BookOutput, error) {
	return booksdto.BookOutput{}, nil
}
func (f *fakeBooks) Update(context.Context, booksdto.UpdateInput) (booksdto.BookOutput, error) {
	return booksdto.BookOutput{}, nil
}
func (f *fakeBooks) Delete(context.Context, string) error                           { return nil }
func (f *fakeBooks) ReorderPages(context.Context, booksdto.ReorderPagesInput) error { return nil }
func (f *fakeBooks) Translate(context.Context, booksdto.TranslateInput) error       { return nil }
func (f *fakeBooks) Restyle(context.Context, booksdto.RestyleInput) error           { return nil }
func (f *fakeBooks) StartGeneration(context.Context, booksdto.StartGenerationInput) error {
	return nil
}
func (f *fakeBooks) Refresh(context.Context, string) (booksdto.BookOutput, error) {
	return booksdto.BookOutput{}, nil
}

func openPage(editor *service.PageEditor, content string) {
	editor.Open(dto.OpenInput{BookID: "bk-1", PageID: "pg-1", Title: "One", Content: content})
}

func TestAutosaveCoalescesBursts(t *testing.T) {
	t.Parallel()
	books := &fakeBooks{}
	editor := service.NewPageEditor(books, 30*time.Millisecond, logging.Discard())
	openPage(editor, "hello")

	editor.Input("hello w")
	editor.Input("hello wo")
	editor.Input("hello world")

	deadline := time.After(time.Second)
	for len(books.saved()) == 0 {
		select {
		case <-deadline:
			t.Fatalf("autosave never fired")
		case <-time.After(5 * time.Millisecond):
		}
	}
	time.Sleep(60 * time.Millisecond)

	saves := books.saved()
	if len(saves) != 1 {
		t.Fatalf("burst should flush once, got %d saves", len(saves))
	}
	if saves[0].Content != "hello world" {
		t.Fatalf("flush should carry the latest content, got %q", saves[0].Content)
	}
	if saves[0].BookID != "bk-1" || saves[0].PageID != "pg-1" {
		t.Fatalf("flush should target the open page, got %+v", saves[0])
	}
}

func TestFlushIsNoOpWhenClean(t *testing.T) {
	t.Parallel()
	books := &fakeBooks{}
	editor := service.NewPageEditor(books, time.Hour, logging.Discard())
	openPage(editor, "hello")

	if err := editor.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if len(books.saved()) != 0 {
		t.Fatalf("clean buffer must not save")
	}
}

func TestSuccessfulSaveResetsHistory(t *testing.T) {
	t.Parallel()
	books := &fakeBooks{}
	editor := service.NewPageEditor(books, time.Hour, logging.Discard())
	openPage(editor, "hello")

	editor.Input("hello world")
	if err := editor.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	state := editor.State()
	if state.Dirty {
		t.Fatalf("saved buffer should be clean")
	}
	if state.CanUndo {
		t.Fatalf("save commits the baseline; undo history resets")
	}
}

func TestUndoRearmsAutosave(t *testing.T) {
	t.Parallel()
	books := &fakeBooks{}
	editor := service.NewPageEditor(books, 30*time.Millisecond, logging.Discard())
	openPage(editor, "hello")

	editor.Input("hello world")
	if err := editor.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}

	editor.Input("hello world again")
	if value, ok := editor.Undo(); !ok || value != "hello world" {
		t.Fatalf("undo: got %q ok=%v", value, ok)
	}

	deadline := time.After(time.Second)
	for {
		saves := books.saved()
		if len(saves) >= 2 {
			if saves[len(saves)-1].Content != "hello world" {
				t.Fatalf("undo should save the reverted content, got %q", saves[len(saves)-1].Content)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("undo never triggered a save, saves: %d", len(saves))
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestOpenDropsPendingSaveForPreviousPage(t *testing.T) {
	t.Parallel()
	books := &fakeBooks{}
	editor := service.NewPageEditor(books, 30*time.Millisecond, logging.Discard())
	openPage(editor, "hello")

	editor.Input("hello edited")
	editor.Open(dto.OpenInput{BookID: "bk-1", PageID: "pg-2", Title: "Two", Content: "other"})

	time.Sleep(80 * time.Millisecond)
	if len(books.saved()) != 0 {
		t.Fatalf("switching pages should cancel the pending save, got %+v", books.saved())
	}
	state := editor.State()
	if state.PageID != "pg-2" || state.Content != "other" {
		t.Fatalf("open should reset editing state, got %+v", state)
	}
}

func TestCloseFlushesDirtyBuffer(t *testing.T) {
	t.Parallel()
	books := &fakeBooks{}
	editor := service.NewPageEditor(books, time.Hour, logging.Discard())
	openPage(editor, "hello")

	editor.Input("hello world")
	editor.Close(context.Background())

	saves := books.saved()
	if len(saves) != 1 || saves[0].Content != "hello world" {
		t.Fatalf("close should flush the dirty buffer, got %+v", saves)
	}
}
