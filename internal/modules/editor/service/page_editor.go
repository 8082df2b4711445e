package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	booksdto "inkwell/internal/modules/books/dto"
	booksin "inkwell/internal/modules/books/port/in"
	"inkwell/internal/modules/editor/domain"
	"inkwell/internal/modules/editor/dto"
	"inkwell/internal/platform/debounce"
)

// SaveDelay is the quiet period after the last keystroke before the page
// content goes to the backend.
const SaveDelay = 2 * time.Second

const flushTimeout = 15 * time.Second

// PageEditor owns the undo/redo buffer and the debounced autosave for one
// page at a time. Opening a page replaces all editing state; there is never
// more than one pending save.
type PageEditor struct {
	books  booksin.Usecase
	saver  *debounce.Debouncer
	logger *slog.Logger

	mu      sync.Mutex
	bookID  string
	pageID  string
	title   string
	history *domain.History
	saved   string

	onSaved     func(booksdto.PageOutput)
	onSaveError func(err error)
}

func NewPageEditor(books booksin.Usecase, delay time.Duration, logger *slog.Logger) *PageEditor {
	return &PageEditor{
		books:   books,
		saver:   debounce.New(delay),
		logger:  logger,
		history: domain.NewHistory(""),
	}
}

// SetSaveHooks installs the view callbacks for save results. The error hook
// receives save failures that happen on the debounce timer, where no caller
// is waiting on a return value.
func (e *PageEditor) SetSaveHooks(onSaved func(booksdto.PageOutput), onSaveError func(error)) {
	e.mu.Lock()
	e.onSaved = onSaved
	e.onSaveError = onSaveError
	e.mu.Unlock()
}

func (e *PageEditor) Open(input dto.OpenInput) {
	e.saver.Cancel()
	e.mu.Lock()
	e.bookID = input.BookID
	e.pageID = input.PageID
	e.title = input.Title
	e.history = domain.NewHistory(input.Content)
	e.saved = input.Content
	e.mu.Unlock()
}

func (e *PageEditor) Input(text string) {
	e.mu.Lock()
	e.history.Set(text)
	dirty := e.history.Current() != e.saved
	e.mu.Unlock()
	if dirty {
		e.armSave()
	}
}

func (e *PageEditor) Undo() (string, bool) {
	e.mu.Lock()
	value, ok := e.history.Undo()
	dirty := value != e.saved
	e.mu.Unlock()
	if ok && dirty {
		e.armSave()
	}
	return value, ok
}

func (e *PageEditor) Redo() (string, bool) {
	e.mu.Lock()
	value, ok := e.history.Redo()
	dirty := value != e.saved
	e.mu.Unlock()
	if ok && dirty {
		e.armSave()
	}
	return value, ok
}

func (e *PageEditor) armSave() {
	e.saver.Trigger(func() {
		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		if err := e.Flush(ctx); err != nil {
			e.logger.Warn("autosave failed", "err", err)
			e.mu.Lock()
			hook := e.onSaveError
			e.mu.Unlock()
			if hook != nil {
				hook(err)
			}
		}
	})
}

// Flush saves the current content if it differs from the last committed
// content. A successful save resets the buffer: the committed value is the
// new baseline.
func (e *PageEditor) Flush(ctx context.Context) error {
	e.mu.Lock()
	bookID, pageID, title := e.bookID, e.pageID, e.title
	content := e.history.Current()
	clean := pageID == "" || content == e.saved
	e.mu.Unlock()
	if clean {
		return nil
	}

	page, err := e.books.UpdatePage(ctx, booksdto.UpdatePageInput{
		BookID:  bookID,
		PageID:  pageID,
		Title:   title,
		Content: content,
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	// Only commit if the page did not change under us while saving.
	if e.pageID == pageID {
		e.saved = content
		e.history.Reset(content)
	}
	hook := e.onSaved
	e.mu.Unlock()
	if hook != nil {
		hook(page)
	}
	return nil
}

// Close cancels any pending autosave and makes a final synchronous flush so
// navigating away never loses an edit.
func (e *PageEditor) Close(ctx context.Context) {
	e.saver.Cancel()
	if err := e.Flush(ctx); err != nil {
		e.logger.Warn("final flush failed", "err", err)
	}
}

func (e *PageEditor) State() dto.StateOutput {
	e.mu.Lock()
	defer e.mu.Unlock()
	return dto.StateOutput{
		BookID:      e.bookID,
		PageID:      e.pageID,
		Content:     e.history.Current(),
		CanUndo:     e.history.CanUndo(),
		CanRedo:     e.history.CanRedo(),
		Dirty:       e.history.Current() != e.saved,
		SavePending: e.saver.Pending(),
	}
}
