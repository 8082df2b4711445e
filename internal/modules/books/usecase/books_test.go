package usecase_test

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/modules/books/domain"
	booksdto "inkwell/internal/modules/books/dto"
	booksin "inkwell/internal/modules/books/port/in"
	"inkwell/internal/modules/books/service"
	"inkwell/internal/modules/books/usecase"
	apperrors "inkwell/internal/platform/errors"
	"inkwell/internal/platform/logging"
)

type fakeGateway struct {
	books   []domain.Book
	pages   map[string][]domain.Page
	listErr error
	deleted []string
	started map[string]domain.GenerationOptions
}

func (f *fakeGateway) ListBooks(context.Context) ([]domain.Book, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.books, nil
}

func (f *fakeGateway) GetBook(_ context.Context, bookID string) (domain.Book, []domain.Page, error) {
	for _, b := range f.books {
		if b.ID == bookID {
			return b, f.pages[bookID], nil
		}
	}
	return domain.Book{}, nil, apperrors.ErrNotFound
}

func (f *fakeGateway) CreateBook(_ context.Context, book domain.Book) (domain.Book, error) {
	book.ID = "bk-new"
	f.books = append(f.books, book)
	return book, nil
}

func (f *fakeGateway) UpdateBook(_ context.Context, book domain.Book) (domain.Book, error) {
	return book, nil
}

func (f *fakeGateway) DeleteBook(_ context.Context, bookID string) error {
	f.deleted = append(f.deleted, bookID)
	return nil
}

func (f *fakeGateway) UpdatePage(_ context.Context, page domain.Page) (domain.Page, error) {
	return page, nil
}

func (f *fakeGateway) ReorderPages(context.Context, string, []string) error { return nil }
func (f *fakeGateway) Translate(context.Context, string, string) error      { return nil }
func (f *fakeGateway) Restyle(context.Context, string, string) error        { return nil }

func (f *fakeGateway) StartAutoGeneration(_ context.Context, bookID string, opts domain.GenerationOptions) error {
	if f.started == nil {
		f.started = map[string]domain.GenerationOptions{}
	}
	f.started[bookID] = opts
	return nil
}

type fakeCache struct {
	books  map[string]domain.Book
	resets int
}

func newFakeCache() *fakeCache { return &fakeCache{books: map[string]domain.Book{}} }

func (f *fakeCache) UpsertBook(_ context.Context, book domain.Book) error {
	f.books[book.ID] = book
	return nil
}

func (f *fakeCache) List(context.Context) ([]domain.Book, error) {
	out := []domain.Book{}
	for _, b := range f.books {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeCache) Delete(_ context.Context, bookID string) error {
	delete(f.books, bookID)
	return nil
}

func (f *fakeCache) Reset(context.Context) error {
	f.books = map[string]domain.Book{}
	f.resets++
	return nil
}

func newBooks(gateway *fakeGateway, cache *fakeCache) booksin.Usecase {
	return usecase.NewInteractor(service.NewBookService(gateway, cache, logging.Discard()))
}

func TestListRefreshesCache(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{books: []domain.Book{{ID: "bk-1", Title: "Tides"}, {ID: "bk-2", Title: "Dunes"}}}
	cache := newFakeCache()
	cache.books["bk-stale"] = domain.Book{ID: "bk-stale", Title: "Gone"}
	uc := newBooks(gateway, cache)

	out, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out.FromCache {
		t.Fatalf("live list should not be marked cached")
	}
	if len(out.Books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(out.Books))
	}
	if _, stale := cache.books["bk-stale"]; stale {
		t.Fatalf("stale cache entry should be gone after refresh")
	}
	if cache.resets != 1 {
		t.Fatalf("cache should be reset once per refresh, got %d", cache.resets)
	}
}

func TestListFallsBackToCacheOnNetworkError(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{listErr: apperrors.ErrNetwork}
	cache := newFakeCache()
	cache.books["bk-1"] = domain.Book{ID: "bk-1", Title: "Tides"}
	uc := newBooks(gateway, cache)

	out, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list should degrade to cache: %v", err)
	}
	if !out.FromCache {
		t.Fatalf("fallback list should be marked cached")
	}
	if len(out.Books) != 1 || out.Books[0].ID != "bk-1" {
		t.Fatalf("unexpected cached books: %+v", out.Books)
	}
}

func TestListDoesNotMaskNonNetworkErrors(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{listErr: apperrors.ErrUnauthorized}
	cache := newFakeCache()
	cache.books["bk-1"] = domain.Book{ID: "bk-1"}
	uc := newBooks(gateway, cache)

	if _, err := uc.List(context.Background()); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("auth errors must not fall back to cache, got %v", err)
	}
}

func TestDeleteEvictsCache(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{}
	cache := newFakeCache()
	cache.books["bk-1"] = domain.Book{ID: "bk-1"}
	uc := newBooks(gateway, cache)

	if err := uc.Delete(context.Background(), "bk-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(gateway.deleted) != 1 || gateway.deleted[0] != "bk-1" {
		t.Fatalf("backend delete should run, got %v", gateway.deleted)
	}
	if _, ok := cache.books["bk-1"]; ok {
		t.Fatalf("deleted book should leave the cache")
	}
}

func TestRefreshUpdatesCachedBook(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{books: []domain.Book{{ID: "bk-1", Title: "Tides", Status: domain.StatusReady, PageCount: 12}}}
	cache := newFakeCache()
	cache.books["bk-1"] = domain.Book{ID: "bk-1", Title: "Tides", Status: domain.StatusGenerating}
	uc := newBooks(gateway, cache)

	out, err := uc.Refresh(context.Background(), "bk-1")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if out.Status != "ready" || out.PageCount != 12 {
		t.Fatalf("refresh should return backend state, got %+v", out)
	}
	if cache.books["bk-1"].Status != domain.StatusReady {
		t.Fatalf("cache should hold refreshed status, got %s", cache.books["bk-1"].Status)
	}
}

func TestStartGenerationValidatesAndForwardsOptions(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{}
	uc := newBooks(gateway, newFakeCache())

	if err := uc.StartGeneration(context.Background(), booksdto.StartGenerationInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("missing book id must fail, got %v", err)
	}
	err := uc.StartGeneration(context.Background(), booksdto.StartGenerationInput{BookID: "bk-1", Illustrations: true, Style: "watercolor"})
	if err != nil {
		t.Fatalf("start generation: %v", err)
	}
	opts := gateway.started["bk-1"]
	if !opts.Illustrations || opts.Style != "watercolor" {
		t.Fatalf("options should reach the gateway, got %+v", opts)
	}
}

func TestCreateRequiresTitle(t *testing.T) {
	t.Parallel()
	uc := newBooks(&fakeGateway{}, newFakeCache())
	if _, err := uc.Create(context.Background(), booksdto.CreateInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("missing title must fail, got %v", err)
	}
	out, err := uc.Create(context.Background(), booksdto.CreateInput{Title: "Tides", Genre: "fiction"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if out.ID == "" {
		t.Fatalf("created book should carry the backend id")
	}
}
