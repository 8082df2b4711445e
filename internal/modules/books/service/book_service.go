package service

import (
	"context"
	"errors"
	"log/slog"

	"inkwell/internal/modules/books/domain"
	booksout "inkwell/internal/modules/books/port/out"
	apperrors "inkwell/internal/platform/errors"
)

// BookService fronts the backend gateway with a local cache. Reads prefer
// the backend and refresh the cache; a network failure on List degrades to
// the cached projection instead of an empty screen.
type BookService struct {
	gateway booksout.BookGateway
	cache   booksout.BookCache
	logger  *slog.Logger
}

func NewBookService(gateway booksout.BookGateway, cache booksout.BookCache, logger *slog.Logger) *BookService {
	return &BookService{gateway: gateway, cache: cache, logger: logger}
}

func (s *BookService) List(ctx context.Context) ([]domain.Book, bool, error) {
	books, err := s.gateway.ListBooks(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNetwork) && s.cache != nil {
			cached, cacheErr := s.cache.List(ctx)
			if cacheErr == nil {
				s.logger.Warn("serving book list from cache", "books", len(cached))
				return cached, true, nil
			}
			s.logger.Warn("cache fallback failed", "err", cacheErr)
		}
		return nil, false, err
	}
	s.refreshCache(ctx, books)
	return books, false, nil
}

func (s *BookService) refreshCache(ctx context.Context, books []domain.Book) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Reset(ctx); err != nil {
		s.logger.Warn("reset book cache", "err", err)
		return
	}
	for _, book := range books {
		if err := s.cache.UpsertBook(ctx, book); err != nil {
			s.logger.Warn("cache book", "book_id", book.ID, "err", err)
		}
	}
}

func (s *BookService) Get(ctx context.Context, bookID string) (domain.Book, []domain.Page, error) {
	book, pages, err := s.gateway.GetBook(ctx, bookID)
	if err != nil {
		return domain.Book{}, nil, err
	}
	s.cacheOne(ctx, book)
	return book, pages, nil
}

// Refresh refetches one book and updates the cache. The realtime module
// calls this when a generation job completes.
func (s *BookService) Refresh(ctx context.Context, bookID string) (domain.Book, error) {
	book, _, err := s.gateway.GetBook(ctx, bookID)
	if err != nil {
		return domain.Book{}, err
	}
	s.cacheOne(ctx, book)
	return book, nil
}

func (s *BookService) cacheOne(ctx context.Context, book domain.Book) {
	if s.cache == nil {
		return
	}
	if err := s.cache.UpsertBook(ctx, book); err != nil {
		s.logger.Warn("cache book", "book_id", book.ID, "err", err)
	}
}

func (s *BookService) Create(ctx context.Context, book domain.Book) (domain.Book, error) {
	created, err := s.gateway.CreateBook(ctx, book)
	if err != nil {
		return domain.Book{}, err
	}
	s.cacheOne(ctx, created)
	return created, nil
}

func (s *BookService) Update(ctx context.Context, book domain.Book) (domain.Book, error) {
	updated, err := s.gateway.UpdateBook(ctx, book)
	if err != nil {
		return domain.Book{}, err
	}
	s.cacheOne(ctx, updated)
	return updated, nil
}

func (s *BookService) UpdatePage(ctx context.Context, page domain.Page) (domain.Page, error) {
	return s.gateway.UpdatePage(ctx, page)
}

func (s *BookService) ReorderPages(ctx context.Context, bookID string, pageIDs []string) error {
	return s.gateway.ReorderPages(ctx, bookID, pageIDs)
}

func (s *BookService) Translate(ctx context.Context, bookID, language string) error {
	return s.gateway.Translate(ctx, bookID, language)
}

func (s *BookService) Restyle(ctx context.Context, bookID, style string) error {
	return s.gateway.Restyle(ctx, bookID, style)
}

func (s *BookService) StartGeneration(ctx context.Context, bookID string, opts domain.GenerationOptions) error {
	return s.gateway.StartAutoGeneration(ctx, bookID, opts)
}

func (s *BookService) Delete(ctx context.Context, bookID string) error {
	if err := s.gateway.DeleteBook(ctx, bookID); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, bookID); err != nil {
			s.logger.Warn("evict cached book", "book_id", bookID, "err", err)
		}
	}
	return nil
}
