package out

import (
	"context"

	"inkwell/internal/modules/books/domain"
)

// BookGateway is the backend surface for books and pages.
type BookGateway interface {
	ListBooks(ctx context.Context) ([]domain.Book, error)
	GetBook(ctx context.Context, bookID string) (domain.Book, []domain.Page, error)
	CreateBook(ctx context.Context, book domain.Book) (domain.Book, error)
	UpdateBook(ctx context.Context, book domain.Book) (domain.Book, error)
	DeleteBook(ctx context.Context, bookID string) error
	UpdatePage(ctx context.Context, page domain.Page) (domain.Page, error)
	ReorderPages(ctx context.Context, bookID string, pageIDs []string) error
	Translate(ctx context.Context, bookID, language string) error
	Restyle(ctx context.Context, bookID, style string) error
	StartAutoGeneration(ctx context.Context, bookID string, opts domain.GenerationOptions) error
}

// BookCache is the local projection of the book list. It serves reads when
// the backend is unreachable and keeps TUI startup instant.
type BookCache interface {
	UpsertBook(ctx context.Context, book domain.Book) error
	List(ctx context.Context) ([]domain.Book, error)
	Delete(ctx context.Context, bookID string) error
	Reset(ctx context.Context) error
}
