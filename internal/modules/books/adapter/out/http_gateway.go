package out

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/modules/books/domain"
	booksout "inkwell/internal/modules/books/port/out"
	"inkwell/internal/platform/api"
)

type HTTPBookGateway struct {
	client *api.Client
}

func NewHTTPBookGateway(client *api.Client) booksout.BookGateway {
	return &HTTPBookGateway{client: client}
}

type bookPayload struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genre       string    `json:"genre"`
	Language    string    `json:"language"`
	Status      string    `json:"status"`
	PageCount   int       `json:"page_count"`
	CoverURL    string    `json:"cover_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type pagePayload struct {
	ID              string    `json:"id"`
	BookID          string    `json:"book_id"`
	Index           int       `json:"index"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	IllustrationURL string    `json:"illustration_url"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (p bookPayload) toDomain() domain.Book {
	return domain.Book{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Genre:       p.Genre,
		Language:    p.Language,
		Status:      domain.Status(p.Status),
		PageCount:   p.PageCount,
		CoverURL:    p.CoverURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (p pagePayload) toDomain() domain.Page {
	return domain.Page{
		ID:              p.ID,
		BookID:          p.BookID,
		Index:           p.Index,
		Title:           p.Title,
		Content:         p.Content,
		IllustrationURL: p.IllustrationURL,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (g *HTTPBookGateway) ListBooks(ctx context.Context) ([]domain.Book, error) {
	payload := struct {
		Books []bookPayload `json:"books"`
	}{}
	if err := g.client.Get(ctx, "/api/books", &payload); err != nil {
		return nil, err
	}
	books := make([]domain.Book, 0, len(payload.Books))
	for _, b := range payload.Books {
		books = append(books, b.toDomain())
	}
	return books, nil
}

func (g *HTTPBookGateway) GetBook(ctx context.Context, bookID string) (domain.Book, []domain.Page, error) {
	payload := struct {
		bookPayload
		Pages []pagePayload `json:"pages"`
	}{}
	if err := g.client.Get(ctx, "/api/books/"+bookID, &payload); err != nil {
		return domain.Book{}, nil, err
	}
	pages := make([]domain.Page, 0, len(payload.Pages))
	for _, p := range payload.Pages {
		pages = append(pages, p.toDomain())
	}
	return payload.bookPayload.toDomain(), pages, nil
}

func (g *HTTPBookGateway) CreateBook(ctx context.Context, book domain.Book) (domain.Book, error) {
	body := map[string]string{
		"title":       book.Title,
		"description": book.Description,
		"genre":       book.Genre,
		"language":    book.Language,
	}
	created := bookPayload{}
	if err := g.client.Post(ctx, "/api/books", body, &created); err != nil {
		return domain.Book{}, err
	}
	return created.toDomain(), nil
}

func (g *HTTPBookGateway) UpdateBook(ctx context.Context, book domain.Book) (domain.Book, error) {
	body := map[string]string{
		"title":       book.Title,
		"description": book.Description,
		"genre":       book.Genre,
		"language":    book.Language,
	}
	updated := bookPayload{}
	if err := g.client.Put(ctx, "/api/books/"+book.ID, body, &updated); err != nil {
		return domain.Book{}, err
	}
	return updated.toDomain(), nil
}

func (g *HTTPBookGateway) DeleteBook(ctx context.Context, bookID string) error {
	return g.client.Delete(ctx, "/api/books/"+bookID)
}

func (g *HTTPBookGateway) UpdatePage(ctx context.Context, page domain.Page) (domain.Page, error) {
	body := map[string]string{
		"title":   page.Title,
		"content": page.Content,
	}
	updated := pagePayload{}
	path := fmt.Sprintf("/api/books/%s/pages/%s", page.BookID, page.ID)
	if err := g.client.Put(ctx, path, body, &updated); err != nil {
		return domain.Page{}, err
	}
	return updated.toDomain(), nil
}

func (g *HTTPBookGateway) ReorderPages(ctx context.Context, bookID string, pageIDs []string) error {
	body := map[string]any{"page_ids": pageIDs}
	return g.client.Post(ctx, "/api/books/"+bookID+"/reorder", body, nil)
}

func (g *HTTPBookGateway) Translate(ctx context.Context, bookID, language string) error {
	body := map[string]string{"language": language}
	return g.client.Post(ctx, "/api/books/"+bookID+"/translate", body, nil)
}

func (g *HTTPBookGateway) Restyle(ctx context.Context, bookID, style string) error {
	body := map[string]string{"style": style}
	return g.client.Post(ctx, "/api/books/"+bookID+"/restyle", body, nil)
}

func (g *HTTPBookGateway) StartAutoGeneration(ctx context.Context, bookID string, opts domain.GenerationOptions) error {
	body := map[string]any{
		"with_illustrations": opts.Illustrations,
		"style":              opts.Style,
	}
	return g.client.Post(ctx, "/api/books/"+bookID+"/auto-generate", body, nil)
}
