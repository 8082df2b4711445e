package usecase

import (
	"context"
	"fmt"

	"inkwell/internal/modules/books/domain"
	"inkwell/internal/modules/books/dto"
	booksin "inkwell/internal/modules/books/port/in"
	"inkwell/internal/modules/books/service"
	apperrors "inkwell/internal/platform/errors"
)

type Interactor struct {
	svc *service.BookService
}

func NewInteractor(svc *service.BookService) booksin.Usecase {
	return &Interactor{svc: svc}
}

func toBookOutput(b domain.Book) dto.BookOutput {
	return dto.BookOutput{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Genre:       b.Genre,
		Language:    b.Language,
		Status:      string(b.Status),
		PageCount:   b.PageCount,
		CoverURL:    b.CoverURL,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toPageOutput(p domain.Page) dto.PageOutput {
	return dto.PageOutput{
		ID:              p.ID,
		BookID:          p.BookID,
		Index:           p.Index,
		Title:           p.Title,
		Content:         p.Content,
		IllustrationURL: p.IllustrationURL,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (i *Interactor) List(ctx context.Context) (dto.ListOutput, error) {
	books, fromCache, err := i.svc.List(ctx)
	if err != nil {
		return dto.ListOutput{}, err
	}
	out := dto.ListOutput{Books: make([]dto.BookOutput, 0, len(books)), FromCache: fromCache}
	for _, b := range books {
		out.Books = append(out.Books, toBookOutput(b))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, bookID string) (dto.BookDetailOutput, error) {
	if bookID == "" {
		return dto.BookDetailOutput{}, fmt.Errorf("%w: book id is required", apperrors.ErrInvalidInput)
	}
	book, pages, err := i.svc.Get(ctx, bookID)
	if err != nil {
		return dto.BookDetailOutput{}, err
	}
	detail := dto.BookDetailOutput{Book: toBookOutput(book), Pages: make([]dto.PageOutput, 0, len(pages))}
	for _, p := range pages {
		detail.Pages = append(detail.Pages, toPageOutput(p))
	}
	return detail, nil
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.BookOutput, error) {
	if input.Title == "" {
		return dto.BookOutput{}, fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	created, err := i.svc.Create(ctx, domain.Book{
		Title:       input.Title,
		Description: input.Description,
		Genre:       input.Genre,
		Language:    input.Language,
	})
	if err != nil {
		return dto.BookOutput{}, err
	}
	return toBookOutput(created), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.BookOutput, error) {
	if input.BookID == "" {
		return dto.BookOutput{}, fmt.Errorf("%w: book id is required", apperrors.ErrInvalidInput)
	}
	updated, err := i.svc.Update(ctx, domain.Book{
		ID:          input.BookID,
		Title:       input.Title,
		Description: input.Description,
		Genre:       input.Genre,
		Language:    input.Language,
	})
	if err != nil {
		return dto.BookOutput{}, err
	}
	return toBookOutput(updated), nil
}

func (i *Interactor) Delete(ctx context.Context, bookID string) error {
	if bookID == "" {
		return fmt.Errorf("%w: book id is required", apperrors.ErrInvalidInput)
	}
	return i.svc.Delete(ctx, bookID)
}

func (i *Interactor) UpdatePage(ctx context.Context, input dto.UpdatePageInput) (dto.PageOutput, error) {
	if input.BookID == "" || input.PageID == "" {
		return dto.PageOutput{}, fmt.Errorf("%w: book id and page id are required", apperrors.ErrInvalidInput)
	}
	updated, err := i.svc.UpdatePage(ctx, domain.Page{
		ID:      input.PageID,
		BookID:  input.BookID,
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		return dto.PageOutput{}, err
	}
	return toPageOutput(updated), nil
}

func (i *Interactor) ReorderPages(ctx context.Context, input dto.ReorderPagesInput) error {
	if input.BookID == "" || len(input.PageIDs) == 0 {
		return fmt.Errorf("%w: book id and page order are required", apperrors.ErrInvalidInput)
	}
	return i.svc.ReorderPages(ctx, input.BookID, input.PageIDs)
}

func (i *Interactor) Translate(ctx context.Context, input dto.TranslateInput) error {
	if input.BookID == "" || input.Language == "" {
		return fmt.Errorf("%w: book id and language are required", apperrors.ErrInvalidInput)
	}
	return i.svc.Translate(ctx, input.BookID, input.Language)
}

func (i *Interactor) Restyle(ctx context.Context, input dto.RestyleInput) error {
	if input.BookID == "" || input.Style == "" {
		return fmt.Errorf("%w: book id and style are required", apperrors.ErrInvalidInput)
	}
	return i.svc.Restyle(ctx, input.BookID, input.Style)
}

func (i *Interactor) StartGeneration(ctx context.Context, input dto.StartGenerationInput) error {
	if input.BookID == "" {
		return fmt.Errorf("%w: book id is required", apperrors.ErrInvalidInput)
	}
	return i.svc.StartGeneration(ctx, input.BookID, domain.GenerationOptions{
		Illustrations: input.Illustrations,
		Style:         input.Style,
	})
}

func (i *Interactor) Refresh(ctx context.Context, bookID string) (dto.BookOutput, error) {
	if bookID == "" {
		return dto.BookOutput{}, fmt.Errorf("%w: book id is required", apperrors.ErrInvalidInput)
	}
	book, err := i.svc.Refresh(ctx, bookID)
	if err != nil {
		return dto.BookOutput{}, err
	}
	return toBookOutput(book), nil
}
