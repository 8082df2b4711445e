package in

import (
	"context"

	"inkwell/internal/modules/books/dto"
)

type Usecase interface {
	List(ctx context.Context) (dto.ListOutput, error)
	Get(ctx context.Context, bookID string) (dto.BookDetailOutput, error)
	Create(ctx context.Context, input dto.CreateInput) (dto.BookOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.BookOutput, error)
	Delete(ctx context.Context, bookID string) error
	UpdatePage(ctx context.Context, input dto.UpdatePageInput) (dto.PageOutput, error)
	ReorderPages(ctx context.Context, input dto.ReorderPagesInput) error
	Translate(ctx context.Context, input dto.TranslateInput) error
	Restyle(ctx context.Context, input dto.RestyleInput) error
	StartGeneration(ctx context.Context, input dto.StartGenerationInput) error
	Refresh(ctx context.Context, bookID string) (dto.BookOutput, error)
}
