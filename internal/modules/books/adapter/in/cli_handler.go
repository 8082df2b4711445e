package in

import (
	"context"

	booksdto "inkwell/internal/modules/books/dto"
	booksin "inkwell/internal/modules/books/port/in"
)

type CLIHandler struct {
	usecase booksin.Usecase
}

func NewCLIHandler(usecase booksin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) (booksdto.ListOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, bookID string) (booksdto.BookDetailOutput, error) {
	return h.usecase.Get(ctx, bookID)
}

func (h CLIHandler) Create(ctx context.Context, title, description, genre, language string) (booksdto.BookOutput, error) {
	return h.usecase.Create(ctx, booksdto.CreateInput{Title: title, Description: description, Genre: genre, Language: language})
}

func (h CLIHandler) Update(ctx context.Context, bookID, title, description, genre, language string) (booksdto.BookOutput, error) {
	return h.usecase.Update(ctx, booksdto.UpdateInput{BookID: bookID, Title: title, Description: description, Genre: genre, Language: language})
}

func (h CLIHandler) Delete(ctx context.Context, bookID string) error {
	return h.usecase.Delete(ctx, bookID)
}

func (h CLIHandler) UpdatePage(ctx context.Context, bookID, pageID, title, content string) (booksdto.PageOutput, error) {
	return h.usecase.UpdatePage(ctx, booksdto.UpdatePageInput{BookID: bookID, PageID: pageID, Title: title, Content: content})
}

func (h CLIHandler) ReorderPages(ctx context.Context, bookID string, pageIDs []string) error {
	return h.usecase.ReorderPages(ctx, booksdto.ReorderPagesInput{BookID: bookID, PageIDs: pageIDs})
}

func (h CLIHandler) Translate(ctx context.Context, bookID, language string) error {
	return h.usecase.Translate(ctx, booksdto.TranslateInput{BookID: bookID, Language: language})
}

func (h CLIHandler) Restyle(ctx context.Context, bookID, style string) error {
	return h.usecase.Restyle(ctx, booksdto.RestyleInput{BookID: bookID, Style: style})
}

func (h CLIHandler) StartGeneration(ctx context.Context, bookID string, illustrations bool, style string) error {
	return h.usecase.StartGeneration(ctx, booksdto.StartGenerationInput{BookID: bookID, Illustrations: illustrations, Style: style})
}
