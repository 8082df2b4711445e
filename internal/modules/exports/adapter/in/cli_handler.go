package in

import (
	"context"

	exportsdto "inkwell/internal/modules/exports/dto"
	exportsin "inkwell/internal/modules/exports/port/in"
)

type CLIHandler struct {
	usecase exportsin.Usecase
}

func NewCLIHandler(usecase exportsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Request(ctx context.Context, bookID, format string) (exportsdto.ExportOutput, error) {
	return h.usecase.Request(ctx, exportsdto.RequestInput{BookID: bookID, Format: format})
}

func (h CLIHandler) RequestBulk(ctx context.Context) (exportsdto.ExportOutput, error) {
	return h.usecase.RequestBulk(ctx)
}

func (h CLIHandler) List(ctx context.Context) ([]exportsdto.ExportOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Download(ctx context.Context, exportID string) (exportsdto.DownloadOutput, error) {
	return h.usecase.Download(ctx, exportID)
}

func (h CLIHandler) Open(ctx context.Context, path string) error {
	return h.usecase.OpenLocal(ctx, path)
}
