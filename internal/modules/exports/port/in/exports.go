package in

import (
	"context"

	"inkwell/internal/modules/exports/dto"
)

type Usecase interface {
	Request(ctx context.Context, input dto.RequestInput) (dto.ExportOutput, error)
	RequestBulk(ctx context.Context) (dto.ExportOutput, error)
	List(ctx context.Context) ([]dto.ExportOutput, error)
	Download(ctx context.Context, exportID string) (dto.DownloadOutput, error)
	OpenLocal(ctx context.Context, path string) error
}
