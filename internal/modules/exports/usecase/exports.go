package usecase

import (
	"context"
	"fmt"

	"inkwell/internal/modules/exports/domain"
	"inkwell/internal/modules/exports/dto"
	exportsin "inkwell/internal/modules/exports/port/in"
	"inkwell/internal/modules/exports/service"
	apperrors "inkwell/internal/platform/errors"
)

type Interactor struct {
	svc *service.ExportService
}

func NewInteractor(svc *service.ExportService) exportsin.Usecase {
	return &Interactor{svc: svc}
}

func toOutput(e domain.Export) dto.ExportOutput {
	return dto.ExportOutput{
		ID:        e.ID,
		BookID:    e.BookID,
		BookTitle: e.BookTitle,
		Format:    string(e.Format),
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
		LocalPath: e.LocalPath,
	}
}

func (i *Interactor) Request(ctx context.Context, input dto.RequestInput) (dto.ExportOutput, error) {
	if input.BookID == "" {
		return dto.ExportOutput{}, fmt.Errorf("%w: book id is required", apperrors.ErrInvalidInput)
	}
	format, err := domain.ParseFormat(input.Format)
	if err != nil {
		return dto.ExportOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if format == domain.FormatZip {
		return dto.ExportOutput{}, fmt.Errorf("%w: zip is the bulk export format", apperrors.ErrInvalidInput)
	}
	export, err := i.svc.Request(ctx, input.BookID, format)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return toOutput(export), nil
}

func (i *Interactor) RequestBulk(ctx context.Context) (dto.ExportOutput, error) {
	export, err := i.svc.RequestBulk(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return toOutput(export), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.ExportOutput, error) {
	exports, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExportOutput, 0, len(exports))
	for _, e := range exports {
		out = append(out, toOutput(e))
	}
	return out, nil
}

func (i *Interactor) Download(ctx context.Context, exportID string) (dto.DownloadOutput, error) {
	if exportID == "" {
		return dto.DownloadOutput{}, fmt.Errorf("%w: export id is required", apperrors.ErrInvalidInput)
	}
	path, bytes, pages, err := i.svc.Download(ctx, exportID)
	if err != nil {
		return dto.DownloadOutput{}, err
	}
	return dto.DownloadOutput{Path: path, Bytes: bytes, Pages: pages}, nil
}

func (i *Interactor) OpenLocal(ctx context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("%w: path is required", apperrors.ErrInvalidInput)
	}
	return i.svc.OpenLocal(ctx, path)
}
