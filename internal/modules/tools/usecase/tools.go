package usecase

import (
	"context"

	"inkwell/internal/modules/tools/dto"
	toolsin "inkwell/internal/modules/tools/port/in"
	"inkwell/internal/modules/tools/service"
)

type Interactor struct {
	svc *service.ToolService
}

func NewInteractor(svc *service.ToolService) toolsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.ToolInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) ListCommands(ctx context.Context, toolName string) ([]dto.CommandInfo, error) {
	return i.svc.ListCommands(ctx, toolName)
}

func (i *Interactor) Execute(ctx context.Context, input dto.ExecuteInput) (dto.ExecuteOutput, error) {
	return i.svc.Execute(ctx, input)
}

func (i *Interactor) PostExport(ctx context.Context, input dto.ExecuteInput) (dto.ExecuteOutput, error) {
	return i.svc.PostExport(ctx, input)
}
