package in

import (
	"context"

	"inkwell/internal/modules/tools/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.ToolInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	ListCommands(ctx context.Context, toolName string) ([]dto.CommandInfo, error)
	Execute(ctx context.Context, input dto.ExecuteInput) (dto.ExecuteOutput, error)
	PostExport(ctx context.Context, input dto.ExecuteInput) (dto.ExecuteOutput, error)
}
