package in

import (
	"context"

	"inkwell/internal/modules/tools/dto"
	toolsin "inkwell/internal/modules/tools/port/in"
)

type CLIHandler struct {
	usecase toolsin.Usecase
}

func NewCLIHandler(usecase toolsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.ToolInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) ListCommands(ctx context.Context, toolName string) ([]dto.CommandInfo, error) {
	return h.usecase.ListCommands(ctx, toolName)
}

func (h CLIHandler) Execute(ctx context.Context, input dto.ExecuteInput) (dto.ExecuteOutput, error) {
	return h.usecase.Execute(ctx, input)
}

func (h CLIHandler) PostExport(ctx context.Context, input dto.ExecuteInput) (dto.ExecuteOutput, error) {
	return h.usecase.PostExport(ctx, input)
}
