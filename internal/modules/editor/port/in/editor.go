package in

import (
	"context"

	"inkwell/internal/modules/editor/dto"
)

type Usecase interface {
	Open(input dto.OpenInput)
	Input(text string)
	Undo() (string, bool)
	Redo() (string, bool)
	Flush(ctx context.Context) error
	Close(ctx context.Context)
	State() dto.StateOutput
}
