package in

import (
	"context"

	settingsin "inkwell/internal/modules/settings/port/in"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Get(ctx context.Context, key string) (string, bool, error) {
	return h.usecase.Get(ctx, key)
}

func (h CLIHandler) Set(ctx context.Context, key, value string) error {
	return h.usecase.Set(ctx, key, value)
}

func (h CLIHandler) All(ctx context.Context) (map[string]string, error) {
	return h.usecase.All(ctx)
}
