package in

import (
	"context"

	authdto "inkwell/internal/modules/auth/dto"
	authin "inkwell/internal/modules/auth/port/in"
)

type CLIHandler struct {
	usecase authin.Usecase
}

func NewCLIHandler(usecase authin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, key string) (authdto.LoginOutput, error) {
	return h.usecase.Login(ctx, authdto.LoginInput{Key: key})
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) Session(ctx context.Context) (authdto.SessionOutput, error) {
	return h.usecase.Session(ctx)
}
