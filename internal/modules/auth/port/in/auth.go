package in

import (
	"context"

	"inkwell/internal/modules/auth/dto"
)

type Usecase interface {
	Login(ctx context.Context, input dto.LoginInput) (dto.LoginOutput, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (dto.SessionOutput, error)
}
