package service

import (
	"context"
	"fmt"

	"inkwell/internal/modules/auth/domain"
	authout "inkwell/internal/modules/auth/port/out"
	"inkwell/internal/platform/clock"
	apperrors "inkwell/internal/platform/errors"
)

type AuthService struct {
	clock   clock.Clock
	gateway authout.AccountGateway
}

func NewAuthService(clock clock.Clock, gateway authout.AccountGateway) *AuthService {
	return &AuthService{clock: clock, gateway: gateway}
}

// Verify checks the candidate key against the backend and returns the
// credential to store alongside the account it resolved to.
func (s *AuthService) Verify(ctx context.Context, rawKey string) (domain.Credential, domain.Account, error) {
	key := domain.NormalizeKey(rawKey)
	if key == "" {
		return domain.Credential{}, domain.Account{}, fmt.Errorf("%w: license key is required", apperrors.ErrInvalidInput)
	}
	account, err := s.gateway.Verify(ctx, key)
	if err != nil {
		return domain.Credential{}, domain.Account{}, err
	}
	return domain.Credential{Key: key, SavedAt: s.clock.Now()}, account, nil
}
