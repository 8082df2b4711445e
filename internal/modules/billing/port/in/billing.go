package in

import (
	"context"

	"inkwell/internal/modules/billing/dto"
)

type Usecase interface {
	Balance(ctx context.Context) (dto.BalanceOutput, error)
	Affiliate(ctx context.Context) (dto.AffiliateOutput, error)
	RequestPayout(ctx context.Context) error
	// ApplyGrant folds a credits_added push event into the cached balance
	// without another round trip.
	ApplyGrant(amount int)
	RateLimit() dto.RateLimitOutput
}
