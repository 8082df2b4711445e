package out

import (
	"context"
	"time"

	"inkwell/internal/modules/billing/domain"
)

type BillingGateway interface {
	GetBalance(ctx context.Context) (domain.CreditBalance, []domain.Grant, error)
	GetAffiliateStats(ctx context.Context) (domain.AffiliateStats, error)
	RequestPayout(ctx context.Context) error
}

// RateLimitSource reads the reset time the HTTP client records on 429s.
type RateLimitSource interface {
	ResetAt() (time.Time, bool)
}
