package usecase

import (
	"context"

	"inkwell/internal/modules/billing/dto"
	billingin "inkwell/internal/modules/billing/port/in"
	"inkwell/internal/modules/billing/service"
)

type Interactor struct {
	svc *service.BillingService
}

func NewInteractor(svc *service.BillingService) billingin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Balance(ctx context.Context) (dto.BalanceOutput, error) {
	balance, grants, err := i.svc.Balance(ctx)
	if err != nil {
		return dto.BalanceOutput{}, err
	}
	out := dto.BalanceOutput{Credits: balance.Credits, Plan: balance.Plan}
	for _, grant := range grants {
		out.Grants = append(out.Grants, dto.GrantOutput{Amount: grant.Amount, At: grant.At})
	}
	return out, nil
}

func (i *Interactor) Affiliate(ctx context.Context) (dto.AffiliateOutput, error) {
	stats, err := i.svc.Affiliate(ctx)
	if err != nil {
		return dto.AffiliateOutput{}, err
	}
	return dto.AffiliateOutput{
		ReferralCode:  stats.ReferralCode,
		ReferralURL:   stats.ReferralURL,
		Clicks:        stats.Clicks,
		Signups:       stats.Signups,
		EarningsCents: stats.EarningsCents,
		PaidOutCents:  stats.PaidOutCents,
	}, nil
}

func (i *Interactor) RequestPayout(ctx context.Context) error {
	return i.svc.RequestPayout(ctx)
}

func (i *Interactor) ApplyGrant(amount int) {
	i.svc.ApplyGrant(amount)
}

func (i *Interactor) RateLimit() dto.RateLimitOutput {
	resetAt, limited := i.svc.RateLimit()
	return dto.RateLimitOutput{Limited: limited, ResetAt: resetAt}
}
