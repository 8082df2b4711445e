package out

import (
	"context"
	"time"

	"inkwell/internal/modules/billing/domain"
	billingout "inkwell/internal/modules/billing/port/out"
	"inkwell/internal/platform/api"
)

type HTTPBillingGateway struct {
	client *api.Client
}

func NewHTTPBillingGateway(client *api.Client) billingout.BillingGateway {
	return &HTTPBillingGateway{client: client}
}

func (g *HTTPBillingGateway) GetBalance(ctx context.Context) (domain.CreditBalance, []domain.Grant, error) {
	payload := struct {
		Credits int    `json:"credits"`
		Plan    string `json:"plan"`
		Grants  []struct {
			Amount int       `json:"amount"`
			At     time.Time `json:"at"`
		} `json:"grants"`
	}{}
	if err := g.client.Get(ctx, "/api/credits", &payload); err != nil {
		return domain.CreditBalance{}, nil, err
	}
	grants := make([]domain.Grant, 0, len(payload.Grants))
	for _, grant := range payload.Grants {
		grants = append(grants, domain.Grant{Amount: grant.Amount, At: grant.At})
	}
	return domain.CreditBalance{Credits: payload.Credits, Plan: payload.Plan}, grants, nil
}

func (g *HTTPBillingGateway) GetAffiliateStats(ctx context.Context) (domain.AffiliateStats, error) {
	payload := struct {
		ReferralCode  string `json:"referral_code"`
		ReferralURL   string `json:"referral_url"`
		Clicks        int    `json:"clicks"`
		Signups       int    `json:"signups"`
		EarningsCents int    `json:"earnings_cents"`
		PaidOutCents  int    `json:"paid_out_cents"`
	}{}
	if err := g.client.Get(ctx, "/api/affiliate", &payload); err != nil {
		return domain.AffiliateStats{}, err
	}
	return domain.AffiliateStats{
		ReferralCode:  payload.ReferralCode,
		ReferralURL:   payload.ReferralURL,
		Clicks:        payload.Clicks,
		Signups:       payload.Signups,
		EarningsCents: payload.EarningsCents,
		PaidOutCents:  payload.PaidOutCents,
	}, nil
}

func (g *HTTPBillingGateway) RequestPayout(ctx context.Context) error {
	return g.client.Post(ctx, "/api/affiliate/payout", map[string]any{}, nil)
}
