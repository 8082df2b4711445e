package dto

import "time"

type BalanceOutput struct {
	Credits int
	Plan    string
	// Grants lists recent top-ups, newest first.
	Grants []GrantOutput
}

type GrantOutput struct {
	Amount int
	At     time.Time
}

type AffiliateOutput struct {
	ReferralCode  string
	ReferralURL   string
	Clicks        int
	Signups       int
	EarningsCents int
	PaidOutCents  int
}

type RateLimitOutput struct {
	Limited bool
	ResetAt time.Time
}
