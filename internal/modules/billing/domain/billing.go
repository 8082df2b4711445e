package domain

import "time"

type CreditBalance struct {
	Credits int
	Plan    string
}

// Grant is one credit top-up, either from a purchase or an affiliate
// payout, as reported by the backend or a push event.
type Grant struct {
	Amount int
	At     time.Time
}

type AffiliateStats struct {
	ReferralCode  string
	ReferralURL   string
	Clicks        int
	Signups       int
	EarningsCents int
	PaidOutCents  int
}
