package service

import (
	"context"
	"sync"
	"time"

	"inkwell/internal/modules/billing/domain"
	billingout "inkwell/internal/modules/billing/port/out"
)

// BillingService caches the last fetched balance so credits_added push
// events can update the display without a round trip.
type BillingService struct {
	gateway billingout.BillingGateway
	limits  billingout.RateLimitSource

	mu      sync.Mutex
	balance domain.CreditBalance
	grants  []domain.Grant
	fetched bool
}

func NewBillingService(gateway billingout.BillingGateway, limits billingout.RateLimitSource) *BillingService {
	return &BillingService{gateway: gateway, limits: limits}
}

func (s *BillingService) Balance(ctx context.Context) (domain.CreditBalance, []domain.Grant, error) {
	balance, grants, err := s.gateway.GetBalance(ctx)
	if err != nil {
		return domain.CreditBalance{}, nil, err
	}
	s.mu.Lock()
	s.balance = balance
	s.grants = grants
	s.fetched = true
	s.mu.Unlock()
	return balance, grants, nil
}

// ApplyGrant adds a pushed grant to the cached balance. Before the first
// fetch there is nothing to add to; the next Balance call picks it up
// anyway.
func (s *BillingService) ApplyGrant(amount int) {
	s.mu.Lock()
	if s.fetched {
		s.balance.Credits += amount
	}
	s.mu.Unlock()
}

func (s *BillingService) Cached() (domain.CreditBalance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance, s.fetched
}

func (s *BillingService) Affiliate(ctx context.Context) (domain.AffiliateStats, error) {
	return s.gateway.GetAffiliateStats(ctx)
}

func (s *BillingService) RequestPayout(ctx context.Context) error {
	return s.gateway.RequestPayout(ctx)
}

func (s *BillingService) RateLimit() (time.Time, bool) {
	if s.limits == nil {
		return time.Time{}, false
	}
	return s.limits.ResetAt()
}
