package in

import (
	"context"

	billingdto "inkwell/internal/modules/billing/dto"
	billingin "inkwell/internal/modules/billing/port/in"
)

type CLIHandler struct {
	usecase billingin.Usecase
}

func NewCLIHandler(usecase billingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Balance(ctx context.Context) (billingdto.BalanceOutput, error) {
	return h.usecase.Balance(ctx)
}

func (h CLIHandler) Affiliate(ctx context.Context) (billingdto.AffiliateOutput, error) {
	return h.usecase.Affiliate(ctx)
}

func (h CLIHandler) RequestPayout(ctx context.Context) error {
	return h.usecase.RequestPayout(ctx)
}
