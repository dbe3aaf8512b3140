package commands

import (
	"context"
	"time"

	"peermint/internal/core/domain/services"
)

// AutoReleaseCommandHandler handles the expiry-driven release of an escrow.
// The payout is identical to the cooperative release: principal plus fee to
// the helper. The aggregate enforces that the deadline has actually passed,
// so the handler can be invoked speculatively by the sweeper.
type AutoReleaseCommandHandler struct {
	uowFactory UoWFactory
	calc       services.PayoutCalculator
}

// NewAutoReleaseCommandHandler creates a handler for expiry release
// operations. Requires a UoWFactory covering both the order repository and
// the escrow custodian.
func NewAutoReleaseCommandHandler(
	uowFactory UoWFactory,
	calc services.PayoutCalculator,
) AutoReleaseCommandHandler {
	return AutoReleaseCommandHandler{
		uowFactory: uowFactory,
		calc:       calc,
	}
}

// Handle processes the auto-release command. The expiry check runs against
// the freshly loaded order inside the transaction, so a concurrent release or
// dispute makes this a no-op failure rather than a double payout.
func (h *AutoReleaseCommandHandler) Handle(ctx context.Context, cmd AutoReleaseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	expiredOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = expiredOrder.AutoRelease(time.Now().UTC()); err != nil {
		return err
	}

	fee, err := h.calc.Fee(expiredOrder.Amount(), expiredOrder.FeePercentage())
	if err != nil {
		return err
	}

	custodian := uow.EscrowCustodian()
	helper := *expiredOrder.Helper()

	if err = custodian.Disburse(ctx, expiredOrder.Authority(), helper, expiredOrder.Amount()); err != nil {
		return err
	}
	if fee > 0 {
		if err = custodian.Disburse(ctx, expiredOrder.Authority(), helper, fee); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, expiredOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
