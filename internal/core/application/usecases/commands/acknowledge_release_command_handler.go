package commands

import (
	"context"
	"time"

	"peermint/internal/core/domain/services"
)

// AcknowledgeReleaseCommandHandler handles the cooperative release of an
// escrow. The creator confirms the local payment arrived; the handler pays
// the helper the principal and then the fee, and advances the order to
// "released", all inside one transaction.
type AcknowledgeReleaseCommandHandler struct {
	uowFactory UoWFactory
	calc       services.PayoutCalculator
}

// NewAcknowledgeReleaseCommandHandler creates a handler for cooperative
// release operations. Requires a UoWFactory covering both the order
// repository and the escrow custodian.
func NewAcknowledgeReleaseCommandHandler(
	uowFactory UoWFactory,
	calc services.PayoutCalculator,
) AcknowledgeReleaseCommandHandler {
	return AcknowledgeReleaseCommandHandler{
		uowFactory: uowFactory,
		calc:       calc,
	}
}

// Handle processes the release command. Principal and fee are paid to the
// helper as two custody movements, matching how they were locked as one sum
// at creation.
func (h *AcknowledgeReleaseCommandHandler) Handle(ctx context.Context, cmd AcknowledgeReleaseCommand) error {
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
	releasedOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = releasedOrder.Acknowledge(cmd.Caller(), time.Now().UTC()); err != nil {
		return err
	}

	fee, err := h.calc.Fee(releasedOrder.Amount(), releasedOrder.FeePercentage())
	if err != nil {
		return err
	}

	custodian := uow.EscrowCustodian()
	helper := *releasedOrder.Helper()

	if err = custodian.Disburse(ctx, releasedOrder.Authority(), helper, releasedOrder.Amount()); err != nil {
		return err
	}
	if fee > 0 {
		if err = custodian.Disburse(ctx, releasedOrder.Authority(), helper, fee); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, releasedOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
