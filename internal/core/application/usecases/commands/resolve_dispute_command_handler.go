package commands

import (
	"context"

	"peermint/internal/core/domain/model/order"
	"peermint/internal/core/domain/services"
	"peermint/internal/core/ports"
)

// ResolveDisputeCommandHandler handles the arbiter settlement of a disputed
// order. Exactly the principal is paid out; the fee portion locked at
// creation stays in the custody account on every dispute outcome.
type ResolveDisputeCommandHandler struct {
	uowFactory UoWFactory
	calc       services.PayoutCalculator
}

// NewResolveDisputeCommandHandler creates a handler for dispute settlement
// operations. Requires a UoWFactory covering both the order repository and
// the escrow custodian.
func NewResolveDisputeCommandHandler(
	uowFactory UoWFactory,
	calc services.PayoutCalculator,
) ResolveDisputeCommandHandler {
	return ResolveDisputeCommandHandler{
		uowFactory: uowFactory,
		calc:       calc,
	}
}

// Handle processes the settlement command. The aggregate enforces arbiter
// authority and the "disputed" precondition; the handler executes the payout
// the outcome dictates. Zero-value movements are skipped.
func (h *ResolveDisputeCommandHandler) Handle(ctx context.Context, cmd ResolveDisputeCommand) error {
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
	resolvedOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = resolvedOrder.Resolve(cmd.Caller(), cmd.Outcome()); err != nil {
		return err
	}

	if err = h.settle(ctx, uow.EscrowCustodian(), resolvedOrder, cmd.Outcome()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, resolvedOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func (h *ResolveDisputeCommandHandler) settle(
	ctx context.Context,
	custodian ports.EscrowCustodian,
	resolvedOrder *order.Order,
	outcome order.Outcome,
) error {
	proof := resolvedOrder.Authority()
	amount := resolvedOrder.Amount()

	switch outcome.Kind() {
	case order.OutcomeRefundCreator:
		return custodian.Disburse(ctx, proof, resolvedOrder.Creator(), amount)

	case order.OutcomePayHelper:
		return custodian.Disburse(ctx, proof, *resolvedOrder.Helper(), amount)

	case order.OutcomeSplit:
		toHelper, toCreator, err := h.calc.Split(amount, outcome.SplitBps())
		if err != nil {
			return err
		}
		if toHelper > 0 {
			if err = custodian.Disburse(ctx, proof, *resolvedOrder.Helper(), toHelper); err != nil {
				return err
			}
		}
		if toCreator > 0 {
			if err = custodian.Disburse(ctx, proof, resolvedOrder.Creator(), toCreator); err != nil {
				return err
			}
		}
		return nil

	default:
		return order.ErrInvalidOutcome
	}
}
