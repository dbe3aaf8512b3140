package commands

import (
	"context"
)

// JoinOrderCommandHandler handles the business logic for claiming an open
// order. The aggregate enforces that only orders in "created" status can be
// joined and that the creator cannot claim its own order.
type JoinOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewJoinOrderCommandHandler creates a handler for join operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewJoinOrderCommandHandler(uowFactory OrderUoWFactory) JoinOrderCommandHandler {
	return JoinOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the join command. Loads the order, records the helper, and
// persists the transition inside a single transaction so two helpers racing
// for the same order cannot both win.
func (h *JoinOrderCommandHandler) Handle(ctx context.Context, cmd JoinOrderCommand) error {
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
	claimedOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = claimedOrder.Join(cmd.Helper()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, claimedOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
