package commands

import (
	"context"
)

// RaiseDisputeCommandHandler handles freezing an order for arbitration.
// No custodied value moves; the order stops progressing until the arbiter
// resolves it.
type RaiseDisputeCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRaiseDisputeCommandHandler creates a handler for dispute operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewRaiseDisputeCommandHandler(uowFactory OrderUoWFactory) RaiseDisputeCommandHandler {
	return RaiseDisputeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the dispute command. The aggregate rejects orders that are
// already disputed or terminal.
func (h *RaiseDisputeCommandHandler) Handle(ctx context.Context, cmd RaiseDisputeCommand) error {
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
	disputedOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = disputedOrder.Dispute(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, disputedOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
