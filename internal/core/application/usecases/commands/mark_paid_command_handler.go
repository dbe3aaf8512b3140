package commands

import (
	"context"
	"time"
)

// MarkPaidCommandHandler handles the business logic for recording the local
// payment attestation. No custodied value moves here; the order only advances
// to "paid local" so the creator knows to acknowledge.
type MarkPaidCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkPaidCommandHandler creates a handler for mark-paid operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewMarkPaidCommandHandler(uowFactory OrderUoWFactory) MarkPaidCommandHandler {
	return MarkPaidCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the mark-paid command. The aggregate rejects callers that
// are neither creator nor helper and orders not in "joined" status.
func (h *MarkPaidCommandHandler) Handle(ctx context.Context, cmd MarkPaidCommand) error {
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
	paidOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = paidOrder.MarkPaid(cmd.Caller(), cmd.ReceiptHash(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, paidOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
