package commands

import (
	"context"
	"crypto/rand"
	"time"

	"peermint/internal/core/domain/model/order"
	"peermint/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for opening an escrow
// order. Creates the order in "created" status and locks principal plus fee
// with the escrow custodian in the same transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, calc)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now open and ready for a helper to join
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	calc       services.PayoutCalculator
}

// NewCreateOrderCommandHandler creates a handler for order creation
// operations. Requires a UoWFactory covering both the order repository and
// the escrow custodian.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	calc services.PayoutCalculator,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		calc:       calc,
	}
}

// Handle processes the order creation command.
// Computes the total escrow up front so an overflowing amount is rejected
// before anything is written, then persists the order and locks the custody
// balance atomically.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	total, err := h.calc.TotalEscrow(cmd.Amount(), cmd.FeePercentage())
	if err != nil {
		return err
	}

	salt, err := newAuthoritySalt()
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Creator(),
		cmd.Asset(),
		cmd.Amount(),
		cmd.LocalAmount(),
		cmd.ExpiryAt(),
		cmd.FeePercentage(),
		cmd.Nonce(),
		salt,
		cmd.QRPayload(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.EscrowCustodian().Lock(ctx, newOrder.Authority(), newOrder.Asset(), total); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// newAuthoritySalt draws the per-order salt mixed into the custody authority
// derivation.
func newAuthoritySalt() (uint8, error) {
	var b [1]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}
