package commands

import (
	"errors"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/core/domain/model/order"
	"peermint/internal/pkg/guard"
)

var (
	ErrMarkPaidCommandIsNotConstructed = errors.New(
		"MarkPaidCommand must be created via NewMarkPaidCommand constructor",
	)
)

// MarkPaidCommand represents a party attesting that the off-ledger local
// payment happened. The receipt hash is optional and never verified.
type MarkPaidCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	caller      kernel.UUID
	receiptHash *order.ReceiptHash

	guard guard.ConstructorGuard
}

// NewMarkPaidCommand creates a command attesting the local payment.
// receiptHash may be nil.
func NewMarkPaidCommand(
	orderID kernel.UUID,
	caller kernel.UUID,
	receiptHash *order.ReceiptHash,
) (MarkPaidCommand, error) {
	cmd := MarkPaidCommand{
		receiptHash: receiptHash,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCaller(caller),
	); err != nil {
		return MarkPaidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkPaidCommandIsNotConstructed)
}

// OrderID returns the order being marked.
func (c MarkPaidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Caller returns the identity attesting the payment.
func (c MarkPaidCommand) Caller() kernel.UUID {
	return c.caller
}

// ReceiptHash returns the optional payment attestation.
func (c MarkPaidCommand) ReceiptHash() *order.ReceiptHash {
	return c.receiptHash
}

func (c *MarkPaidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *MarkPaidCommand) setCaller(caller kernel.UUID) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}
