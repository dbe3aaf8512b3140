package commands

import (
	"errors"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/pkg/guard"
)

var (
	ErrAcknowledgeReleaseCommandIsNotConstructed = errors.New(
		"AcknowledgeReleaseCommand must be created via NewAcknowledgeReleaseCommand constructor",
	)
)

// AcknowledgeReleaseCommand represents the creator confirming the local
// payment arrived and releasing the escrow to the helper.
type AcknowledgeReleaseCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	caller  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcknowledgeReleaseCommand creates a command releasing the escrow on the
// cooperative path.
func NewAcknowledgeReleaseCommand(
	orderID kernel.UUID,
	caller kernel.UUID,
) (AcknowledgeReleaseCommand, error) {
	cmd := AcknowledgeReleaseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCaller(caller),
	); err != nil {
		return AcknowledgeReleaseCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcknowledgeReleaseCommand) Validate() error {
	return c.guard.Validate(ErrAcknowledgeReleaseCommandIsNotConstructed)
}

// OrderID returns the order being released.
func (c AcknowledgeReleaseCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Caller returns the identity acknowledging the payment.
func (c AcknowledgeReleaseCommand) Caller() kernel.UUID {
	return c.caller
}

func (c *AcknowledgeReleaseCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AcknowledgeReleaseCommand) setCaller(caller kernel.UUID) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}
