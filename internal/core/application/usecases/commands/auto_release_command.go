package commands

import (
	"errors"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/pkg/guard"
)

var (
	ErrAutoReleaseCommandIsNotConstructed = errors.New(
		"AutoReleaseCommand must be created via NewAutoReleaseCommand constructor",
	)
)

// AutoReleaseCommand represents an expiry-driven release of an escrow.
// No caller identity is carried: once the deadline has passed, anyone may
// trigger the payout to the helper.
type AutoReleaseCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAutoReleaseCommand creates a command releasing an expired order.
func NewAutoReleaseCommand(orderID kernel.UUID) (AutoReleaseCommand, error) {
	cmd := AutoReleaseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AutoReleaseCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoReleaseCommand) Validate() error {
	return c.guard.Validate(ErrAutoReleaseCommandIsNotConstructed)
}

// OrderID returns the order being released.
func (c AutoReleaseCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *AutoReleaseCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
