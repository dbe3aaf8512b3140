package commands

import (
	"errors"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/pkg/guard"
)

var (
	ErrRaiseDisputeCommandIsNotConstructed = errors.New(
		"RaiseDisputeCommand must be created via NewRaiseDisputeCommand constructor",
	)
)

// RaiseDisputeCommand represents a party freezing an order for arbitration.
// The reason travels with the command for logging but is not persisted on the
// order.
type RaiseDisputeCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewRaiseDisputeCommand creates a command freezing an order for arbitration.
// The reason may be empty.
func NewRaiseDisputeCommand(orderID kernel.UUID, reason string) (RaiseDisputeCommand, error) {
	cmd := RaiseDisputeCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RaiseDisputeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RaiseDisputeCommand) Validate() error {
	return c.guard.Validate(ErrRaiseDisputeCommandIsNotConstructed)
}

// OrderID returns the order being disputed.
func (c RaiseDisputeCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the free-text motivation supplied by the disputing party.
func (c RaiseDisputeCommand) Reason() string {
	return c.reason
}

func (c *RaiseDisputeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
