package commands

import (
	"errors"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/pkg/guard"
)

var (
	ErrJoinOrderCommandIsNotConstructed = errors.New(
		"JoinOrderCommand must be created via NewJoinOrderCommand constructor",
	)
)

// JoinOrderCommand represents a helper claiming an open order.
type JoinOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	helper  kernel.UUID

	guard guard.ConstructorGuard
}

// NewJoinOrderCommand creates a command for a helper to claim an order.
func NewJoinOrderCommand(orderID kernel.UUID, helper kernel.UUID) (JoinOrderCommand, error) {
	cmd := JoinOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setHelper(helper),
	); err != nil {
		return JoinOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c JoinOrderCommand) Validate() error {
	return c.guard.Validate(ErrJoinOrderCommandIsNotConstructed)
}

// OrderID returns the order being claimed.
func (c JoinOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Helper returns the identity claiming the order.
func (c JoinOrderCommand) Helper() kernel.UUID {
	return c.helper
}

func (c *JoinOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *JoinOrderCommand) setHelper(helper kernel.UUID) error {
	if err := helper.Validate(); err != nil {
		return err
	}
	c.helper = helper
	return nil
}
