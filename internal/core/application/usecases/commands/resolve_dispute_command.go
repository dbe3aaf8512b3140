package commands

import (
	"errors"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/core/domain/model/order"
	"peermint/internal/pkg/guard"
)

var (
	ErrResolveDisputeCommandIsNotConstructed = errors.New(
		"ResolveDisputeCommand must be created via NewResolveDisputeCommand constructor",
	)
)

// ResolveDisputeCommand represents the arbiter settling a disputed order with
// one of the closed set of outcomes.
type ResolveDisputeCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	caller  kernel.UUID
	outcome order.Outcome

	guard guard.ConstructorGuard
}

// NewResolveDisputeCommand creates a command settling a disputed order.
// The outcome must come from one of the order.Outcome constructors.
func NewResolveDisputeCommand(
	orderID kernel.UUID,
	caller kernel.UUID,
	outcome order.Outcome,
) (ResolveDisputeCommand, error) {
	cmd := ResolveDisputeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCaller(caller),
		cmd.setOutcome(outcome),
	); err != nil {
		return ResolveDisputeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveDisputeCommand) Validate() error {
	return c.guard.Validate(ErrResolveDisputeCommandIsNotConstructed)
}

// OrderID returns the order being settled.
func (c ResolveDisputeCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Caller returns the identity claiming arbiter authority.
func (c ResolveDisputeCommand) Caller() kernel.UUID {
	return c.caller
}

// Outcome returns the chosen resolution.
func (c ResolveDisputeCommand) Outcome() order.Outcome {
	return c.outcome
}

func (c *ResolveDisputeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ResolveDisputeCommand) setCaller(caller kernel.UUID) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}

func (c *ResolveDisputeCommand) setOutcome(outcome order.Outcome) error {
	if err := outcome.Validate(); err != nil {
		return err
	}
	c.outcome = outcome
	return nil
}
