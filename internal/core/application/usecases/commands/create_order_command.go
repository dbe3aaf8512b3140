package commands

import (
	"errors"
	"time"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/core/domain/model/order"
	"peermint/internal/pkg/errs"
	"peermint/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to open a new escrow order.
// Carries everything the creator commits to: principal, local-currency value,
// fee incentive, expiry deadline, and the opaque QR payment instruction.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), creator, "USDC",
//	    1_000_000, 8_350_000, time.Now().Add(24*time.Hour), 5, 1, qrPayload)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	creator       kernel.UUID
	asset         string
	amount        int64
	localAmount   int64
	expiryAt      time.Time
	feePercentage uint8
	nonce         uint64
	qrPayload     string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to open a new escrow order.
// Validates the same invariants the aggregate enforces, so a malformed
// request is rejected before a transaction is started. expiryAt may be zero
// to disable auto-release.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	creator kernel.UUID,
	asset string,
	amount int64,
	localAmount int64,
	expiryAt time.Time,
	feePercentage uint8,
	nonce uint64,
	qrPayload string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		expiryAt: expiryAt,
		nonce:    nonce,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCreator(creator),
		cmd.setAsset(asset),
		cmd.setAmount(amount),
		cmd.setLocalAmount(localAmount),
		cmd.setFeePercentage(feePercentage),
		cmd.setQRPayload(qrPayload),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Creator returns the identity locking the principal.
func (c CreateOrderCommand) Creator() kernel.UUID {
	return c.creator
}

// Asset returns the custodied asset code.
func (c CreateOrderCommand) Asset() string {
	return c.asset
}

// Amount returns the principal in smallest asset denomination.
func (c CreateOrderCommand) Amount() int64 {
	return c.amount
}

// LocalAmount returns the local-currency value in minor units.
func (c CreateOrderCommand) LocalAmount() int64 {
	return c.localAmount
}

// ExpiryAt returns the auto-release deadline, zero if disabled.
func (c CreateOrderCommand) ExpiryAt() time.Time {
	return c.expiryAt
}

// FeePercentage returns the helper incentive percent.
func (c CreateOrderCommand) FeePercentage() uint8 {
	return c.feePercentage
}

// Nonce returns the creator-chosen salt disambiguating concurrent orders.
func (c CreateOrderCommand) Nonce() uint64 {
	return c.nonce
}

// QRPayload returns the opaque off-ledger payment instruction.
func (c CreateOrderCommand) QRPayload() string {
	return c.qrPayload
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCreator(creator kernel.UUID) error {
	if err := creator.Validate(); err != nil {
		return err
	}
	c.creator = creator
	return nil
}

func (c *CreateOrderCommand) setAsset(asset string) error {
	if asset == "" {
		return errs.NewValueIsRequiredError("asset")
	}
	c.asset = asset
	return nil
}

func (c *CreateOrderCommand) setAmount(amount int64) error {
	if amount <= 0 {
		return order.ErrInvalidAmount
	}
	c.amount = amount
	return nil
}

func (c *CreateOrderCommand) setLocalAmount(localAmount int64) error {
	if localAmount <= 0 {
		return order.ErrInvalidAmount
	}
	c.localAmount = localAmount
	return nil
}

func (c *CreateOrderCommand) setFeePercentage(feePercentage uint8) error {
	if feePercentage > 100 {
		return order.ErrInvalidFee
	}
	c.feePercentage = feePercentage
	return nil
}

func (c *CreateOrderCommand) setQRPayload(qrPayload string) error {
	if len(qrPayload) > 500 {
		return order.ErrQRTooLong
	}
	c.qrPayload = qrPayload
	return nil
}
