package escrowrepo

import (
	"context"
	"crypto/hmac"
	"errors"
	"time"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/core/domain/model/order"
	"peermint/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
)

var (
	// ErrInsufficientEscrow indicates a disbursal larger than the account
	// balance. Under correct lifecycle accounting this cannot happen; seeing
	// it means the order record and the custody account have diverged.
	ErrInsufficientEscrow = errors.New("insufficient escrow balance")

	// ErrAuthorityMismatch indicates a proof that does not re-derive to the
	// token the account was opened under.
	ErrAuthorityMismatch = errors.New("escrow authority mismatch")

	// ErrEscrowAccountExists indicates a second Lock for the same order.
	ErrEscrowAccountExists = errors.New("escrow account already exists")
)

// GormEscrowCustodian implements the EscrowCustodian port on postgres.
// The authority token is a keyed BLAKE2b hash of the order identifier and its
// salt under a service-wide secret, so an account can only be moved by code
// holding both the secret and the order record.
type GormEscrowCustodian struct {
	db     *gorm.DB
	secret []byte
}

// NewGormEscrowCustodian creates a custodian bound to the given database
// handle and authority secret.
func NewGormEscrowCustodian(db *gorm.DB, secret []byte) *GormEscrowCustodian {
	return &GormEscrowCustodian{
		db:     db,
		secret: secret,
	}
}

// Lock opens the custody account for an order and locks amount into it.
// Fails with ErrEscrowAccountExists if the order already has an account.
func (c *GormEscrowCustodian) Lock(
	ctx context.Context,
	proof order.AuthorityProof,
	asset string,
	amount int64,
) error {
	if amount <= 0 {
		return order.ErrInvalidAmount
	}

	token, err := c.deriveToken(proof)
	if err != nil {
		return err
	}

	account := EscrowAccountDTO{
		OrderID:        proof.OrderID().Bytes(),
		Asset:          asset,
		Balance:        amount,
		AuthorityToken: token,
		CreatedAt:      time.Now().UTC(),
	}
	if err = c.db.WithContext(ctx).Create(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEscrowAccountExists
		}
		return err
	}

	return c.appendMovement(ctx, proof.OrderID(), nil, amount, movementLock, amount)
}

// Disburse moves amount out of the order's custody account to the recipient.
// The balance check and the decrement happen in one guarded UPDATE, so
// concurrent disbursals cannot overdraw the account.
func (c *GormEscrowCustodian) Disburse(
	ctx context.Context,
	proof order.AuthorityProof,
	recipient kernel.UUID,
	amount int64,
) error {
	if amount <= 0 {
		return order.ErrInvalidAmount
	}
	if err := recipient.Validate(); err != nil {
		return err
	}

	var account EscrowAccountDTO
	err := c.db.WithContext(ctx).First(&account, "order_id = ?", proof.OrderID().Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("escrow account", proof.OrderID().String())
	}
	if err != nil {
		return err
	}

	token, err := c.deriveToken(proof)
	if err != nil {
		return err
	}
	if !hmac.Equal(token, account.AuthorityToken) {
		return ErrAuthorityMismatch
	}

	result := c.db.WithContext(ctx).
		Model(&EscrowAccountDTO{}).
		Where("order_id = ? AND balance >= ?", proof.OrderID().Bytes(), amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientEscrow
	}

	// Re-read inside the same transaction so the ledger row carries the
	// balance the decrement actually produced.
	var balanceAfter int64
	err = c.db.WithContext(ctx).
		Model(&EscrowAccountDTO{}).
		Where("order_id = ?", proof.OrderID().Bytes()).
		Pluck("balance", &balanceAfter).Error
	if err != nil {
		return err
	}

	recipientID := recipient.Bytes()
	return c.appendMovement(ctx, proof.OrderID(), &recipientID, amount, movementDisburse, balanceAfter)
}

// Balance reports the value currently held for an order.
func (c *GormEscrowCustodian) Balance(ctx context.Context, orderID kernel.UUID) (int64, error) {
	var account EscrowAccountDTO
	err := c.db.WithContext(ctx).First(&account, "order_id = ?", orderID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, errs.NewObjectNotFoundError("escrow account", orderID.String())
	}
	if err != nil {
		return 0, err
	}

	return account.Balance, nil
}

func (c *GormEscrowCustodian) appendMovement(
	ctx context.Context,
	orderID kernel.UUID,
	recipient *uuid.UUID,
	amount int64,
	direction string,
	balanceAfter int64,
) error {
	movement := MovementDTO{
		ID:           uuid.New(),
		OrderID:      orderID.Bytes(),
		RecipientID:  recipient,
		Amount:       amount,
		Direction:    direction,
		BalanceAfter: balanceAfter,
		CreatedAt:    time.Now().UTC(),
	}
	return c.db.WithContext(ctx).Create(&movement).Error
}

// deriveToken computes the authority token for a proof: a keyed BLAKE2b-256
// hash over the order identifier and its salt.
func (c *GormEscrowCustodian) deriveToken(proof order.AuthorityProof) ([]byte, error) {
	h, err := blake2b.New256(c.secret)
	if err != nil {
		return nil, err
	}

	id := proof.OrderID().Bytes()
	h.Write(id[:])
	h.Write([]byte{proof.Salt()})
	return h.Sum(nil), nil
}
