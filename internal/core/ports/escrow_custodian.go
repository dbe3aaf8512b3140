package ports

import (
	"context"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/core/domain/model/order"
)

// EscrowCustodian holds locked value under an authority tied one-to-one to an
// order. Every mutating instruction carries the order's AuthorityProof; the
// custodian re-derives its capability token from the proof and refuses
// instructions that do not match the account it opened.
//
// Implementations must be transactional with the order mutation they
// accompany: custody and status either both change or neither does.
type EscrowCustodian interface {
	// Lock opens the custody account for an order and locks amount into it.
	// Called exactly once per order, at creation, with amount + fee.
	Lock(ctx context.Context, proof order.AuthorityProof, asset string, amount int64) error

	// Disburse moves amount out of the order's custody account to the
	// recipient. Fails if the proof does not match or the account holds less
	// than amount.
	Disburse(ctx context.Context, proof order.AuthorityProof, recipient kernel.UUID, amount int64) error

	// Balance reports the value currently held for an order.
	Balance(ctx context.Context, orderID kernel.UUID) (int64, error)
}
