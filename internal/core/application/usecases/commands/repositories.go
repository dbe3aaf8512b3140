// Package commands contains the business operations that mutate order state.
// Each lifecycle transition is one command with one handler; handlers run the
// status validation, the aggregate mutation, and any custody instruction
// inside a single unit of work, so a failed transition leaves the record and
// the custody balance exactly as they were.
package commands

import (
	"context"

	"peermint/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers.
type (
	// TxManager handles the database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// EscrowFactory provides access to the escrow custodian within a
	// transaction.
	EscrowFactory interface {
		EscrowCustodian() ports.EscrowCustodian
	}

	// OrderUoW manages transactions for operations that only mutate the
	// order record (join, mark-paid, raise-dispute).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order-only unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions for operations that move custodied value
	// alongside the order mutation (create, release, resolve).
	UoW interface {
		TxManager
		OrderRepoFactory
		EscrowFactory
	}

	// UoWFactory creates unit of work instances covering orders and custody.
	UoWFactory interface {
		Create() UoW
	}
)
