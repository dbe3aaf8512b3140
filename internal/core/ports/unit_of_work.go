package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per business operation,
// keeping concurrent operations isolated from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents one business transaction boundary. Every lifecycle
// transition runs inside a single unit of work so that the status write and
// the custody movement commit or roll back together.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns an error if no transaction is active or the rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// EscrowCustodian returns an EscrowCustodian bound to the current
	// transaction.
	EscrowCustodian() EscrowCustodian
}
