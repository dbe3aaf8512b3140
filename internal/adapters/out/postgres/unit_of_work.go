// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work spans one lifecycle transition: the order mutation
// and any custody movement run in the same database transaction, and either
// both commit or both roll back.
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db, secret)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.EscrowCustodian().Disburse(ctx, o.Authority(), helper, amount); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance carries its own transaction state; concurrent
// operations must use separate instances.
package postgres

import (
	"context"

	"peermint/internal/adapters/out/postgres/escrowrepo"
	"peermint/internal/adapters/out/postgres/orderrepo"
	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// Kept for implementing patterns like the outbox later.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database
// connections. Every created unit of work shares the database handle and the
// escrow authority secret but carries its own transaction state.
type GormUnitOfWorkFactory struct {
	db           *gorm.DB
	escrowSecret []byte
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. escrowSecret is the service-wide key custody authority tokens
// are derived under.
func NewGormUnitOfWorkFactory(db *gorm.DB, escrowSecret []byte) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:           db,
		escrowSecret: escrowSecret,
	}
}

// Create produces a new UnitOfWork instance ready for one business
// transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		escrowSecret:      f.escrowSecret,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction across the order
// repository and the escrow custodian, and tracks the aggregates modified
// inside it.
type GormUnitOfWork struct {
	db                *gorm.DB
	escrowSecret      []byte
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Calling Begin again on an instance with an active transaction is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns an error if no transaction is active or the commit fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns an error if no transaction is active or the rollback fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns an order repository bound to the current
// transaction if one is active, or to the main connection otherwise.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// EscrowCustodian returns an escrow custodian bound to the current
// transaction if one is active, or to the main connection otherwise.
func (uow *GormUnitOfWork) EscrowCustodian() ports.EscrowCustodian {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return escrowrepo.NewGormEscrowCustodian(db, uow.escrowSecret)
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Called by repository implementations on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
