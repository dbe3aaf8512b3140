package ports

import (
	"context"
	"time"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate. Fails if an order with the same
	// creator and nonce already exists.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllReleasable retrieves orders eligible for auto-release: orders in
	// Joined or PaidLocal status whose expiry deadline has passed.
	// Used by the expiry sweeper.
	GetAllReleasable(ctx context.Context, now time.Time) ([]*order.Order, error)
}
