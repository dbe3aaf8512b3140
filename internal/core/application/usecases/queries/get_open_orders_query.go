package queries

import (
	"errors"
	"time"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/pkg/guard"
)

var (
	ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
		"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
	)
)

// GetOpenOrdersQuery retrieves all orders still waiting for a helper.
// Backs the explore page where helpers pick work.
//
// Example:
//
//	query := NewGetOpenOrdersQuery()
//	open, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list open orders: %w", err)
//	}
//	fmt.Printf("%d orders waiting for a helper\n", len(open))
type GetOpenOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery creates a query to retrieve joinable orders.
// This is a parameterless query that fetches every order in "created" status.
func NewGetOpenOrdersQuery() GetOpenOrdersQuery {
	return GetOpenOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// GetOpenOrdersQueryResponse is one joinable order as shown to prospective
// helpers: what they pay locally, what they earn, and how long the order
// stays open.
type GetOpenOrdersQueryResponse struct {
	ID            kernel.UUID
	Creator       kernel.UUID
	Asset         string
	Amount        int64
	LocalAmount   int64
	FeePercentage uint8
	CreatedAt     time.Time
	ExpiryAt      *time.Time
}
