package queries

import (
	"errors"
	"time"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/core/domain/model/order"
	"peermint/internal/pkg/guard"
)

var (
	ErrGetCreatorOrdersQueryIsNotConstructed = errors.New(
		"GetCreatorOrdersQuery must be created via NewGetCreatorOrdersQuery constructor",
	)
)

// GetCreatorOrdersQuery retrieves every order a creator has opened, across
// all statuses. Backs the creator's dashboard.
type GetCreatorOrdersQuery struct {
	creator kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCreatorOrdersQuery creates a query listing one creator's orders.
func NewGetCreatorOrdersQuery(creator kernel.UUID) (GetCreatorOrdersQuery, error) {
	if err := creator.Validate(); err != nil {
		return GetCreatorOrdersQuery{}, err
	}
	return GetCreatorOrdersQuery{creator: creator, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCreatorOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCreatorOrdersQueryIsNotConstructed)
}

// Creator returns the creator whose orders are listed.
func (q GetCreatorOrdersQuery) Creator() kernel.UUID {
	return q.creator
}

// GetCreatorOrdersQueryResponse is one of the creator's orders as shown on
// the dashboard.
type GetCreatorOrdersQueryResponse struct {
	ID          kernel.UUID
	Helper      *kernel.UUID
	Asset       string
	Amount      int64
	LocalAmount int64
	Status      order.Status
	CreatedAt   time.Time
	ExpiryAt    *time.Time
}
