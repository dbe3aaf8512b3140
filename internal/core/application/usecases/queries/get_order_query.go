package queries

import (
	"errors"
	"time"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/core/domain/model/order"
	"peermint/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves the full detail of a single escrow order.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	detail, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("order %s is %s\n", detail.ID, detail.Status)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order's detail.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order being looked up.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the read model for one order. Optional lifecycle
// fields are nil until the corresponding transition happens.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	Creator       kernel.UUID
	Helper        *kernel.UUID
	Asset         string
	Amount        int64
	LocalAmount   int64
	Status        order.Status
	CreatedAt     time.Time
	ExpiryAt      *time.Time
	PaidAt        *time.Time
	ReleasedAt    *time.Time
	ReceiptHash   []byte
	FeePercentage uint8
	Arbiter       kernel.UUID
	Nonce         uint64
	QRPayload     string
}
