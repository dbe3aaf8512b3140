package queries

import (
	"context"
	"database/sql"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler retrieves joinable orders from the database.
// Oldest first, so long-waiting orders surface at the top of the explore
// page.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler for open-order listings.
// Requires a GORM database connection for query execution.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve every order in "created" status.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			creator_id,
			asset,
			amount,
			local_amount,
			fee_percentage,
			created_at,
			expiry_at
		FROM orders
		WHERE status = ?
		ORDER BY created_at
	`, order.Created).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp      GetOpenOrdersQueryResponse
			id        uuid.UUID
			creatorID uuid.UUID
			expiryAt  sql.NullTime
		)

		err = rows.Scan(
			&id,
			&creatorID,
			&resp.Asset,
			&resp.Amount,
			&resp.LocalAmount,
			&resp.FeePercentage,
			&resp.CreatedAt,
			&expiryAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.Creator, err = kernel.UUIDFromBytes(creatorID[:]); err != nil {
			return nil, err
		}
		if expiryAt.Valid {
			resp.ExpiryAt = &expiryAt.Time
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
