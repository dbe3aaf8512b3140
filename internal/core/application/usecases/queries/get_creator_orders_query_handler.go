package queries

import (
	"context"
	"database/sql"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCreatorOrdersQueryHandler retrieves a creator's orders from the
// database, newest first.
type GetCreatorOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCreatorOrdersQueryHandler creates a handler for creator dashboards.
// Requires a GORM database connection for query execution.
func NewGetCreatorOrdersQueryHandler(db *gorm.DB) GetCreatorOrdersQueryHandler {
	return GetCreatorOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve every order the creator opened.
func (h GetCreatorOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCreatorOrdersQuery,
) ([]GetCreatorOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetCreatorOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			helper_id,
			asset,
			amount,
			local_amount,
			status,
			created_at,
			expiry_at
		FROM orders
		WHERE creator_id = ?
		ORDER BY created_at DESC
	`, query.Creator().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp     GetCreatorOrdersQueryResponse
			id       uuid.UUID
			helperID uuid.NullUUID
			status   int
			expiryAt sql.NullTime
		)

		err = rows.Scan(
			&id,
			&helperID,
			&resp.Asset,
			&resp.Amount,
			&resp.LocalAmount,
			&status,
			&resp.CreatedAt,
			&expiryAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if helperID.Valid {
			helper, helperErr := kernel.UUIDFromBytes(helperID.UUID[:])
			if helperErr != nil {
				return nil, helperErr
			}
			resp.Helper = &helper
		}
		resp.Status = order.Status(status)
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
