package queries

import (
	"context"
	"database/sql"
	"errors"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/core/domain/model/order"
	"peermint/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order straight from the database, bypassing
// the aggregate. Used by the detail endpoint, which needs every column.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns an errs.ErrObjectNotFound wrapped error
// when no order exists under the given identifier.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			creator_id,
			helper_id,
			asset,
			amount,
			local_amount,
			status,
			created_at,
			expiry_at,
			paid_at,
			released_at,
			receipt_hash,
			fee_percentage,
			arbiter_id,
			nonce,
			qr_payload
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		resp        GetOrderQueryResponse
		id          uuid.UUID
		creatorID   uuid.UUID
		helperID    uuid.NullUUID
		arbiterID   uuid.UUID
		status      int
		expiryAt    sql.NullTime
		paidAt      sql.NullTime
		releasedAt  sql.NullTime
		receiptHash []byte
		nonce       int64
	)

	err := row.Scan(
		&id,
		&creatorID,
		&helperID,
		&resp.Asset,
		&resp.Amount,
		&resp.LocalAmount,
		&status,
		&resp.CreatedAt,
		&expiryAt,
		&paidAt,
		&releasedAt,
		&receiptHash,
		&resp.FeePercentage,
		&arbiterID,
		&nonce,
		&resp.QRPayload,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundErrorWithCause("orderID", query.OrderID(), err)
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Creator, err = kernel.UUIDFromBytes(creatorID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Arbiter, err = kernel.UUIDFromBytes(arbiterID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if helperID.Valid {
		helper, helperErr := kernel.UUIDFromBytes(helperID.UUID[:])
		if helperErr != nil {
			return GetOrderQueryResponse{}, helperErr
		}
		resp.Helper = &helper
	}

	resp.Status = order.Status(status)
	resp.Nonce = uint64(nonce)
	resp.ReceiptHash = receiptHash
	if expiryAt.Valid {
		resp.ExpiryAt = &expiryAt.Time
	}
	if paidAt.Valid {
		resp.PaidAt = &paidAt.Time
	}
	if releasedAt.Valid {
		resp.ReleasedAt = &releasedAt.Time
	}

	return resp, nil
}
