// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database
// rows.
package orderrepo

import (
	"time"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The composite unique index on (creator_id, nonce) mirrors the rule that a
// creator cannot open two orders under the same nonce.
//
// Nonce is a uint64 in the domain but bigint has no unsigned variant, so the
// column stores its two's-complement reinterpretation: values >= 2^63 appear
// negative in the row. The mapping is bijective, so round-trips are lossless
// and the unique index still holds; the column is an opaque discriminator,
// never ordered or compared.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CreatorID     uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_orders_creator_nonce"`
	Nonce         int64      `gorm:"uniqueIndex:idx_orders_creator_nonce"`
	HelperID      *uuid.UUID `gorm:"type:uuid;index"`
	Asset         string
	Amount        int64
	LocalAmount   int64
	Status        int `gorm:"index"`
	CreatedAt     time.Time
	ExpiryAt      *time.Time `gorm:"index"`
	PaidAt        *time.Time
	ReleasedAt    *time.Time
	ReceiptHash   []byte
	FeePercentage int16 `gorm:"type:smallint"`
	ArbiterID     uuid.UUID
	AuthoritySalt int16 `gorm:"type:smallint"`
	QRPayload     string
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
// A zero expiry time maps to NULL so the releasable index stays small.
func fromDomain(aggregate *order.Order) OrderDTO {
	var helperID *uuid.UUID
	if id := aggregate.Helper(); id != nil {
		raw := id.Bytes()
		helperID = &raw
	}

	var expiryAt *time.Time
	if !aggregate.ExpiryAt().IsZero() {
		t := aggregate.ExpiryAt()
		expiryAt = &t
	}

	var receiptHash []byte
	if h := aggregate.ReceiptHash(); h != nil {
		receiptHash = h[:]
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		CreatorID:     aggregate.Creator().Bytes(),
		Nonce:         int64(aggregate.Nonce()),
		HelperID:      helperID,
		Asset:         aggregate.Asset(),
		Amount:        aggregate.Amount(),
		LocalAmount:   aggregate.LocalAmount(),
		Status:        int(aggregate.Status()),
		CreatedAt:     aggregate.CreatedAt(),
		ExpiryAt:      expiryAt,
		PaidAt:        aggregate.PaidAt(),
		ReleasedAt:    aggregate.ReleasedAt(),
		ReceiptHash:   receiptHash,
		FeePercentage: int16(aggregate.FeePercentage()),
		ArbiterID:     aggregate.Arbiter().Bytes(),
		AuthoritySalt: int16(aggregate.Authority().Salt()),
		QRPayload:     aggregate.QRPayload(),
	}
}

// toDomain converts a database row to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	creator, err := kernel.UUIDFromBytes(dto.CreatorID[:])
	if err != nil {
		return nil, err
	}

	arbiter, err := kernel.UUIDFromBytes(dto.ArbiterID[:])
	if err != nil {
		return nil, err
	}

	var helper *kernel.UUID
	if dto.HelperID != nil {
		h, helperErr := kernel.UUIDFromBytes((*dto.HelperID)[:])
		if helperErr != nil {
			return nil, helperErr
		}
		helper = &h
	}

	var expiryAt time.Time
	if dto.ExpiryAt != nil {
		expiryAt = *dto.ExpiryAt
	}

	var receiptHash *order.ReceiptHash
	if len(dto.ReceiptHash) > 0 {
		h, hashErr := order.ReceiptHashFromBytes(dto.ReceiptHash)
		if hashErr != nil {
			return nil, hashErr
		}
		receiptHash = &h
	}

	return order.RestoreOrder(
		id,
		creator,
		helper,
		dto.Asset,
		dto.Amount,
		dto.LocalAmount,
		order.Status(dto.Status),
		dto.CreatedAt,
		expiryAt,
		dto.PaidAt,
		dto.ReleasedAt,
		receiptHash,
		uint8(dto.FeePercentage),
		arbiter,
		uint64(dto.Nonce),
		uint8(dto.AuthoritySalt),
		dto.QRPayload,
	)
}
