// Package escrowrepo implements the escrow custodian on top of postgres.
// Each order gets exactly one custody account holding its locked balance, and
// every balance change is recorded in an append-only movements ledger.
package escrowrepo

import (
	"time"

	"github.com/google/uuid"
)

// EscrowAccountDTO is the custody account row. The authority token is the
// keyed hash the account was opened under; mutating instructions must present
// a proof that re-derives to the same token.
type EscrowAccountDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Asset          string
	Balance        int64
	AuthorityToken []byte
	CreatedAt      time.Time
}

// TableName specifies the database table name for custody accounts.
func (EscrowAccountDTO) TableName() string {
	return "escrow_accounts"
}

// Movement directions.
const (
	movementLock     = "lock"
	movementDisburse = "disburse"
)

// MovementDTO is one row of the append-only custody ledger. Lock movements
// have no recipient; disburse movements name who was paid. BalanceAfter is
// the account balance once the movement applied, so the ledger replays to the
// current balance.
type MovementDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	RecipientID  *uuid.UUID
	Amount       int64
	Direction    string
	BalanceAfter int64
	CreatedAt    time.Time
}

// TableName specifies the database table name for custody movements.
func (MovementDTO) TableName() string {
	return "escrow_movements"
}
