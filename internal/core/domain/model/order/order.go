package order

import (
	"errors"
	"time"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// maxQRPayloadLen bounds the off-ledger payment instruction carried on the
// order. The payload is opaque to the lifecycle logic.
const maxQRPayloadLen = 500

// ReceiptHash is a 32-byte attestation of the off-ledger payment, recorded
// when the payment is marked. It is never verified here; the system trusts
// the attestation.
type ReceiptHash [32]byte

// ReceiptHashFromBytes builds a ReceiptHash from a 32-byte slice.
func ReceiptHashFromBytes(b []byte) (ReceiptHash, error) {
	var h ReceiptHash
	if len(b) != len(h) {
		return ReceiptHash{}, errs.NewValueIsInvalidError("receipt hash must be 32 bytes")
	}
	copy(h[:], b)
	return h, nil
}

// AuthorityProof is the capability presented to the escrow custodian to act
// on an order's custody account. Only the order record carries the salt, so
// only code holding the aggregate can move its funds.
type AuthorityProof struct {
	orderID kernel.UUID
	salt    uint8
}

// OrderID returns the order the proof is scoped to.
func (p AuthorityProof) OrderID() kernel.UUID {
	return p.orderID
}

// Salt returns the derivation salt stored on the order.
func (p AuthorityProof) Salt() uint8 {
	return p.salt
}

// Order is the aggregate root representing one escrow agreement between a
// creator and a helper. It owns the status state machine and every
// authorization rule gating a transition; moving the custodied value itself
// is delegated to the EscrowCustodian port.
//
// Invariants:
//   - amount and localAmount are positive
//   - feePercentage does not exceed 100
//   - the QR payload does not exceed 500 bytes
//   - helper is set exactly once, on join, and never equals creator
//   - status only advances along the defined graph, never backward
type Order struct {
	id            kernel.UUID
	creator       kernel.UUID
	helper        *kernel.UUID
	asset         string
	amount        int64
	localAmount   int64
	status        Status
	createdAt     time.Time
	expiryAt      time.Time
	paidAt        *time.Time
	releasedAt    *time.Time
	receiptHash   *ReceiptHash
	feePercentage uint8
	arbiter       kernel.UUID
	nonce         uint64
	authoritySalt uint8
	qrPayload     string

	isConstructed bool
}

// NewOrder creates an order in Created status. The caller is expected to lock
// amount plus fee with the escrow custodian in the same transaction.
//
// The arbiter is set to the creator; an independent-arbiter mode is
// anticipated but not wired yet. expiryAt may be zero, which disables the
// auto-release path for this order.
func NewOrder(
	id kernel.UUID,
	creator kernel.UUID,
	asset string,
	amount int64,
	localAmount int64,
	expiryAt time.Time,
	feePercentage uint8,
	nonce uint64,
	authoritySalt uint8,
	qrPayload string,
	now time.Time,
) (*Order, error) {
	order := &Order{
		status:        Created,
		createdAt:     now,
		expiryAt:      expiryAt,
		nonce:         nonce,
		authoritySalt: authoritySalt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCreator(creator),
		order.setAsset(asset),
		order.setAmount(amount),
		order.setLocalAmount(localAmount),
		order.setFeePercentage(feePercentage),
		order.setQRPayload(qrPayload),
	); err != nil {
		return nil, err
	}

	// MVP: the creator arbitrates its own orders.
	order.arbiter = creator
	return order, nil
}

// RestoreOrder reconstructs an order from persistence without re-running
// creation-time side effects. The stored status is validated; field values
// are trusted because they were validated when first written.
func RestoreOrder(
	id kernel.UUID,
	creator kernel.UUID,
	helper *kernel.UUID,
	asset string,
	amount int64,
	localAmount int64,
	status Status,
	createdAt time.Time,
	expiryAt time.Time,
	paidAt *time.Time,
	releasedAt *time.Time,
	receiptHash *ReceiptHash,
	feePercentage uint8,
	arbiter kernel.UUID,
	nonce uint64,
	authoritySalt uint8,
	qrPayload string,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		creator.Validate(),
		arbiter.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		creator:       creator,
		helper:        helper,
		asset:         asset,
		amount:        amount,
		localAmount:   localAmount,
		status:        status,
		createdAt:     createdAt,
		expiryAt:      expiryAt,
		paidAt:        paidAt,
		releasedAt:    releasedAt,
		receiptHash:   receiptHash,
		feePercentage: feePercentage,
		arbiter:       arbiter,
		nonce:         nonce,
		authoritySalt: authoritySalt,
		qrPayload:     qrPayload,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Creator returns the identity that locked the principal.
func (o *Order) Creator() kernel.UUID {
	return o.creator
}

// Helper returns the joined counterparty, or nil before join.
func (o *Order) Helper() *kernel.UUID {
	return o.helper
}

// Asset returns the custodied asset code.
func (o *Order) Asset() string {
	return o.asset
}

// Amount returns the principal in smallest asset denomination.
func (o *Order) Amount() int64 {
	return o.amount
}

// LocalAmount returns the informational local-currency value in minor units.
func (o *Order) LocalAmount() int64 {
	return o.localAmount
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ExpiryAt returns the auto-release eligibility boundary.
// A zero time means auto-release is disabled.
func (o *Order) ExpiryAt() time.Time {
	return o.expiryAt
}

// PaidAt returns when the off-ledger payment was marked, or nil.
func (o *Order) PaidAt() *time.Time {
	return o.paidAt
}

// ReleasedAt returns when the escrow was released, or nil.
func (o *Order) ReleasedAt() *time.Time {
	return o.releasedAt
}

// ReceiptHash returns the payment attestation, or nil if none was supplied.
func (o *Order) ReceiptHash() *ReceiptHash {
	return o.receiptHash
}

// FeePercentage returns the helper incentive as a whole-number percent.
func (o *Order) FeePercentage() uint8 {
	return o.feePercentage
}

// Arbiter returns the identity authorized to resolve disputes.
func (o *Order) Arbiter() kernel.UUID {
	return o.arbiter
}

// Nonce returns the creator-chosen salt disambiguating concurrent orders.
func (o *Order) Nonce() uint64 {
	return o.nonce
}

// QRPayload returns the opaque off-ledger payment instruction.
func (o *Order) QRPayload() string {
	return o.qrPayload
}

// Authority returns the capability proof for this order's custody account.
func (o *Order) Authority() AuthorityProof {
	return AuthorityProof{orderID: o.id, salt: o.authoritySalt}
}

// Expired reports whether the auto-release deadline has passed.
// Orders without a deadline never expire.
func (o *Order) Expired(now time.Time) bool {
	return !o.expiryAt.IsZero() && !now.Before(o.expiryAt)
}

// Join sets the helper and moves the order to Joined.
// The creator cannot join its own order.
func (o *Order) Join(helper kernel.UUID) error {
	if err := helper.Validate(); err != nil {
		return err
	}
	if helper.IsEqual(o.creator) {
		return ErrUnauthorized
	}

	newStatus, err := o.status.Join()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.helper = &helper
	return nil
}

// MarkPaid records the off-ledger payment attestation and moves the order to
// PaidLocal. Either party may mark: the helper after paying, or the creator
// after seeing the money arrive. receiptHash is optional.
func (o *Order) MarkPaid(caller kernel.UUID, receiptHash *ReceiptHash, now time.Time) error {
	newStatus, err := o.status.MarkPaid()
	if err != nil {
		return err
	}
	if !o.isParty(caller) {
		return ErrUnauthorized
	}

	o.status = newStatus
	o.paidAt = &now
	if receiptHash != nil {
		o.receiptHash = receiptHash
	}
	return nil
}

// Acknowledge moves the order to Released on the cooperative path.
// Only the creator may acknowledge, and only from PaidLocal. The caller is
// expected to pay principal and fee to the helper in the same transaction.
func (o *Order) Acknowledge(caller kernel.UUID, now time.Time) error {
	newStatus, err := o.status.Release()
	if err != nil {
		return err
	}
	if !caller.IsEqual(o.creator) {
		return ErrUnauthorized
	}
	if o.helper == nil {
		return ErrNoHelper
	}

	o.status = newStatus
	o.releasedAt = &now
	return nil
}

// AutoRelease moves the order to Released on the expiry path, bypassing the
// creator-only check: once the deadline passes anyone may trigger the payout
// to the helper. Allowed from Joined or PaidLocal.
func (o *Order) AutoRelease(now time.Time) error {
	if _, err := o.status.AutoRelease(); err != nil {
		return err
	}
	if !o.Expired(now) {
		return ErrNotExpired
	}
	if o.helper == nil {
		return ErrNoHelper
	}

	o.status = Released
	o.releasedAt = &now
	return nil
}

// Dispute moves the order to Disputed. Any party holding a reference to the
// order may raise a dispute; the reason is not persisted.
func (o *Order) Dispute() error {
	newStatus, err := o.status.Dispute()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Resolve moves the order to Resolved. Only the stored arbiter may resolve.
// Executing the outcome's payout is the caller's responsibility, in the same
// transaction.
func (o *Order) Resolve(caller kernel.UUID, outcome Outcome) error {
	if err := outcome.Validate(); err != nil {
		return err
	}
	if o.status != Disputed {
		return ErrInvalidStatus
	}
	if !caller.IsEqual(o.arbiter) {
		return ErrUnauthorized
	}
	if outcome.RequiresHelper() && o.helper == nil {
		return ErrNoHelper
	}

	o.status = Resolved
	return nil
}

func (o *Order) isParty(caller kernel.UUID) bool {
	if caller.IsEqual(o.creator) {
		return true
	}
	return o.helper != nil && caller.IsEqual(*o.helper)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCreator(creator kernel.UUID) error {
	if err := creator.Validate(); err != nil {
		return err
	}
	o.creator = creator
	return nil
}

func (o *Order) setAsset(asset string) error {
	if asset == "" {
		return errs.NewValueIsRequiredError("asset")
	}
	o.asset = asset
	return nil
}

func (o *Order) setAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	o.amount = amount
	return nil
}

func (o *Order) setLocalAmount(localAmount int64) error {
	if localAmount <= 0 {
		return ErrInvalidAmount
	}
	o.localAmount = localAmount
	return nil
}

func (o *Order) setFeePercentage(feePercentage uint8) error {
	if feePercentage > 100 {
		return ErrInvalidFee
	}
	o.feePercentage = feePercentage
	return nil
}

func (o *Order) setQRPayload(qrPayload string) error {
	if len(qrPayload) > maxQRPayloadLen {
		return ErrQRTooLong
	}
	o.qrPayload = qrPayload
	return nil
}
