package services

import (
	"math"
	"math/bits"

	"peermint/internal/core/domain/model/order"
)

// PayoutCalculator is the domain service for escrow fee and split arithmetic.
// All computation is done on non-negative 64-bit integers with a widened
// 128-bit intermediate, so no valid input can silently wrap.
//
// Business rules:
//   - fee = floor(amount * feePercentage / 100)
//   - total escrow = amount + fee
//   - split by basis points assigns the rounding remainder to the creator,
//     so helper share + creator share always equals the total exactly
type PayoutCalculator struct{}

// NewPayoutCalculator creates a new PayoutCalculator instance.
func NewPayoutCalculator() PayoutCalculator {
	return PayoutCalculator{}
}

// Fee computes the helper incentive: floor(amount * feePercentage / 100).
// Fails with ErrInvalidAmount for non-positive amounts, ErrInvalidFee for a
// percentage above 100, and ErrMathOverflow when the result does not fit in
// an int64.
func (c PayoutCalculator) Fee(amount int64, feePercentage uint8) (int64, error) {
	if amount <= 0 {
		return 0, order.ErrInvalidAmount
	}
	if feePercentage > 100 {
		return 0, order.ErrInvalidFee
	}

	return mulDiv(amount, uint64(feePercentage), 100)
}

// TotalEscrow computes the value locked at creation: amount plus fee.
// Fails with ErrMathOverflow when the sum does not fit in an int64.
func (c PayoutCalculator) TotalEscrow(amount int64, feePercentage uint8) (int64, error) {
	fee, err := c.Fee(amount, feePercentage)
	if err != nil {
		return 0, err
	}

	if fee > math.MaxInt64-amount {
		return 0, order.ErrMathOverflow
	}
	return amount + fee, nil
}

// Split divides total between helper and creator by basis points. The helper
// receives floor(total * bps / 10000); the creator receives the rest,
// including the rounding remainder. Fails with ErrInvalidFee for bps above
// 10000 and ErrInvalidAmount for a negative total.
func (c PayoutCalculator) Split(total int64, bps uint16) (toHelper, toCreator int64, err error) {
	if total < 0 {
		return 0, 0, order.ErrInvalidAmount
	}
	if bps > 10000 {
		return 0, 0, order.ErrInvalidFee
	}

	toHelper, err = mulDiv(total, uint64(bps), 10000)
	if err != nil {
		return 0, 0, err
	}
	return toHelper, total - toHelper, nil
}

// mulDiv computes floor(a * b / div) through a 128-bit intermediate.
// a must be non-negative.
func mulDiv(a int64, b, div uint64) (int64, error) {
	hi, lo := bits.Mul64(uint64(a), b)
	if hi >= div {
		// The 128-bit quotient would not fit in 64 bits.
		return 0, order.ErrMathOverflow
	}

	quo, _ := bits.Div64(hi, lo, div)
	if quo > math.MaxInt64 {
		return 0, order.ErrMathOverflow
	}
	return int64(quo), nil
}
