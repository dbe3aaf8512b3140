package order

import "errors"

// Domain error taxonomy. Every lifecycle operation fails with exactly one of
// these, and a failed operation leaves the order and its custody balance
// untouched.
var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidFee     = errors.New("invalid fee")
	ErrInvalidStatus  = errors.New("order is not in expected state")
	ErrUnauthorized   = errors.New("not authorized")
	ErrNoHelper       = errors.New("no helper set")
	ErrNotExpired     = errors.New("order not expired yet")
	ErrInvalidOutcome = errors.New("invalid outcome")
	ErrMathOverflow   = errors.New("math overflow")
	ErrQRTooLong      = errors.New("qr payload too long")
)
