package order

import "peermint/internal/pkg/guard"

// OutcomeKind enumerates the three ways an arbiter can settle a dispute.
// The numeric values are the wire codes accepted by the resolve operation.
type OutcomeKind uint8

const (
	// OutcomeRefundCreator returns the full principal to the creator.
	OutcomeRefundCreator OutcomeKind = 0

	// OutcomePayHelper pays the full principal to the helper.
	OutcomePayHelper OutcomeKind = 1

	// OutcomeSplit divides the principal between helper and creator by
	// basis points.
	OutcomeSplit OutcomeKind = 2
)

// maxSplitBps is the whole principal expressed in basis points.
const maxSplitBps = 10000

// Outcome is the closed set of dispute resolutions. It is validated at
// construction, before any value moves: an unknown code or an out-of-range
// split never reaches the payout logic.
type Outcome struct {
	kind     OutcomeKind
	splitBps uint16

	guard guard.ConstructorGuard
}

// NewRefundCreatorOutcome creates the outcome refunding the principal to the
// creator.
func NewRefundCreatorOutcome() Outcome {
	return Outcome{kind: OutcomeRefundCreator, guard: guard.NewConstructorGuard()}
}

// NewPayHelperOutcome creates the outcome paying the principal to the helper.
func NewPayHelperOutcome() Outcome {
	return Outcome{kind: OutcomePayHelper, guard: guard.NewConstructorGuard()}
}

// NewSplitOutcome creates the outcome splitting the principal. splitBps is the
// helper's share in basis points and must not exceed 10000.
func NewSplitOutcome(splitBps uint16) (Outcome, error) {
	if splitBps > maxSplitBps {
		return Outcome{}, ErrInvalidFee
	}
	return Outcome{kind: OutcomeSplit, splitBps: splitBps, guard: guard.NewConstructorGuard()}, nil
}

// OutcomeFromCode maps a wire code to an Outcome. Codes outside {0, 1, 2}
// fail with ErrInvalidOutcome. The split code requires splitBps; a missing or
// out-of-range value fails with ErrInvalidFee. A splitBps supplied with the
// refund or pay-helper codes is ignored.
func OutcomeFromCode(code uint8, splitBps *uint16) (Outcome, error) {
	switch OutcomeKind(code) {
	case OutcomeRefundCreator:
		return NewRefundCreatorOutcome(), nil
	case OutcomePayHelper:
		return NewPayHelperOutcome(), nil
	case OutcomeSplit:
		if splitBps == nil {
			return Outcome{}, ErrInvalidFee
		}
		return NewSplitOutcome(*splitBps)
	default:
		return Outcome{}, ErrInvalidOutcome
	}
}

// Validate ensures the outcome was created through a constructor.
func (o Outcome) Validate() error {
	return o.guard.Validate(ErrInvalidOutcome)
}

// Kind returns which of the three resolutions this outcome is.
func (o Outcome) Kind() OutcomeKind {
	return o.kind
}

// SplitBps returns the helper's share in basis points.
// Meaningful only when Kind is OutcomeSplit.
func (o Outcome) SplitBps() uint16 {
	return o.splitBps
}

// RequiresHelper reports whether executing the outcome pays the helper,
// which is impossible for an order no helper ever joined.
func (o Outcome) RequiresHelper() bool {
	return o.kind == OutcomePayHelper || (o.kind == OutcomeSplit && o.splitBps > 0)
}
