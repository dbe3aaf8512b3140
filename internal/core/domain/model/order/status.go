package order

// Status represents the lifecycle state of an escrow order.
// It implements a state machine whose transitions only ever move forward:
//
//	Created ──> Joined ──> PaidLocal ──> Released
//	   │          │  │         │
//	   │          │  └─────────┴──────── (auto-release after expiry)
//	   │          │            │
//	   └──────────┴────────────┴──> Disputed ──> Resolved
//
// Released and Resolved are terminal. The numeric values are the persisted
// status codes and must not be reordered.
type Status int

const (
	// Created is the initial status: value is locked, no helper yet.
	Created Status = iota

	// Joined indicates a helper has committed to fulfil the order.
	Joined

	// PaidLocal indicates the off-ledger payment has been attested.
	PaidLocal

	// Released is terminal: the escrow was paid out to the helper.
	Released

	// Disputed indicates the parties disagree and an arbiter must decide.
	Disputed

	// Resolved is terminal: the arbiter's decision has been executed.
	Resolved
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Created:   "Created",
		Joined:    "Joined",
		PaidLocal: "PaidLocal",
		Released:  "Released",
		Disputed:  "Disputed",
		Resolved:  "Resolved",
	}
}

// String returns the human-readable name of the status, or "Unknown" for
// values outside the defined set.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the status is one of the defined codes. Used when
// reconstructing orders from persistence.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return ErrInvalidStatus
	}
	return nil
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Released || s == Resolved
}

// Join transitions the status to Joined.
// Only an order still in Created can be joined.
func (s Status) Join() (Status, error) {
	if s != Created {
		return 0, ErrInvalidStatus
	}
	return Joined, nil
}

// MarkPaid transitions the status to PaidLocal.
// Requires a helper to have joined first.
func (s Status) MarkPaid() (Status, error) {
	if s != Joined {
		return 0, ErrInvalidStatus
	}
	return PaidLocal, nil
}

// Release transitions the status to Released on the cooperative path,
// where the creator acknowledges the off-ledger payment.
func (s Status) Release() (Status, error) {
	if s != PaidLocal {
		return 0, ErrInvalidStatus
	}
	return Released, nil
}

// AutoRelease transitions the status to Released on the expiry path.
// Unlike Release it is also allowed from Joined: once the deadline passes,
// a helper who joined but whose payment was never acknowledged is paid out.
func (s Status) AutoRelease() (Status, error) {
	if s != Joined && s != PaidLocal {
		return 0, ErrInvalidStatus
	}
	return Released, nil
}

// Dispute transitions the status to Disputed. Allowed from any non-terminal
// status except Disputed itself; terminal orders have already drained their
// escrow and must not regress.
func (s Status) Dispute() (Status, error) {
	if s != Created && s != Joined && s != PaidLocal {
		return 0, ErrInvalidStatus
	}
	return Disputed, nil
}

// Resolve transitions the status to Resolved. Only a disputed order can be
// resolved.
func (s Status) Resolve() (Status, error) {
	if s != Disputed {
		return 0, ErrInvalidStatus
	}
	return Resolved, nil
}
