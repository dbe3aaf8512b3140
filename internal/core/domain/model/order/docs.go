// Package order contains the escrow order aggregate and its lifecycle state
// machine.
//
// An order coordinates one peer-to-peer conversion: a creator locks
// stablecoin value, a helper pays the local-currency equivalent out of band,
// and the locked value is released to the helper on acknowledgement, on
// expiry, or by arbiter decision after a dispute.
//
// The aggregate enforces the status transition graph and every authorization
// rule gating a transition. It never moves funds itself; command handlers
// pair each state change with the matching escrow custodian instruction
// inside a single unit of work, so a transition and its custody side effect
// commit or roll back together.
package order
