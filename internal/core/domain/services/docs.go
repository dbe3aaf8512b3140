// Package services contains stateless domain services that operate across
// aggregates.
//
// PayoutCalculator holds the money arithmetic shared by order creation,
// release, and dispute resolution: fee computation, escrow totals, and
// basis-point splits. Keeping it out of the Order aggregate lets command
// handlers compute custody instructions without loading an order first.
package services
