// Package kernel contains shared value objects used across domain aggregates.
//
// It currently provides the UUID identity value object that identifies orders
// and the accounts acting on them. Kernel types are immutable, validated at
// construction, and safe to pass by value.
package kernel
