// Package order provides the Order aggregate root and its lifecycle state machine.
//
// The package includes:
//   - Order: identity, weight, region, delivery hours and the assignment/completion state
//   - Status: Created -> Assigned -> Completed, with Assigned -> Created on unassign
//   - Filter: the typed predicate repositories use to select orders
//
// Key business rules:
//   - Weight is within [0.01..50] and region is positive
//   - Courier reference and assign time are set and cleared together
//   - Completion records the time and cost once and is terminal
package order
