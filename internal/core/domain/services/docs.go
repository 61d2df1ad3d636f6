// Package services provides domain services that work across couriers and orders.
//
// The package includes:
//   - OrderDispatcher: assigns eligible orders to a courier and releases assignments
//     that became ineligible after a profile change
//   - RatingCalculator: turns completion-time gaps into a 0..5 courier rating
package services
