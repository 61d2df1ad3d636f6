// Package kernel provides the domain primitives shared by couriers and orders.
//
// The package includes:
//   - TimeInterval: a half-open [start, end) span on a 24h clock with the overlap test
//     used to match courier working hours against order delivery hours
//   - Minute: a wall-clock time of day in minutes since midnight
//   - Timestamp helpers: the canonical format for assign and complete times
//
// Values are immutable and validated on construction, so aggregates holding them can
// rely on their invariants without re-checking.
package kernel
