// Package courier provides the Courier aggregate root and its transport type policy.
//
// The package includes:
//   - Courier: identity, type, regions, working hours, earnings and completed orders
//   - Type: foot, bike or car with their capacity and earning multiplier
//   - Patch: the whitelist of fields a profile update may replace
//
// Key business rules:
//   - A courier can take an order in one of its regions whose weight fits the type capacity
//     and whose delivery hours overlap its working hours
//   - Each completed order pays BaseEarning times the type multiplier
package courier
