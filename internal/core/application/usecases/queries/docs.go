// Package queries contains read operations for retrieving system state.
// Handlers read with raw SQL through gorm and return read models shaped for the HTTP boundary;
// they never load aggregates for writing.
package queries
