package ports

import (
	"context"
)

// UnitOfWorkFactory returns a new, not yet begun UnitOfWork. Units are never shared
// between requests.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one request's database transaction together with the repositories that
// read and write through it. Repositories obtained before Begin run outside any transaction.
type UnitOfWork interface {
	// Begin opens the transaction. Calling it on an open unit keeps the current transaction.
	Begin(ctx context.Context) error

	// Commit makes every write of the unit visible at once.
	Commit(ctx context.Context) error

	// Rollback discards the writes. It fails when no transaction is open, which handlers
	// ignore in their deferred call after Commit.
	Rollback(ctx context.Context) error

	CourierRepository() CourierRepository
	OrderRepository() OrderRepository
}
