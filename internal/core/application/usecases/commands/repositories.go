// Package commands contains business operations that modify system state.
// Every handler validates its command, opens one unit of work, drives the domain model
// through the repositories bound to it and commits once.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Each handler depends on the narrowest unit of work that covers the tables it writes.
type (
	// TxManager is the transaction half of a unit of work. Handlers defer Rollback right
	// after Begin; after a successful Commit the deferred Rollback is a no-op that errors.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// OrderUoW serves order imports, which never touch courier rows.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW serves courier imports, which never touch order rows.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW serves assign, complete and courier updates. They lock the courier row first and
	// only then the order rows, so two requests for one courier queue on the courier lock.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer uow.Rollback(ctx)
	//
	//   c, err := uow.CourierRepository().GetForUpdate(ctx, courierID)
	//   held, err := uow.OrderRepository().Find(ctx, order.Filter{CourierID: &courierID, Incomplete: true})
	//   // ... change c and held
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CourierRepoFactory
		OrderRepoFactory
	}

	// UoWFactory hands out a fresh unit of work per request.
	UoWFactory interface {
		Create() UoW
	}
)
