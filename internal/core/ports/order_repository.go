package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// Returns errs.ObjectAlreadyExistsError when the id is taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the assignment and completion state of an existing order.
	// Delivery hours are replaced wholesale.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	// Returns errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// Exists reports whether an order with the id is stored.
	Exists(ctx context.Context, id int64) (bool, error)

	// Find returns the orders matching the filter in ascending id order.
	//
	// Example:
	//   candidates, err := repo.Find(ctx, order.Filter{
	//       Unassigned: true,
	//       Incomplete: true,
	//       Regions:    c.Regions(),
	//       ForUpdate:  true,
	//       SkipLocked: true,
	//   })
	Find(ctx context.Context, filter order.Filter) ([]*order.Order, error)
}
