// Package ports defines the store contracts the dispatch core depends on.
// Adapters implement them; use cases receive them through a unit of work.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
)

// CourierRepository defines the persistence contract for courier aggregates,
// including their working hours.
type CourierRepository interface {
	// Add persists a new courier aggregate.
	// Returns errs.ObjectAlreadyExistsError when the id is taken.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists the profile, earnings and counter of an existing courier.
	// Working hours are replaced wholesale.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier by id.
	// Returns errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id int64) (*courier.Courier, error)

	// GetForUpdate retrieves a courier by id and locks its row until the unit of work ends.
	// Operations that change a courier or its assignments serialize on this lock.
	GetForUpdate(ctx context.Context, id int64) (*courier.Courier, error)

	// Exists reports whether a courier with the id is stored.
	Exists(ctx context.Context, id int64) (bool, error)
}
