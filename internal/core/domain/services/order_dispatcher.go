package services

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
)

// OrderDispatcher is a domain service that binds unassigned orders to a courier and releases
// assignments a courier can no longer serve.
//
// Key responsibilities:
//   - Selecting eligible orders for a courier in ascending id order
//   - Assigning the selected batch with one shared assign time
//   - Unassigning incomplete orders that stopped being eligible after a profile change
//
// Business rules:
//   - Eligibility is decided by Courier.CanTakeOrder (region, capacity, hours overlap)
//   - Only Created orders are assigned and only Assigned orders are released
//   - Completed orders are never touched
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher()
//	assigned, err := dispatcher.Dispatch(c, candidates, time.Now())
//	if err != nil {
//	    // Handle dispatch failure
//	}
//	// persist every order in assigned
type OrderDispatcher struct{}

// NewOrderDispatcher creates a new OrderDispatcher instance.
func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch assigns every eligible unassigned candidate to the courier with the same
// assign time and returns the assigned orders sorted by id. Candidates that are not
// eligible or already taken are skipped.
func (d OrderDispatcher) Dispatch(c *courier.Courier, candidates []*order.Order, now time.Time) ([]*order.Order, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sorted := sortedByID(candidates)
	assigned := make([]*order.Order, 0, len(sorted))
	for _, o := range sorted {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if o.Status() != order.Created {
			continue
		}

		eligible, err := c.CanTakeOrder(o)
		if err != nil {
			return nil, err
		}
		if !eligible {
			continue
		}

		if err = o.Assign(c.ID(), now); err != nil {
			return nil, err
		}
		assigned = append(assigned, o)
	}

	return assigned, nil
}

// Reconcile unassigns every incomplete order held by the courier that it can no longer take
// and returns the released orders sorted by id.
func (d OrderDispatcher) Reconcile(c *courier.Courier, held []*order.Order) ([]*order.Order, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var released []*order.Order
	for _, o := range sortedByID(held) {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if o.IsCompleted() || !o.IsAssignedTo(c.ID()) {
			continue
		}

		eligible, err := c.CanTakeOrder(o)
		if err != nil {
			return nil, err
		}
		if eligible {
			continue
		}

		if err = o.Unassign(); err != nil {
			return nil, fmt.Errorf("release order %d: %w", o.ID(), err)
		}
		released = append(released, o)
	}

	return released, nil
}

func sortedByID(orders []*order.Order) []*order.Order {
	sorted := slices.Clone(orders)
	slices.SortStableFunc(sorted, func(a, b *order.Order) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return sorted
}
