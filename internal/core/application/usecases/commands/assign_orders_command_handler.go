package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/metrics"
)

// AssignOrdersResult lists the orders a courier holds after an assign request.
// AssignedTime is nil when the list is empty.
type AssignOrdersResult struct {
	OrderIDs     []int64
	AssignedTime *time.Time
}

// AssignOrdersCommandHandler hands a courier a batch of eligible unassigned orders.
//
// Business rules:
//   - A courier that still holds incomplete orders gets the same batch back unchanged
//   - Otherwise every eligible unassigned order in the courier's regions is assigned with one
//     shared assign time, in ascending id order
//   - Candidate rows locked by a concurrent assign are skipped, so an order never ends up in
//     two batches
type AssignOrdersCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.OrderDispatcher
	clock      func() time.Time
}

func NewAssignOrdersCommandHandler(
	uowFactory UoWFactory,
	dispatcher services.OrderDispatcher,
	clock func() time.Time,
) AssignOrdersCommandHandler {
	if clock == nil {
		clock = time.Now
	}
	return AssignOrdersCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

// Handle returns ErrUnknownCourier if the courier does not exist.
func (h AssignOrdersCommandHandler) Handle(ctx context.Context, cmd AssignOrdersCommand) (AssignOrdersResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignOrdersResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignOrdersResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	c, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return AssignOrdersResult{}, ErrUnknownCourier
	}
	if err != nil {
		return AssignOrdersResult{}, err
	}

	courierID := c.ID()
	held, err := orderRepo.Find(ctx, order.Filter{CourierID: &courierID, Incomplete: true})
	if err != nil {
		return AssignOrdersResult{}, err
	}
	if len(held) > 0 {
		return newAssignOrdersResult(held), nil
	}

	regions := c.Regions()
	if len(regions) == 0 {
		return AssignOrdersResult{OrderIDs: []int64{}}, nil
	}

	candidates, err := orderRepo.Find(ctx, order.Filter{
		Unassigned: true,
		Incomplete: true,
		Regions:    regions,
		ForUpdate:  true,
		SkipLocked: true,
	})
	if err != nil {
		return AssignOrdersResult{}, err
	}

	now := h.clock().UTC().Truncate(time.Microsecond)
	assigned, err := h.dispatcher.Dispatch(c, candidates, now)
	if err != nil {
		return AssignOrdersResult{}, err
	}
	if len(assigned) == 0 {
		return AssignOrdersResult{OrderIDs: []int64{}}, nil
	}

	for _, o := range assigned {
		if err = orderRepo.Update(ctx, o); err != nil {
			return AssignOrdersResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignOrdersResult{}, err
	}

	metrics.OrdersAssignedTotal.Add(float64(len(assigned)))
	return newAssignOrdersResult(assigned), nil
}

func newAssignOrdersResult(orders []*order.Order) AssignOrdersResult {
	result := AssignOrdersResult{OrderIDs: make([]int64, 0, len(orders))}
	for _, o := range orders {
		result.OrderIDs = append(result.OrderIDs, o.ID())
		if result.AssignedTime == nil && o.AssignTime() != nil {
			at := *o.AssignTime()
			result.AssignedTime = &at
		}
	}
	return result
}
