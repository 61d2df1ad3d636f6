package commands

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/metrics"
)

// CompleteOrderCommandHandler records a delivery and credits the courier.
//
// Checks run in this order: the order must be assigned to the courier (ErrUnknownOrder), the
// courier must exist (ErrUnknownCourier), the complete time must parse (ErrInvalidTimeFormat).
// Completing an already completed order succeeds without crediting the courier again.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCompleteOrderCommandHandler(uowFactory UoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the id of the completed order.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	filter := order.Filter{ID: ptr(cmd.OrderID()), CourierID: ptr(cmd.CourierID())}
	matched, err := orderRepo.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	if len(matched) == 0 {
		return 0, ErrUnknownOrder
	}

	// the courier row is locked before the order row, the same order assign and update use
	c, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return 0, ErrUnknownCourier
	}
	if err != nil {
		return 0, err
	}

	completeTime, err := kernel.ParseTimestamp(cmd.CompleteTime())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidTimeFormat, err)
	}

	filter.ForUpdate = true
	matched, err = orderRepo.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	if len(matched) == 0 {
		return 0, ErrUnknownOrder
	}
	o := matched[0]

	if o.IsCompleted() {
		return o.ID(), nil
	}

	if err = c.CompleteOrder(o, completeTime); err != nil {
		return 0, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return 0, err
	}
	if err = courierRepo.Update(ctx, c); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	metrics.OrdersCompletedTotal.Inc()
	return o.ID(), nil
}

func ptr[T any](v T) *T {
	return &v
}
