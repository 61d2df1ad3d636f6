package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/metrics"
)

// CreateOrdersCommandHandler validates every order of a batch, reports each failing item
// and persists the batch only when all items are valid. New orders enter the unassigned pool.
type CreateOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrdersCommandHandler(uowFactory OrderUoWFactory) CreateOrdersCommandHandler {
	return CreateOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the ids of the created orders in request order, or a *BatchValidationError
// listing every invalid or duplicated id.
func (h CreateOrdersCommandHandler) Handle(ctx context.Context, cmd CreateOrdersCommand) ([]int64, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	items := cmd.Items()
	orders := make([]*order.Order, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	var invalid []ItemError
	for _, item := range items {
		if item.Rejection != nil {
			invalid = append(invalid, ItemError{ID: item.Rejection.RawID, Err: validationError(item.Rejection.Err)})
			continue
		}

		o, err := buildOrder(item)
		if err != nil {
			invalid = append(invalid, ItemError{ID: item.ID, Err: validationError(err)})
			continue
		}

		if _, ok := seen[item.ID]; ok {
			invalid = append(invalid, ItemError{ID: item.ID, Err: errs.NewObjectAlreadyExistsError("order", item.ID)})
			continue
		}
		seen[item.ID] = struct{}{}

		exists, err := orderRepo.Exists(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			invalid = append(invalid, ItemError{ID: item.ID, Err: errs.NewObjectAlreadyExistsError("order", item.ID)})
			continue
		}

		orders = append(orders, o)
	}

	if len(invalid) > 0 {
		metrics.BatchRejectedTotal.WithLabelValues("orders").Inc()
		return nil, &BatchValidationError{Entity: "orders", Items: invalid}
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		if err := orderRepo.Add(ctx, o); err != nil {
			return nil, err
		}
		ids = append(ids, o.ID())
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}

func buildOrder(item OrderInput) (*order.Order, error) {
	hours, err := kernel.ParseTimeIntervals(item.DeliveryHours)
	if err != nil {
		return nil, err
	}

	return order.NewOrder(item.ID, item.Weight, item.Region, hours)
}
