package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/metrics"
)

// CreateCouriersCommandHandler validates every courier of a batch, reports each failing item
// and persists the batch only when all items are valid.
type CreateCouriersCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewCreateCouriersCommandHandler(uowFactory CourierUoWFactory) CreateCouriersCommandHandler {
	return CreateCouriersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the ids of the created couriers in request order, or a *BatchValidationError
// listing every invalid or duplicated id.
func (h CreateCouriersCommandHandler) Handle(ctx context.Context, cmd CreateCouriersCommand) ([]int64, error) {
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

	courierRepo := uow.CourierRepository()

	items := cmd.Items()
	couriers := make([]*courier.Courier, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	var invalid []ItemError
	for _, item := range items {
		if item.Rejection != nil {
			invalid = append(invalid, ItemError{ID: item.Rejection.RawID, Err: validationError(item.Rejection.Err)})
			continue
		}

		c, err := buildCourier(item)
		if err != nil {
			invalid = append(invalid, ItemError{ID: item.ID, Err: validationError(err)})
			continue
		}

		if _, ok := seen[item.ID]; ok {
			invalid = append(invalid, ItemError{ID: item.ID, Err: errs.NewObjectAlreadyExistsError("courier", item.ID)})
			continue
		}
		seen[item.ID] = struct{}{}

		exists, err := courierRepo.Exists(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			invalid = append(invalid, ItemError{ID: item.ID, Err: errs.NewObjectAlreadyExistsError("courier", item.ID)})
			continue
		}

		couriers = append(couriers, c)
	}

	if len(invalid) > 0 {
		metrics.BatchRejectedTotal.WithLabelValues("couriers").Inc()
		return nil, &BatchValidationError{Entity: "couriers", Items: invalid}
	}

	ids := make([]int64, 0, len(couriers))
	for _, c := range couriers {
		if err := courierRepo.Add(ctx, c); err != nil {
			return nil, err
		}
		ids = append(ids, c.ID())
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}

func buildCourier(item CourierInput) (*courier.Courier, error) {
	courierType, typeErr := courier.ParseType(item.Type)
	hours, hoursErr := kernel.ParseTimeIntervals(item.WorkingHours)
	if err := errors.Join(typeErr, hoursErr); err != nil {
		return nil, err
	}

	return courier.NewCourier(item.ID, courierType, item.Regions, hours)
}
