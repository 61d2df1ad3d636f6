package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/metrics"
)

// UpdateCourierCommandHandler patches a courier profile and, in the same transaction,
// releases every incomplete order the courier can no longer take.
//
// Example:
//
//	hours := []string{"23:00-23:30"}
//	cmd, _ := NewUpdateCourierCommand(1, CourierPatchInput{WorkingHours: &hours})
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrUnknownCourier):
//	    // 400
//	case errors.Is(err, ErrValidation):
//	    // 400
//	}
type UpdateCourierCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.OrderDispatcher
}

func NewUpdateCourierCommandHandler(uowFactory UoWFactory, dispatcher services.OrderDispatcher) UpdateCourierCommandHandler {
	return UpdateCourierCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle returns the courier after the update. Patched values are validated before anything is
// written; an empty patch returns the stored courier unchanged.
func (h UpdateCourierCommandHandler) Handle(ctx context.Context, cmd UpdateCourierCommand) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	patch, err := buildPatch(cmd.Patch())
	if err != nil {
		return nil, validationError(err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	c, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrUnknownCourier
	}
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return c, nil
	}

	if err = c.Apply(patch); err != nil {
		return nil, validationError(err)
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	var released []*order.Order
	if patch.AffectsEligibility() {
		courierID := c.ID()
		held, findErr := orderRepo.Find(ctx, order.Filter{
			CourierID:  &courierID,
			Incomplete: true,
			ForUpdate:  true,
		})
		if findErr != nil {
			return nil, findErr
		}

		released, err = h.dispatcher.Reconcile(c, held)
		if err != nil {
			return nil, err
		}

		for _, o := range released {
			if err = orderRepo.Update(ctx, o); err != nil {
				return nil, err
			}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrdersUnassignedTotal.Add(float64(len(released)))
	return c, nil
}

func buildPatch(input CourierPatchInput) (courier.Patch, error) {
	var (
		patch    courier.Patch
		buildErr []error
	)

	if input.Type != nil {
		courierType, err := courier.ParseType(*input.Type)
		buildErr = append(buildErr, err)
		patch.Type = &courierType
	}
	if input.Regions != nil {
		regions := *input.Regions
		patch.Regions = &regions
	}
	if input.WorkingHours != nil {
		hours, err := kernel.ParseTimeIntervals(*input.WorkingHours)
		buildErr = append(buildErr, err)
		patch.WorkingHours = &hours
	}

	if err := errors.Join(buildErr...); err != nil {
		return courier.Patch{}, err
	}

	return patch, nil
}
