package commands

import (
	"errors"
	"slices"

	"dispatch/internal/pkg/guard"
)

var ErrCreateCouriersCommandIsNotConstructed = errors.New(
	"CreateCouriersCommand must be created via NewCreateCouriersCommand constructor",
)

// CourierInput is a courier as received from the boundary: shape checked, values unchecked.
type CourierInput struct {
	ID           int64
	Type         string
	Regions      []int64
	WorkingHours []string
	Rejection    *Rejection
}

// CreateCouriersCommand imports a batch of couriers. Either every courier is created or none.
//
// Example:
//
//	cmd := NewCreateCouriersCommand([]CourierInput{{ID: 1, Type: "foot", Regions: []int64{1}, WorkingHours: []string{"09:00-18:00"}}})
//	ids, err := handler.Handle(ctx, cmd)
//	var batchErr *BatchValidationError
//	if errors.As(err, &batchErr) {
//	    // report batchErr.Items
//	}
type CreateCouriersCommand struct {
	items []CourierInput
	guard guard.ConstructorGuard
}

func NewCreateCouriersCommand(items []CourierInput) CreateCouriersCommand {
	return CreateCouriersCommand{
		items: slices.Clone(items),
		guard: guard.NewConstructorGuard(),
	}
}

func (c CreateCouriersCommand) Validate() error {
	return c.guard.Validate(ErrCreateCouriersCommandIsNotConstructed)
}

func (c CreateCouriersCommand) Items() []CourierInput {
	return slices.Clone(c.items)
}
