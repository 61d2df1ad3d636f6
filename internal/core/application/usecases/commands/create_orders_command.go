package commands

import (
	"errors"
	"slices"

	"dispatch/internal/pkg/guard"
)

var ErrCreateOrdersCommandIsNotConstructed = errors.New(
	"CreateOrdersCommand must be created via NewCreateOrdersCommand constructor",
)

// OrderInput is an order as received from the boundary: shape checked, values unchecked.
type OrderInput struct {
	ID            int64
	Weight        float64
	Region        int64
	DeliveryHours []string
	Rejection     *Rejection
}

// CreateOrdersCommand imports a batch of orders. Either every order is created or none.
type CreateOrdersCommand struct {
	items []OrderInput
	guard guard.ConstructorGuard
}

func NewCreateOrdersCommand(items []OrderInput) CreateOrdersCommand {
	return CreateOrdersCommand{
		items: slices.Clone(items),
		guard: guard.NewConstructorGuard(),
	}
}

func (c CreateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrdersCommandIsNotConstructed)
}

func (c CreateOrdersCommand) Items() []OrderInput {
	return slices.Clone(c.items)
}
