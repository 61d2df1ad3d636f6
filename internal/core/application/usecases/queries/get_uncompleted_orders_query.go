package queries

import (
	"errors"
	"time"

	"dispatch/internal/pkg/guard"
)

var (
	ErrGetUncompletedOrdersQueryIsNotConstructed = errors.New(
		"GetUncompletedOrdersQuery must be created via NewGetUncompletedOrdersQuery constructor",
	)
)

// GetUncompletedOrdersQuery lists every order that is not completed yet, assigned or not.
type GetUncompletedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUncompletedOrdersQuery creates a query to retrieve pending orders.
func NewGetUncompletedOrdersQuery() GetUncompletedOrdersQuery {
	return GetUncompletedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUncompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUncompletedOrdersQueryIsNotConstructed)
}

// OrderResponse is the pending order read model. CourierID and AssignTime are nil for
// orders waiting in the unassigned pool.
type OrderResponse struct {
	ID            int64
	Weight        float64
	Region        int64
	DeliveryHours []string
	CourierID     *int64
	AssignTime    *time.Time
}
