package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

const (
	// WeightMin is the lightest order accepted.
	WeightMin = 0.01
	// WeightMax is the heaviest order accepted.
	WeightMax = 50.0
)

var (
	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a delivery task.
//
// Business rules:
//   - Weight is within [WeightMin..WeightMax] and region is positive
//   - courierID and assignTime are either both set or both empty
//   - Status follows Created -> Assigned -> Completed, with Assigned -> Created on unassign
//   - A completed order is immutable
type Order struct {
	// id uniquely identifies the order
	id int64

	// weight of the parcel
	weight float64

	// region the order is delivered in
	region int64

	// deliveryHours are the acceptable delivery windows, cleared on completion
	deliveryHours []kernel.TimeInterval

	// courierID references the assigned courier, nil when unassigned
	courierID *int64

	// assignTime is set together with courierID
	assignTime *time.Time

	// completeTime is set once on completion
	completeTime *time.Time

	// cost is the earning credited for this order on completion
	cost *int64

	// status is the current lifecycle state
	status Status

	// isConstructed ensures the order was properly constructed
	isConstructed bool
}

// NewOrder creates an unassigned order in the Created status.
func NewOrder(id int64, weight float64, region int64, deliveryHours []kernel.TimeInterval) (*Order, error) {
	order := &Order{
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setWeight(weight),
		order.setRegion(region),
		order.setDeliveryHours(deliveryHours),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistent storage and checks that the assignment
// and completion state is consistent with the status.
func RestoreOrder(
	id int64,
	weight float64,
	region int64,
	deliveryHours []kernel.TimeInterval,
	status Status,
	courierID *int64,
	assignTime *time.Time,
	completeTime *time.Time,
	cost *int64,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setWeight(weight),
		order.setRegion(region),
		order.setDeliveryHours(deliveryHours),
		order.setState(status, courierID, assignTime, completeTime, cost),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate checks that the Order was created with a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() int64 {
	return o.id
}

func (o *Order) Weight() float64 {
	return o.weight
}

func (o *Order) Region() int64 {
	return o.region
}

// DeliveryHours returns a copy of the delivery windows.
func (o *Order) DeliveryHours() []kernel.TimeInterval {
	return slices.Clone(o.deliveryHours)
}

func (o *Order) Status() Status {
	return o.status
}

// CourierID returns the assigned courier or nil.
func (o *Order) CourierID() *int64 {
	return o.courierID
}

// AssignTime returns when the order was assigned or nil.
func (o *Order) AssignTime() *time.Time {
	return o.assignTime
}

// CompleteTime returns when the order was completed or nil.
func (o *Order) CompleteTime() *time.Time {
	return o.completeTime
}

// Cost returns the earning credited on completion or nil.
func (o *Order) Cost() *int64 {
	return o.cost
}

func (o *Order) IsCompleted() bool {
	return o.status == Completed
}

// IsAssignedTo reports whether courierID carries this order.
func (o *Order) IsAssignedTo(courierID int64) bool {
	return o.courierID != nil && *o.courierID == courierID
}

// Assign binds the order to a courier at the given time.
func (o *Order) Assign(courierID int64, at time.Time) error {
	if courierID < 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", fmt.Errorf("%d is negative", courierID))
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	at = at.UTC()
	o.status = newStatus
	o.courierID = &courierID
	o.assignTime = &at
	return nil
}

// Unassign returns an assigned order to the pool of unassigned orders.
func (o *Order) Unassign() error {
	newStatus, err := o.status.Unassign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = nil
	o.assignTime = nil
	o.cost = nil
	return nil
}

// Complete marks an assigned order as delivered. Delivery hours are dropped since the
// order is no longer pending.
func (o *Order) Complete(at time.Time, cost int64) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}
	if cost < 0 {
		return errs.NewValueIsInvalidErrorWithCause("cost", fmt.Errorf("%d is negative", cost))
	}

	at = at.UTC()
	o.status = newStatus
	o.completeTime = &at
	o.cost = &cost
	o.deliveryHours = nil
	return nil
}

func (o *Order) setID(id int64) error {
	if id < 0 {
		return errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%d is negative", id))
	}
	o.id = id
	return nil
}

func (o *Order) setWeight(weight float64) error {
	if weight < WeightMin || weight > WeightMax {
		return errs.NewValueIsOutOfRangeError("weight", weight, WeightMin, WeightMax)
	}
	o.weight = weight
	return nil
}

func (o *Order) setRegion(region int64) error {
	if region <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("region", fmt.Errorf("%d is not positive", region))
	}
	o.region = region
	return nil
}

func (o *Order) setDeliveryHours(deliveryHours []kernel.TimeInterval) error {
	for _, ti := range deliveryHours {
		if err := ti.Validate(); err != nil {
			return err
		}
	}
	o.deliveryHours = slices.Clone(deliveryHours)
	return nil
}

func (o *Order) setState(
	status Status,
	courierID *int64,
	assignTime *time.Time,
	completeTime *time.Time,
	cost *int64,
) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if (courierID == nil) != (assignTime == nil) {
		return errs.NewValueIsInvalidErrorWithCause("assignment",
			errors.New("courier and assign time must be set together"))
	}
	if err := status.ValidateCanHaveCourier(courierID != nil); err != nil {
		return err
	}
	if (status == Completed) != (completeTime != nil && cost != nil) {
		return errs.NewValueIsInvalidErrorWithCause("completion",
			fmt.Errorf("%s order must have complete time and cost only when completed", status))
	}

	o.status = status
	o.courierID = courierID
	o.assignTime = assignTime
	o.completeTime = completeTime
	o.cost = cost
	return nil
}
