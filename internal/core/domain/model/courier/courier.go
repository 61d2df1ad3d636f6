package courier

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrOrderIsNotAssignedToCourier is returned when a courier completes an order it does not carry.
	ErrOrderIsNotAssignedToCourier = errors.New("order is not assigned to this courier")
)

// Courier is the aggregate root describing who can deliver what, where and when.
//
// Key responsibilities:
//   - Holding the courier profile: type, service regions and working hours
//   - Deciding whether a given order is eligible for this courier
//   - Accruing earnings and the completed orders counter when an order is completed
//
// Business rules:
//   - ID is non-negative and immutable
//   - Regions are positive and unique
//   - Earnings never decrease and only grow on order completion
//   - A profile change is applied atomically: either every patched field is valid
//     and written, or nothing changes
//
// Example usage:
//
//	hours, _ := kernel.ParseTimeIntervals([]string{"09:00-11:00"})
//	c, err := courier.NewCourier(1, courier.Foot, []int64{5, 6}, hours)
//	if err != nil {
//	    // Handle construction error
//	}
type Courier struct {
	// id uniquely identifies the courier
	id int64
	// courierType determines capacity and earnings
	courierType Type
	// regions the courier serves
	regions []int64
	// workingHours is the ordered working schedule
	workingHours []kernel.TimeInterval
	// earnings accumulated from completed orders
	earnings int64
	// completedOrders gates the rating computation
	completedOrders int64
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a courier with zero earnings.
// All parameters are validated and the errors aggregated.
func NewCourier(id int64, courierType Type, regions []int64, workingHours []kernel.TimeInterval) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setType(courierType),
		courier.setRegions(regions),
		courier.setWorkingHours(workingHours),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage, including its
// earnings and completed orders counter.
func RestoreCourier(
	id int64,
	courierType Type,
	regions []int64,
	workingHours []kernel.TimeInterval,
	earnings int64,
	completedOrders int64,
) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setType(courierType),
		courier.setRegions(regions),
		courier.setWorkingHours(workingHours),
		courier.setEarnings(earnings, completedOrders),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// IsEqual compares two couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id == other.id
}

// Validate checks that the Courier was created with a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) ID() int64 {
	return c.id
}

func (c *Courier) Type() Type {
	return c.courierType
}

// Regions returns a copy of the service regions.
func (c *Courier) Regions() []int64 {
	return slices.Clone(c.regions)
}

// WorkingHours returns a copy of the working schedule.
func (c *Courier) WorkingHours() []kernel.TimeInterval {
	return slices.Clone(c.workingHours)
}

func (c *Courier) Earnings() int64 {
	return c.earnings
}

func (c *Courier) CompletedOrders() int64 {
	return c.completedOrders
}

// ServesRegion reports whether region is one of the courier's service regions.
func (c *Courier) ServesRegion(region int64) bool {
	return slices.Contains(c.regions, region)
}

// CanTakeOrder checks whether the order is eligible for this courier without changing anything.
//
// Business rules:
//   - The order region must be one of the courier's regions
//   - The order weight must not exceed the courier type capacity
//   - At least one working interval must overlap at least one delivery interval
func (c *Courier) CanTakeOrder(o *order.Order) (bool, error) {
	if err := errors.Join(c.Validate(), o.Validate()); err != nil {
		return false, err
	}

	return c.ServesRegion(o.Region()) &&
		o.Weight() <= c.courierType.Capacity() &&
		kernel.AnyOverlap(c.workingHours, o.DeliveryHours()), nil
}

// CompleteOrder completes an order carried by the courier and credits the earning of its type.
// The order must be assigned to this courier and not be completed yet.
//
// State changes:
//   - The order becomes Completed with completeTime and cost set
//   - Earnings grow by BaseEarning * multiplier
//   - The completed orders counter grows by one
func (c *Courier) CompleteOrder(o *order.Order, completeTime time.Time) error {
	if err := errors.Join(c.Validate(), o.Validate()); err != nil {
		return err
	}
	if !o.IsAssignedTo(c.id) {
		return ErrOrderIsNotAssignedToCourier
	}

	cost := c.courierType.Earning()
	if err := o.Complete(completeTime, cost); err != nil {
		return err
	}

	c.earnings += cost
	c.completedOrders++
	return nil
}

// Apply writes every field present in the patch after validating all of them.
// Nothing changes if any patched value is invalid.
func (c *Courier) Apply(patch Patch) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if patch.IsEmpty() {
		return nil
	}

	next := *c
	var applyErrs []error
	if patch.Type != nil {
		applyErrs = append(applyErrs, next.setType(*patch.Type))
	}
	if patch.Regions != nil {
		applyErrs = append(applyErrs, next.setRegions(*patch.Regions))
	}
	if patch.WorkingHours != nil {
		applyErrs = append(applyErrs, next.setWorkingHours(*patch.WorkingHours))
	}
	if err := errors.Join(applyErrs...); err != nil {
		return err
	}

	*c = next
	return nil
}

func (c *Courier) setID(id int64) error {
	if id < 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", fmt.Errorf("%d is negative", id))
	}

	c.id = id
	return nil
}

func (c *Courier) setType(courierType Type) error {
	if err := courierType.Validate(); err != nil {
		return err
	}

	c.courierType = courierType
	return nil
}

func (c *Courier) setRegions(regions []int64) error {
	seen := make(map[int64]struct{}, len(regions))
	for _, r := range regions {
		if r <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("regions", fmt.Errorf("%d is not positive", r))
		}
		if _, ok := seen[r]; ok {
			return errs.NewValueIsInvalidErrorWithCause("regions", fmt.Errorf("%d is duplicated", r))
		}
		seen[r] = struct{}{}
	}

	c.regions = slices.Clone(regions)
	return nil
}

func (c *Courier) setWorkingHours(workingHours []kernel.TimeInterval) error {
	for _, ti := range workingHours {
		if err := ti.Validate(); err != nil {
			return err
		}
	}

	c.workingHours = slices.Clone(workingHours)
	return nil
}

func (c *Courier) setEarnings(earnings int64, completedOrders int64) error {
	if earnings < 0 {
		return errs.NewValueIsInvalidErrorWithCause("earnings", fmt.Errorf("%d is negative", earnings))
	}
	if completedOrders < 0 {
		return errs.NewValueIsInvalidErrorWithCause("completed_orders", fmt.Errorf("%d is negative", completedOrders))
	}

	c.earnings = earnings
	c.completedOrders = completedOrders
	return nil
}
