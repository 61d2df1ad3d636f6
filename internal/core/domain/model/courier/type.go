package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// BaseEarning is the flat payment for one completed order before the type multiplier is applied.
const BaseEarning int64 = 500

// Type is the courier transport type. It determines the carrying capacity and the earning
// multiplier applied to every completed order.
type Type string

const (
	Foot Type = "foot"
	Bike Type = "bike"
	Car  Type = "car"
)

type typePolicy struct {
	capacity   float64
	multiplier int64
}

func getTypePolicies() map[Type]typePolicy {
	return map[Type]typePolicy{
		Foot: {capacity: 10, multiplier: 2},
		Bike: {capacity: 15, multiplier: 5},
		Car:  {capacity: 50, multiplier: 9},
	}
}

// ParseType converts a wire value into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate returns an error for anything but foot, bike or car.
func (t Type) Validate() error {
	if _, ok := getTypePolicies()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("courier_type",
			fmt.Errorf("%q is not one of foot, bike, car", string(t)))
	}
	return nil
}

// Capacity is the maximum weight of a single order the courier can carry.
func (t Type) Capacity() float64 {
	return getTypePolicies()[t].capacity
}

// EarningMultiplier scales BaseEarning for each completed order.
func (t Type) EarningMultiplier() int64 {
	return getTypePolicies()[t].multiplier
}

// Earning is the amount credited for one completed order.
func (t Type) Earning() int64 {
	return BaseEarning * t.EarningMultiplier()
}

func (t Type) String() string {
	return string(t)
}
