package commands

import (
	"errors"
	"fmt"
	"slices"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateCourierCommandIsNotConstructed = errors.New(
	"UpdateCourierCommand must be created via NewUpdateCourierCommand constructor",
)

// CourierPatchInput carries the optional fields of a courier update as received from the
// boundary. A nil field is absent.
type CourierPatchInput struct {
	Type         *string
	Regions      *[]int64
	WorkingHours *[]string
}

// UpdateCourierCommand replaces the present fields of a courier profile.
type UpdateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID int64
	patch     CourierPatchInput

	guard guard.ConstructorGuard
}

func NewUpdateCourierCommand(courierID int64, patch CourierPatchInput) (UpdateCourierCommand, error) {
	cmd := UpdateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(cmd.setCourierID(courierID), cmd.setPatch(patch)); err != nil {
		return UpdateCourierCommand{}, err
	}

	return cmd, nil
}

func (c UpdateCourierCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierCommandIsNotConstructed)
}

func (c UpdateCourierCommand) CourierID() int64 {
	return c.courierID
}

func (c UpdateCourierCommand) Patch() CourierPatchInput {
	return c.patch
}

func (c *UpdateCourierCommand) setCourierID(courierID int64) error {
	if courierID < 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", fmt.Errorf("%d is negative", courierID))
	}

	c.courierID = courierID
	return nil
}

func (c *UpdateCourierCommand) setPatch(patch CourierPatchInput) error {
	if patch.Regions != nil {
		regions := slices.Clone(*patch.Regions)
		patch.Regions = &regions
	}
	if patch.WorkingHours != nil {
		hours := slices.Clone(*patch.WorkingHours)
		patch.WorkingHours = &hours
	}

	c.patch = patch
	return nil
}
