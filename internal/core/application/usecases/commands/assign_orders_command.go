package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrdersCommandIsNotConstructed = errors.New(
	"AssignOrdersCommand must be created via NewAssignOrdersCommand constructor",
)

// AssignOrdersCommand asks for a batch of orders for a courier.
//
// Example:
//
//	cmd, _ := NewAssignOrdersCommand(1)
//	result, err := handler.Handle(ctx, cmd)
//	if err == nil && result.AssignedTime != nil {
//	    fmt.Println(result.OrderIDs, kernel.FormatTimestamp(*result.AssignedTime))
//	}
type AssignOrdersCommand struct { //nolint:recvcheck //using for validation
	courierID int64
	guard     guard.ConstructorGuard
}

func NewAssignOrdersCommand(courierID int64) (AssignOrdersCommand, error) {
	cmd := AssignOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCourierID(courierID); err != nil {
		return AssignOrdersCommand{}, err
	}

	return cmd, nil
}

func (c AssignOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrdersCommandIsNotConstructed)
}

func (c AssignOrdersCommand) CourierID() int64 {
	return c.courierID
}

func (c *AssignOrdersCommand) setCourierID(courierID int64) error {
	if courierID < 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", fmt.Errorf("%d is negative", courierID))
	}

	c.courierID = courierID
	return nil
}
