package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand reports that a courier delivered an order. The complete time is kept
// as received so the handler can check it after the order and the courier.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	courierID    int64
	orderID      int64
	completeTime string

	guard guard.ConstructorGuard
}

func NewCompleteOrderCommand(courierID int64, orderID int64, completeTime string) (CompleteOrderCommand, error) {
	cmd := CompleteOrderCommand{
		completeTime: completeTime,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(cmd.setCourierID(courierID), cmd.setOrderID(orderID)); err != nil {
		return CompleteOrderCommand{}, err
	}

	return cmd, nil
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

func (c CompleteOrderCommand) CourierID() int64 {
	return c.courierID
}

func (c CompleteOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c CompleteOrderCommand) CompleteTime() string {
	return c.completeTime
}

func (c *CompleteOrderCommand) setCourierID(courierID int64) error {
	if courierID < 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", fmt.Errorf("%d is negative", courierID))
	}

	c.courierID = courierID
	return nil
}

func (c *CompleteOrderCommand) setOrderID(orderID int64) error {
	if orderID < 0 {
		return errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%d is negative", orderID))
	}

	c.orderID = orderID
	return nil
}
