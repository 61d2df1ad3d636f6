package commands

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCourier is returned when the referenced courier does not exist.
	ErrUnknownCourier = errors.New("unknown courier id")
	// ErrUnknownOrder is returned when no order matches the id and the courier.
	ErrUnknownOrder = errors.New("unknown order id")
	// ErrInvalidTimeFormat is returned for a complete time not in the canonical layout.
	ErrInvalidTimeFormat = errors.New("invalid time format")
	// ErrValidation marks malformed entity fields. Handlers wrap domain errors with it.
	ErrValidation = errors.New("validation failed")
)

func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

// ItemError is the failure of a single batch item. ID is the item id, or the id value as
// received when the item could not be read.
type ItemError struct {
	ID  any
	Err error
}

// Rejection marks a batch item the boundary could not read, such as a field of the wrong
// JSON type. The item is reported under RawID and never reaches the domain model.
type Rejection struct {
	RawID any
	Err   error
}

// BatchValidationError is returned by batch creates when at least one item fails.
// Nothing from the batch is persisted.
type BatchValidationError struct {
	Entity string
	Items  []ItemError
}

func (e *BatchValidationError) Error() string {
	ids := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		ids = append(ids, fmt.Sprint(item.ID))
	}
	return fmt.Sprintf("%s: invalid %s %s", ErrValidation, e.Entity, strings.Join(ids, ", "))
}

func (e *BatchValidationError) Unwrap() error {
	return ErrValidation
}
