package queries

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetCourierInfoQueryIsNotConstructed = errors.New(
		"GetCourierInfoQuery must be created via NewGetCourierInfoQuery constructor",
	)
	// ErrCourierNotFound is returned when the requested courier does not exist.
	ErrCourierNotFound = errors.New("courier not found")
)

// GetCourierInfoQuery reads one courier profile with its earnings and rating.
type GetCourierInfoQuery struct { //nolint:recvcheck //using for validation
	courierID int64
	guard     guard.ConstructorGuard
}

func NewGetCourierInfoQuery(courierID int64) (GetCourierInfoQuery, error) {
	query := GetCourierInfoQuery{guard: guard.NewConstructorGuard()}
	if err := query.setCourierID(courierID); err != nil {
		return GetCourierInfoQuery{}, err
	}
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierInfoQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierInfoQueryIsNotConstructed)
}

func (q GetCourierInfoQuery) CourierID() int64 {
	return q.courierID
}

func (q *GetCourierInfoQuery) setCourierID(courierID int64) error {
	if courierID < 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", fmt.Errorf("%d is negative", courierID))
	}
	q.courierID = courierID
	return nil
}

// CourierInfoResponse extends the profile with the rating, nil while it is undefined.
type CourierInfoResponse struct {
	CourierResponse
	Rating *float64
}
