package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHours(t *testing.T, values ...string) []kernel.TimeInterval {
	t.Helper()
	hours, err := kernel.ParseTimeIntervals(values)
	require.NoError(t, err)
	return hours
}

func createValidOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(1, 0.23, 5, mustHours(t, "08:00-10:00"))
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	hours := mustHours(t, "08:00-10:00", "12:00-13:00")

	t.Run("should create valid order with all valid parameters", func(t *testing.T) {
		o, err := order.NewOrder(7, 0.23, 5, hours)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, int64(7), o.ID())
		assert.InDelta(t, 0.23, o.Weight(), 1e-9)
		assert.Equal(t, int64(5), o.Region())
		assert.Equal(t, hours, o.DeliveryHours())
		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.CourierID())
		assert.Nil(t, o.AssignTime())
		assert.Nil(t, o.CompleteTime())
		assert.Nil(t, o.Cost())
		assert.False(t, o.IsCompleted())
	})

	t.Run("should accept weight bounds", func(t *testing.T) {
		_, err := order.NewOrder(1, order.WeightMin, 1, hours)
		require.NoError(t, err)

		_, err = order.NewOrder(2, order.WeightMax, 1, hours)
		require.NoError(t, err)
	})

	t.Run("should reject weight above max", func(t *testing.T) {
		o, err := order.NewOrder(1, 60, 1, hours)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "weight is 60")
	})

	t.Run("should reject weight below min", func(t *testing.T) {
		_, err := order.NewOrder(1, 0.001, 1, hours)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject negative id and non positive region together", func(t *testing.T) {
		o, err := order.NewOrder(-1, 1, 0, hours)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "order_id")
		assert.Contains(t, err.Error(), "region")
	})

	t.Run("should reject zero-value interval", func(t *testing.T) {
		_, err := order.NewOrder(1, 1, 1, []kernel.TimeInterval{{}})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should not share delivery hours with the caller", func(t *testing.T) {
		src := mustHours(t, "08:00-10:00")
		o, err := order.NewOrder(1, 1, 1, src)
		require.NoError(t, err)

		src[0] = mustHours(t, "20:00-21:00")[0]

		assert.Equal(t, "08:00-10:00", o.DeliveryHours()[0].String())
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("nil order", func(t *testing.T) {
		var o *order.Order
		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("zero value order", func(t *testing.T) {
		o := &order.Order{}
		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_IsEqual(t *testing.T) {
	a := createValidOrder(t)
	b, err := order.NewOrder(1, 3, 2, nil)
	require.NoError(t, err)
	c, err := order.NewOrder(2, 0.23, 5, nil)
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(nil))
}

func TestOrder_Assign(t *testing.T) {
	at := time.Date(2021, 1, 10, 10, 33, 1, 0, time.UTC)

	t.Run("should assign created order", func(t *testing.T) {
		o := createValidOrder(t)

		require.NoError(t, o.Assign(3, at))

		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.CourierID())
		assert.Equal(t, int64(3), *o.CourierID())
		require.NotNil(t, o.AssignTime())
		assert.Equal(t, at, *o.AssignTime())
		assert.True(t, o.IsAssignedTo(3))
		assert.False(t, o.IsAssignedTo(4))
	})

	t.Run("should not reassign an assigned order", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.Assign(3, at))

		err := o.Assign(4, at)

		require.Error(t, err)
		assert.True(t, o.IsAssignedTo(3))
	})

	t.Run("should reject negative courier id", func(t *testing.T) {
		o := createValidOrder(t)

		require.Error(t, o.Assign(-1, at))
		assert.Equal(t, order.Created, o.Status())
	})
}

func TestOrder_Unassign(t *testing.T) {
	at := time.Date(2021, 1, 10, 10, 33, 1, 0, time.UTC)

	t.Run("should clear courier and assign time", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.Assign(3, at))

		require.NoError(t, o.Unassign())

		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.CourierID())
		assert.Nil(t, o.AssignTime())
		assert.Nil(t, o.Cost())
	})

	t.Run("should fail for unassigned order", func(t *testing.T) {
		o := createValidOrder(t)

		assert.Error(t, o.Unassign())
	})

	t.Run("should fail for completed order", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.Assign(3, at))
		require.NoError(t, o.Complete(at.Add(time.Minute), 1000))

		require.Error(t, o.Unassign())
		assert.True(t, o.IsAssignedTo(3))
	})
}

func TestOrder_Complete(t *testing.T) {
	assignedAt := time.Date(2021, 1, 10, 10, 0, 0, 0, time.UTC)
	completedAt := assignedAt.Add(15 * time.Minute)

	t.Run("should complete assigned order", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.Assign(1, assignedAt))

		require.NoError(t, o.Complete(completedAt, 1000))

		assert.True(t, o.IsCompleted())
		require.NotNil(t, o.CompleteTime())
		assert.Equal(t, completedAt, *o.CompleteTime())
		require.NotNil(t, o.Cost())
		assert.Equal(t, int64(1000), *o.Cost())
		assert.Empty(t, o.DeliveryHours())
		assert.True(t, o.IsAssignedTo(1))
	})

	t.Run("should fail for unassigned order", func(t *testing.T) {
		o := createValidOrder(t)

		require.Error(t, o.Complete(completedAt, 1000))
		assert.Nil(t, o.CompleteTime())
	})

	t.Run("should not complete twice", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.Assign(1, assignedAt))
		require.NoError(t, o.Complete(completedAt, 1000))

		require.Error(t, o.Complete(completedAt.Add(time.Hour), 1000))
		assert.Equal(t, completedAt, *o.CompleteTime())
	})
}

func TestRestoreOrder(t *testing.T) {
	at := time.Date(2021, 1, 10, 10, 0, 0, 0, time.UTC)
	courierID := int64(2)
	cost := int64(1000)

	t.Run("should restore completed order", func(t *testing.T) {
		o, err := order.RestoreOrder(1, 2, 3, nil, order.Completed, &courierID, &at, &at, &cost)

		require.NoError(t, err)
		assert.True(t, o.IsCompleted())
		assert.True(t, o.IsAssignedTo(2))
	})

	t.Run("should restore created order", func(t *testing.T) {
		o, err := order.RestoreOrder(1, 2, 3, mustHours(t, "09:00-10:00"), order.Created, nil, nil, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, order.Created, o.Status())
	})

	t.Run("should reject courier without assign time", func(t *testing.T) {
		_, err := order.RestoreOrder(1, 2, 3, nil, order.Assigned, &courierID, nil, nil, nil)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject created order with courier", func(t *testing.T) {
		_, err := order.RestoreOrder(1, 2, 3, nil, order.Created, &courierID, &at, nil, nil)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject completed order without cost", func(t *testing.T) {
		_, err := order.RestoreOrder(1, 2, 3, nil, order.Completed, &courierID, &at, &at, nil)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(1, 2, 3, nil, order.Unknown, nil, nil, nil, nil)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
