package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const completeTime = "2021-01-10T10:33:01.420000Z"

func completeFilter(orderID, courierID int64, forUpdate bool) order.Filter {
	return order.Filter{ID: ptr(orderID), CourierID: ptr(courierID), ForUpdate: forUpdate}
}

type completeFixture struct {
	courierRepo *MockCourierRepository
	orderRepo   *MockOrderRepository
	uow         *MockUoW
	factory     *MockUoWFactory
}

func newCompleteFixture() completeFixture {
	f := completeFixture{
		courierRepo: new(MockCourierRepository),
		orderRepo:   new(MockOrderRepository),
		uow:         new(MockUoW),
		factory:     new(MockUoWFactory),
	}
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("CourierRepository").Return(f.courierRepo).Once()
	f.uow.On("OrderRepository").Return(f.orderRepo).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()
	return f
}

func TestCompleteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCompleteOrderCommand(1, 1, completeTime)

	c := newCourier(t, 1, courier.Foot, []int64{5, 6}, "09:00-11:00")
	o := newOrder(t, 1, 0.23, 5, "08:00-10:00")
	require.NoError(t, o.Assign(1, time.Date(2021, 1, 10, 10, 0, 0, 0, time.UTC)))

	f := newCompleteFixture()
	f.orderRepo.On("Find", ctx, completeFilter(1, 1, false)).Return([]*order.Order{o}, nil).Once()
	f.courierRepo.On("GetForUpdate", ctx, int64(1)).Return(c, nil).Once()
	f.orderRepo.On("Find", ctx, completeFilter(1, 1, true)).Return([]*order.Order{o}, nil).Once()
	f.orderRepo.On("Update", ctx, o).Return(nil).Once()
	f.courierRepo.On("Update", ctx, c).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	handler := commands.NewCompleteOrderCommandHandler(f.factory)
	id, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, int64(1000), c.Earnings())
	assert.Equal(t, int64(1), c.CompletedOrders())
	assert.True(t, o.IsCompleted())
	assert.Equal(t, time.Date(2021, 1, 10, 10, 33, 1, 420_000_000, time.UTC), *o.CompleteTime())
	f.orderRepo.AssertExpectations(t)
	f.courierRepo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
}

func TestCompleteOrderCommandHandler_Handle_AlreadyCompleted(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCompleteOrderCommand(1, 1, completeTime)

	c, err := courier.RestoreCourier(1, courier.Foot, []int64{5}, mustHours(t, "09:00-11:00"), 1000, 1)
	require.NoError(t, err)
	o := newOrder(t, 1, 0.23, 5, "08:00-10:00")
	require.NoError(t, o.Assign(1, time.Date(2021, 1, 10, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, o.Complete(time.Date(2021, 1, 10, 10, 20, 0, 0, time.UTC), 1000))

	f := newCompleteFixture()
	f.orderRepo.On("Find", ctx, completeFilter(1, 1, false)).Return([]*order.Order{o}, nil).Once()
	f.courierRepo.On("GetForUpdate", ctx, int64(1)).Return(c, nil).Once()
	f.orderRepo.On("Find", ctx, completeFilter(1, 1, true)).Return([]*order.Order{o}, nil).Once()

	handler := commands.NewCompleteOrderCommandHandler(f.factory)
	id, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, int64(1000), c.Earnings())
	assert.Equal(t, int64(1), c.CompletedOrders())
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.courierRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCompleteOrderCommandHandler_Handle_ErrorPrecedence(t *testing.T) {
	t.Run("unknown order wins over unknown courier and bad time", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewCompleteOrderCommand(9, 1, "yesterday")

		f := newCompleteFixture()
		f.orderRepo.On("Find", ctx, completeFilter(1, 9, false)).Return([]*order.Order{}, nil).Once()

		handler := commands.NewCompleteOrderCommandHandler(f.factory)
		_, err := handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrUnknownOrder)
		f.courierRepo.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("unknown courier wins over bad time", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewCompleteOrderCommand(9, 1, "yesterday")
		o := newOrder(t, 1, 1, 5, "08:00-10:00")
		require.NoError(t, o.Assign(9, time.Now()))

		f := newCompleteFixture()
		f.orderRepo.On("Find", ctx, completeFilter(1, 9, false)).Return([]*order.Order{o}, nil).Once()
		f.courierRepo.On("GetForUpdate", ctx, int64(9)).
			Return(nil, errs.NewObjectNotFoundError("courier", int64(9))).Once()

		handler := commands.NewCompleteOrderCommandHandler(f.factory)
		_, err := handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrUnknownCourier)
	})

	t.Run("invalid time format", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewCompleteOrderCommand(1, 1, "2021-01-10 10:33:01")
		c := newCourier(t, 1, courier.Foot, []int64{5}, "09:00-11:00")
		o := newOrder(t, 1, 1, 5, "08:00-10:00")
		require.NoError(t, o.Assign(1, time.Now()))

		f := newCompleteFixture()
		f.orderRepo.On("Find", ctx, completeFilter(1, 1, false)).Return([]*order.Order{o}, nil).Once()
		f.courierRepo.On("GetForUpdate", ctx, int64(1)).Return(c, nil).Once()

		handler := commands.NewCompleteOrderCommandHandler(f.factory)
		_, err := handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrInvalidTimeFormat)
		assert.False(t, o.IsCompleted())
	})
}

func TestCompleteOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	handler := commands.NewCompleteOrderCommandHandler(factory)

	_, err := handler.Handle(t.Context(), commands.CompleteOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCompleteOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestNewCompleteOrderCommand(t *testing.T) {
	cmd, err := commands.NewCompleteOrderCommand(2, 3, completeTime)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cmd.CourierID())
	assert.Equal(t, int64(3), cmd.OrderID())
	assert.Equal(t, completeTime, cmd.CompleteTime())

	_, err = commands.NewCompleteOrderCommand(-1, -1, completeTime)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "courier_id")
	assert.Contains(t, err.Error(), "order_id")
}
