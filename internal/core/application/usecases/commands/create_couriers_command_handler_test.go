package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCouriersCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewCreateCouriersCommand([]commands.CourierInput{
		{ID: 2, Type: "bike", Regions: []int64{22}, WorkingHours: []string{"09:00-18:00"}},
		{ID: 1, Type: "foot", Regions: []int64{1, 12, 22}, WorkingHours: []string{"11:35-14:05", "09:00-11:00"}},
	})

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	factory := new(MockCourierUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	courierRepo.On("Exists", ctx, mock.AnythingOfType("int64")).Return(false, nil).Twice()
	courierRepo.On("Add", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreateCouriersCommandHandler(factory)
	ids, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, ids)
	courierRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateCouriersCommandHandler_Handle_ReportsEveryInvalidItem(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewCreateCouriersCommand([]commands.CourierInput{
		{ID: 1, Type: "foot", Regions: []int64{1}, WorkingHours: []string{"09:00-11:00"}},
		{ID: 2, Type: "plane", Regions: []int64{1}, WorkingHours: []string{"09:00-11:00"}},
		{ID: 3, Type: "car", Regions: []int64{1}, WorkingHours: []string{"11:00-09:00"}},
		{ID: 1, Type: "car", Regions: []int64{1}, WorkingHours: nil},
		{ID: 4, Type: "car", Regions: []int64{1}, WorkingHours: nil},
	})

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	factory := new(MockCourierUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	courierRepo.On("Exists", ctx, int64(1)).Return(false, nil).Once()
	courierRepo.On("Exists", ctx, int64(4)).Return(true, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreateCouriersCommandHandler(factory)
	ids, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, ids)
	require.ErrorIs(t, err, commands.ErrValidation)

	var batchErr *commands.BatchValidationError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, "couriers", batchErr.Entity)
	require.Len(t, batchErr.Items, 4)

	got := make([]any, 0, len(batchErr.Items))
	for _, item := range batchErr.Items {
		got = append(got, item.ID)
	}
	assert.Equal(t, []any{int64(2), int64(3), int64(1), int64(4)}, got)
	assert.ErrorIs(t, batchErr.Items[0].Err, commands.ErrValidation)
	assert.ErrorIs(t, batchErr.Items[1].Err, commands.ErrValidation)
	assert.ErrorIs(t, batchErr.Items[2].Err, errs.ErrObjectAlreadyExists)
	assert.ErrorIs(t, batchErr.Items[3].Err, errs.ErrObjectAlreadyExists)

	courierRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateCouriersCommandHandler_Handle_RejectedItemReportedUnderRawID(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewCreateCouriersCommand([]commands.CourierInput{
		{ID: 1, Type: "foot", Regions: []int64{1}, WorkingHours: []string{"09:00-11:00"}},
		{Rejection: &commands.Rejection{RawID: "abc", Err: errs.NewValueIsInvalidError("courier_id")}},
	})

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	factory := new(MockCourierUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	courierRepo.On("Exists", ctx, int64(1)).Return(false, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreateCouriersCommandHandler(factory)
	ids, err := handler.Handle(ctx, cmd)

	assert.Nil(t, ids)
	var batchErr *commands.BatchValidationError
	require.ErrorAs(t, err, &batchErr)
	require.Len(t, batchErr.Items, 1)
	assert.Equal(t, "abc", batchErr.Items[0].ID)
	assert.ErrorIs(t, batchErr.Items[0].Err, commands.ErrValidation)
	assert.ErrorIs(t, batchErr.Items[0].Err, errs.ErrValueIsInvalid)

	courierRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateCouriersCommandHandler_Handle_StoreError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewCreateCouriersCommand([]commands.CourierInput{
		{ID: 1, Type: "foot", Regions: []int64{1}, WorkingHours: []string{"09:00-11:00"}},
	})

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	factory := new(MockCourierUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	courierRepo.On("Exists", ctx, int64(1)).Return(false, errors.New("connection refused")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreateCouriersCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "connection refused")
	assert.NotErrorIs(t, err, commands.ErrValidation)
}

func TestCreateCouriersCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockCourierUoWFactory)
	handler := commands.NewCreateCouriersCommandHandler(factory)

	_, err := handler.Handle(t.Context(), commands.CreateCouriersCommand{})

	require.ErrorIs(t, err, commands.ErrCreateCouriersCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestBatchValidationError_Error(t *testing.T) {
	err := &commands.BatchValidationError{
		Entity: "orders",
		Items:  []commands.ItemError{{ID: 3, Err: errors.New("x")}, {ID: 5, Err: errors.New("y")}},
	}

	assert.Equal(t, "validation failed: invalid orders 3, 5", err.Error())
}
