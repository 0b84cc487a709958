package commands_test

import (
	"errors"
	"testing"

	"routetracker/internal/core/application/usecases/commands"
	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/core/domain/model/order"
	"routetracker/internal/core/domain/model/route"
	"routetracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("valid_input", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(3, "X1", "Bob", "1 Main St")

		require.NoError(t, err)
		assert.Equal(t, kernel.ID(3), cmd.RouteID())
		assert.Equal(t, "X1", cmd.Code())
		assert.Equal(t, "Bob", cmd.CustomerName())
		assert.Equal(t, "1 Main St", cmd.Address())
	})

	t.Run("every_missing_field_is_reported", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(0, "", "", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		for _, field := range []string{"route", "code", "customer_name", "address"} {
			assert.Contains(t, err.Error(), field)
		}
	})
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand(3, "X1", "Bob", "1 Main St")

	routeRepo := new(MockRouteRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		routeRepo.On("Get", ctx, kernel.ID(3)).Return(restoreRoute(3, route.Planned), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				_ = args.Get(1).(*order.Order).MarkPersisted(11, fixedTime, fixedTime)
			}).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	id, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, kernel.ID(11), id)
	routeRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_RouteNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand(9, "X1", "Bob", "1 Main St")

	routeRepo := new(MockRouteRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RouteRepository").Return(routeRepo).Once()
	routeRepo.On("Get", ctx, kernel.ID(9)).Return(nil, errs.NewObjectNotFoundError("route", kernel.ID(9))).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "OrderRepository")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_DuplicateCode(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand(3, "X1", "Bob", "1 Main St")

	routeRepo := new(MockRouteRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RouteRepository").Return(routeRepo).Once()
	routeRepo.On("Get", ctx, kernel.ID(3)).Return(restoreRoute(3, route.Planned), nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Add", ctx, mock.Anything).Return(errs.NewConflictError("code", "X1")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand(3, "X1", "Bob", "1 Main St")

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
	uow.AssertNotCalled(t, "Rollback", mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name    string
		current order.Status
		next    order.Status
	}{
		{name: "pending_to_assigned", current: order.Pending, next: order.Assigned},
		{name: "in_transit_to_delivered", current: order.InTransit, next: order.Delivered},
		{name: "failed_to_pending_retry", current: order.Failed, next: order.Pending},
		{name: "pending_to_delivered", current: order.Pending, next: order.Delivered},
		{name: "delivered_to_failed", current: order.Delivered, next: order.Failed},
		{name: "same_status", current: order.InTransit, next: order.InTransit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			cmd, err := commands.NewUpdateOrderStatusCommand(11, tt.next)
			require.NoError(t, err)

			existing := restoreOrder(11, 3, "X1", tt.current)
			repo := new(MockOrderRepository)
			uow := new(MockUoW)
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("OrderRepository").Return(repo).Once(),
				repo.On("GetForUpdate", ctx, kernel.ID(11)).Return(existing, nil).Once(),
				repo.On("Update", ctx, existing).Return(nil).Once(),
				uow.On("Commit", ctx).Return(nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)
			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			h := commands.NewUpdateOrderStatusCommandHandler(factory)
			require.NoError(t, h.Handle(ctx, cmd))

			assert.Equal(t, tt.next, existing.Status())
			repo.AssertExpectations(t)
			uow.AssertExpectations(t)
		})
	}
}

func TestDeleteOrderCommandHandler_Handle(t *testing.T) {
	t.Run("deletes_existing_order", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewDeleteOrderCommand(11)
		require.NoError(t, err)

		existing := restoreOrder(11, 3, "X1", order.Pending)
		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("GetForUpdate", ctx, kernel.ID(11)).Return(existing, nil).Once(),
			repo.On("Delete", ctx, existing).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewDeleteOrderCommandHandler(factory)
		require.NoError(t, h.Handle(ctx, cmd))

		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("missing_order", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewDeleteOrderCommand(11)

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		repo.On("GetForUpdate", ctx, kernel.ID(11)).Return(nil, errs.NewObjectNotFoundError("order", kernel.ID(11))).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewDeleteOrderCommandHandler(factory)

		require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	})

	t.Run("zero_value_command", func(t *testing.T) {
		h := commands.NewDeleteOrderCommandHandler(new(MockOrderUoWFactory))

		require.ErrorIs(t, h.Handle(t.Context(), commands.DeleteOrderCommand{}), commands.ErrDeleteOrderCommandIsNotConstructed)
	})
}
