package commands

import (
	"context"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/core/domain/model/order"
)

// CreateOrderCommandHandler adds an order to a route. Viewers of that route
// receive orders.created once the transaction commits.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle checks that the route exists, creates the order and returns its id.
// A duplicate code yields errs.ConflictError.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	o, err := order.NewOrder(cmd.RouteID(), cmd.Code(), cmd.CustomerName(), cmd.Address())
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.RouteRepository().Get(ctx, cmd.RouteID()); err != nil {
		return 0, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return o.ID(), nil
}
