package commands

import (
	"context"
	"fmt"
)

// DeleteRouteCommandHandler deletes a route and its orders in one transaction.
//
// Orders are deleted one by one before the route so that viewers of the route
// receive orders.deleted for each of them, followed by route.deleted. The
// route row is locked before its orders are listed: a concurrent CreateOrder
// either commits first and its order is listed, or fails the foreign key check
// once the route is gone.
type DeleteRouteCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteRouteCommandHandler(uowFactory UoWFactory) DeleteRouteCommandHandler {
	return DeleteRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *DeleteRouteCommandHandler) Handle(ctx context.Context, cmd DeleteRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routeRepo := uow.RouteRepository()
	orderRepo := uow.OrderRepository()

	r, err := routeRepo.GetForUpdate(ctx, cmd.RouteID())
	if err != nil {
		return err
	}

	orders, err := orderRepo.GetAllByRoute(ctx, r.ID())
	if err != nil {
		return err
	}

	for _, o := range orders {
		if err = orderRepo.Delete(ctx, o); err != nil {
			return fmt.Errorf("delete order %s of route %s: %w", o.ID(), r.ID(), err)
		}
	}

	if err = routeRepo.Delete(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
