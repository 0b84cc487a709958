package commands

import (
	"context"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/core/domain/model/route"
)

// CreateRouteCommandHandler persists a new route. Subscribers of the
// dashboard see routes.created once the transaction commits.
type CreateRouteCommandHandler struct {
	uowFactory RouteUoWFactory
}

func NewCreateRouteCommandHandler(uowFactory RouteUoWFactory) CreateRouteCommandHandler {
	return CreateRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the route and returns its id.
func (h *CreateRouteCommandHandler) Handle(ctx context.Context, cmd CreateRouteCommand) (kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	r, err := route.NewRoute(cmd.Name(), cmd.DriverName())
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

	if err = uow.RouteRepository().Add(ctx, r); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return r.ID(), nil
}
