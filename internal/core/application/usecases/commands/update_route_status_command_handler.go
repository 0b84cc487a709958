package commands

import (
	"context"
)

// UpdateRouteStatusCommandHandler sets the status of a route.
type UpdateRouteStatusCommandHandler struct {
	uowFactory RouteUoWFactory
}

func NewUpdateRouteStatusCommandHandler(uowFactory RouteUoWFactory) UpdateRouteStatusCommandHandler {
	return UpdateRouteStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle locks the route row, changes its status and saves it. Concurrent
// updates of one route are applied one after another.
func (h *UpdateRouteStatusCommandHandler) Handle(ctx context.Context, cmd UpdateRouteStatusCommand) error {
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

	repo := uow.RouteRepository()
	r, err := repo.GetForUpdate(ctx, cmd.RouteID())
	if err != nil {
		return err
	}

	if err = r.ChangeStatus(cmd.Status()); err != nil {
		return err
	}

	if err = repo.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
