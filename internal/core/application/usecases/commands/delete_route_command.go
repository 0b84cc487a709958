package commands

import (
	"errors"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/pkg/guard"
)

var ErrDeleteRouteCommandIsNotConstructed = errors.New(
	"DeleteRouteCommand must be created via NewDeleteRouteCommand constructor",
)

// DeleteRouteCommand removes a route together with all of its orders.
type DeleteRouteCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.ID

	guard guard.ConstructorGuard
}

func NewDeleteRouteCommand(routeID kernel.ID) (DeleteRouteCommand, error) {
	if err := routeID.Validate(); err != nil {
		return DeleteRouteCommand{}, err
	}

	return DeleteRouteCommand{
		routeID: routeID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteRouteCommand) Validate() error {
	return c.guard.Validate(ErrDeleteRouteCommandIsNotConstructed)
}

func (c DeleteRouteCommand) RouteID() kernel.ID {
	return c.routeID
}
