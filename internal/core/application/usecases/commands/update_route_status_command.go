package commands

import (
	"errors"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/core/domain/model/route"
	"routetracker/internal/pkg/guard"
)

var ErrUpdateRouteStatusCommandIsNotConstructed = errors.New(
	"UpdateRouteStatusCommand must be created via NewUpdateRouteStatusCommand constructor",
)

// UpdateRouteStatusCommand moves a route to another lifecycle status.
type UpdateRouteStatusCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.ID
	status  route.Status

	guard guard.ConstructorGuard
}

func NewUpdateRouteStatusCommand(routeID kernel.ID, status route.Status) (UpdateRouteStatusCommand, error) {
	cmd := UpdateRouteStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRouteID(routeID),
		cmd.setStatus(status),
	); err != nil {
		return UpdateRouteStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateRouteStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRouteStatusCommandIsNotConstructed)
}

func (c UpdateRouteStatusCommand) RouteID() kernel.ID {
	return c.routeID
}

func (c UpdateRouteStatusCommand) Status() route.Status {
	return c.status
}

func (c *UpdateRouteStatusCommand) setRouteID(routeID kernel.ID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	c.routeID = routeID
	return nil
}

func (c *UpdateRouteStatusCommand) setStatus(status route.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
