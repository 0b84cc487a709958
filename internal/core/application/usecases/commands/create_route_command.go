package commands

import (
	"errors"
	"strings"

	"routetracker/internal/pkg/errs"
	"routetracker/internal/pkg/guard"
)

var ErrCreateRouteCommandIsNotConstructed = errors.New(
	"CreateRouteCommand must be created via NewCreateRouteCommand constructor",
)

// CreateRouteCommand requests a new route in PLANNED status.
//
// Example:
//
//	cmd, err := NewCreateRouteCommand("North loop", "Ann")
//	if err != nil {
//	    return fmt.Errorf("invalid route data: %w", err)
//	}
//	id, err := handler.Handle(ctx, cmd)
type CreateRouteCommand struct { //nolint:recvcheck //using for validation
	name       string
	driverName string

	guard guard.ConstructorGuard
}

// NewCreateRouteCommand checks that both names are present. Length limits are
// enforced by the route aggregate.
func NewCreateRouteCommand(name, driverName string) (CreateRouteCommand, error) {
	cmd := CreateRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setDriverName(driverName),
	); err != nil {
		return CreateRouteCommand{}, err
	}

	return cmd, nil
}

func (c CreateRouteCommand) Validate() error {
	return c.guard.Validate(ErrCreateRouteCommandIsNotConstructed)
}

func (c CreateRouteCommand) Name() string {
	return c.name
}

func (c CreateRouteCommand) DriverName() string {
	return c.driverName
}

func (c *CreateRouteCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *CreateRouteCommand) setDriverName(driverName string) error {
	if strings.TrimSpace(driverName) == "" {
		return errs.NewValueIsRequiredError("driver_name")
	}
	c.driverName = driverName
	return nil
}
