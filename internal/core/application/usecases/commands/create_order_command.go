package commands

import (
	"errors"
	"strings"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/pkg/errs"
	"routetracker/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand requests a new PENDING order on an existing route.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(3, "X1", "Bob", "1 Main St")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	id, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	routeID      kernel.ID
	code         string
	customerName string
	address      string

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(routeID kernel.ID, code, customerName, address string) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRouteID(routeID),
		cmd.setCode(code),
		cmd.setCustomerName(customerName),
		cmd.setAddress(address),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) RouteID() kernel.ID {
	return c.routeID
}

func (c CreateOrderCommand) Code() string {
	return c.code
}

func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

func (c CreateOrderCommand) Address() string {
	return c.address
}

func (c *CreateOrderCommand) setRouteID(routeID kernel.ID) error {
	if err := routeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("route", err)
	}
	c.routeID = routeID
	return nil
}

func (c *CreateOrderCommand) setCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if strings.TrimSpace(customerName) == "" {
		return errs.NewValueIsRequiredError("customer_name")
	}
	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("address")
	}
	c.address = address
	return nil
}
