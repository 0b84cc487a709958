package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/pkg/errs"
)

const (
	maxCodeLength         = 50
	maxCustomerNameLength = 100
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a single delivery.
// The route reference is an identifier only; the route aggregate is loaded separately.
type Order struct {
	id           kernel.ID
	routeID      kernel.ID
	code         string
	customerName string
	address      string
	status       Status
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewOrder creates an unpersisted PENDING order on the given route.
//
// Example:
//
//	o, err := order.NewOrder(routeID, "X1", "Jane Doe", "1 Main St")
//	if err != nil {
//	    return err
//	}
//	err = uow.OrderRepository().Add(ctx, o)
func NewOrder(routeID kernel.ID, code, customerName, address string) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setRouteID(routeID),
		o.setCode(code),
		o.setCustomerName(customerName),
		o.setAddress(address),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds a persisted order.
func RestoreOrder(
	id, routeID kernel.ID,
	code, customerName, address string,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		o.setRouteID(routeID),
		o.setCode(code),
		o.setCustomerName(customerName),
		o.setAddress(address),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.id = id
	o.status = status
	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsAssigned() && o.id == other.id
}

func (o *Order) ID() kernel.ID        { return o.id }
func (o *Order) RouteID() kernel.ID   { return o.routeID }
func (o *Order) Code() string         { return o.code }
func (o *Order) CustomerName() string { return o.customerName }
func (o *Order) Address() string      { return o.address }
func (o *Order) Status() Status       { return o.status }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// ChangeStatus sets the status to next, which must be a known status.
func (o *Order) ChangeStatus(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	o.status = next
	return nil
}

// MarkPersisted records the identity and timestamps assigned by storage.
func (o *Order) MarkPersisted(id kernel.ID, createdAt, updatedAt time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if o.id.IsAssigned() && o.id != id {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("order %d cannot become %d", o.id, id))
	}

	o.id = id
	o.createdAt = createdAt
	o.updatedAt = updatedAt
	return nil
}

func (o *Order) setRouteID(routeID kernel.ID) error {
	if err := routeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("route", err)
	}
	o.routeID = routeID
	return nil
}

func (o *Order) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	if n := utf8.RuneCountInString(code); n > maxCodeLength {
		return errs.NewValueIsOutOfRangeError("code", n, 1, maxCodeLength)
	}
	o.code = code
	return nil
}

func (o *Order) setCustomerName(customerName string) error {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return errs.NewValueIsRequiredError("customer_name")
	}
	if n := utf8.RuneCountInString(customerName); n > maxCustomerNameLength {
		return errs.NewValueIsOutOfRangeError("customer_name", n, 1, maxCustomerNameLength)
	}
	o.customerName = customerName
	return nil
}

func (o *Order) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}
