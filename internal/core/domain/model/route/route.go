package route

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/pkg/errs"
)

const maxTextLength = 100

// ErrRouteIsNotConstructed is returned when a Route was not created through
// NewRoute or RestoreRoute.
var ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")

// Route is the aggregate root for a delivery run.
type Route struct {
	id         kernel.ID
	name       string
	driverName string
	status     Status
	createdAt  time.Time
	updatedAt  time.Time

	isConstructed bool
}

// NewRoute creates an unpersisted route in PLANNED status.
//
// Example:
//
//	r, err := route.NewRoute("North loop", "Ann")
//	if err != nil {
//	    return err
//	}
//	err = uow.RouteRepository().Add(ctx, r) // assigns r.ID()
func NewRoute(name, driverName string) (*Route, error) {
	r := &Route{
		status:        Planned,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setName(name),
		r.setDriverName(driverName),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRoute rebuilds a persisted route.
func RestoreRoute(
	id kernel.ID,
	name, driverName string,
	status Status,
	createdAt, updatedAt time.Time,
) (*Route, error) {
	r := &Route{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		r.setName(name),
		r.setDriverName(driverName),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	r.id = id
	r.status = status
	return r, nil
}

// Validate ensures the route was built by a constructor.
func (r *Route) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRouteIsNotConstructed
	}
	return nil
}

func (r *Route) ID() kernel.ID        { return r.id }
func (r *Route) Name() string         { return r.name }
func (r *Route) DriverName() string   { return r.driverName }
func (r *Route) Status() Status       { return r.status }
func (r *Route) CreatedAt() time.Time { return r.createdAt }
func (r *Route) UpdatedAt() time.Time { return r.updatedAt }

// ChangeStatus sets the status to next, which must be a known status.
func (r *Route) ChangeStatus(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	r.status = next
	return nil
}

// MarkPersisted records the identity and timestamps assigned by storage.
func (r *Route) MarkPersisted(id kernel.ID, createdAt, updatedAt time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if r.id.IsAssigned() && r.id != id {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("route %d cannot become %d", r.id, id))
	}

	r.id = id
	r.createdAt = createdAt
	r.updatedAt = updatedAt
	return nil
}

func (r *Route) setName(name string) error {
	name = strings.TrimSpace(name)
	if err := validateText("name", name); err != nil {
		return err
	}
	r.name = name
	return nil
}

func (r *Route) setDriverName(driverName string) error {
	driverName = strings.TrimSpace(driverName)
	if err := validateText("driver_name", driverName); err != nil {
		return err
	}
	r.driverName = driverName
	return nil
}

func validateText(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	if n := utf8.RuneCountInString(value); n > maxTextLength {
		return errs.NewValueIsOutOfRangeError(param, n, 1, maxTextLength)
	}
	return nil
}
