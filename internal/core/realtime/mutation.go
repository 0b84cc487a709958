package realtime

import (
	"fmt"
	"time"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/core/domain/model/order"
	"routetracker/internal/core/domain/model/route"
	"routetracker/internal/pkg/errs"
)

// EntityKind names the aggregate a mutation touched.
type EntityKind string

const (
	EntityRoute EntityKind = "route"
	EntityOrder EntityKind = "order"
)

// MutationKind is what happened to the aggregate.
type MutationKind string

const (
	MutationCreated MutationKind = "created"
	MutationUpdated MutationKind = "updated"
	MutationDeleted MutationKind = "deleted"
)

// Mutation describes one committed change to a route or an order.
// Snapshot holds the entity's JSON view after the change and is ignored for
// deletions.
type Mutation struct {
	Entity   EntityKind
	Kind     MutationKind
	ID       kernel.ID
	RouteID  kernel.ID
	Snapshot any
}

// RouteMutation captures r as it is right after the change.
func RouteMutation(kind MutationKind, r *route.Route) Mutation {
	return Mutation{
		Entity:   EntityRoute,
		Kind:     kind,
		ID:       r.ID(),
		RouteID:  r.ID(),
		Snapshot: NewRoutePayload(r),
	}
}

// OrderMutation captures o as it is right after the change.
func OrderMutation(kind MutationKind, o *order.Order) Mutation {
	return Mutation{
		Entity:   EntityOrder,
		Kind:     kind,
		ID:       o.ID(),
		RouteID:  o.RouteID(),
		Snapshot: NewOrderPayload(o),
	}
}

func (m Mutation) Validate() error {
	switch m.Entity {
	case EntityRoute, EntityOrder:
	default:
		return errs.NewValueIsInvalidError("entity")
	}
	switch m.Kind {
	case MutationCreated, MutationUpdated, MutationDeleted:
	default:
		return errs.NewValueIsInvalidError("kind")
	}
	if err := m.ID.Validate(); err != nil {
		return fmt.Errorf("mutation id: %w", err)
	}
	if err := m.RouteID.Validate(); err != nil {
		return fmt.Errorf("mutation route id: %w", err)
	}
	return nil
}

// Key identifies the entity for sequencing purposes, e.g. "order:7".
func (m Mutation) Key() string {
	return string(m.Entity) + ":" + m.ID.String()
}

// RoutePayload is the JSON view of a route sent to subscribers.
type RoutePayload struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	DriverName string    `json:"driver_name"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewRoutePayload snapshots r for the wire.
func NewRoutePayload(r *route.Route) RoutePayload {
	return RoutePayload{
		ID:         r.ID().Int64(),
		Name:       r.Name(),
		DriverName: r.DriverName(),
		Status:     r.Status().String(),
		CreatedAt:  r.CreatedAt(),
		UpdatedAt:  r.UpdatedAt(),
	}
}

// OrderPayload is the JSON view of an order sent to subscribers. The route id
// travels under "route".
type OrderPayload struct {
	ID           int64     `json:"id"`
	Route        int64     `json:"route"`
	Code         string    `json:"code"`
	CustomerName string    `json:"customer_name"`
	Address      string    `json:"address"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewOrderPayload snapshots o for the wire.
func NewOrderPayload(o *order.Order) OrderPayload {
	return OrderPayload{
		ID:           o.ID().Int64(),
		Route:        o.RouteID().Int64(),
		Code:         o.Code(),
		CustomerName: o.CustomerName(),
		Address:      o.Address(),
		Status:       o.Status().String(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

type deletedPayload struct {
	ID int64 `json:"id"`
}
