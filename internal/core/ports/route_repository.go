// Package ports defines the contracts between the application core and its
// adapters: repositories, the unit of work and post-commit hooks.
package ports

import (
	"context"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/core/domain/model/route"
)

// RouteRepository defines the persistence contract for route aggregates.
type RouteRepository interface {
	// Add persists a new route and assigns its id and timestamps.
	Add(ctx context.Context, aggregate *route.Route) error

	// Update persists changes to an existing route and refreshes updated_at.
	Update(ctx context.Context, aggregate *route.Route) error

	// Get retrieves a route by id.
	// Returns errs.ObjectNotFoundError when no such route exists.
	Get(ctx context.Context, id kernel.ID) (*route.Route, error)

	// GetForUpdate retrieves a route by id and locks it against concurrent
	// writers until the transaction ends.
	// Returns errs.ObjectNotFoundError when no such route exists.
	GetForUpdate(ctx context.Context, id kernel.ID) (*route.Route, error)

	// Delete removes the route row. Orders are not touched; callers delete
	// them first so that every removal is observed.
	Delete(ctx context.Context, aggregate *route.Route) error
}
