package ports

import (
	"context"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order and assigns its id and timestamps.
	// Returns errs.ConflictError when the code is already taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order and refreshes updated_at.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetForUpdate retrieves an order by id and locks it against concurrent
	// writers until the transaction ends.
	// Returns errs.ObjectNotFoundError when no such order exists.
	GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetAllByRoute retrieves every order of a route ordered by id.
	GetAllByRoute(ctx context.Context, routeID kernel.ID) ([]*order.Order, error)

	// Delete removes the order.
	Delete(ctx context.Context, aggregate *order.Order) error
}
