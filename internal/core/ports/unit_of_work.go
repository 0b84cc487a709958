package ports

import (
	"context"

	"routetracker/internal/core/realtime"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Repositories obtained from it record every mutation they perform; once
// Commit succeeds those mutations are handed to the registered CommitHooks in
// the order they were recorded.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and runs the commit hooks.
	// Hook failures are never reported here.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction and forgets recorded mutations.
	Rollback(ctx context.Context) error

	// RouteRepository returns a repository bound to the current transaction.
	RouteRepository() RouteRepository

	// OrderRepository returns a repository bound to the current transaction.
	OrderRepository() OrderRepository
}

// CommitHook observes mutations after their transaction committed.
type CommitHook interface {
	OnEntityCommitted(ctx context.Context, m realtime.Mutation)
}
