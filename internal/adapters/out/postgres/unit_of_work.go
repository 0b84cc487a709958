// Package postgres provides the GORM-based Unit of Work.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// record a realtime.Mutation for every row they write; after a successful
// commit the recorded mutations are passed to the commit hooks in order.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx) // hooks run here
//
// Ordering:
//
// Commit and the hooks that follow it run while holding the striped locks of
// every entity the transaction touched. Two transactions writing the same
// order therefore publish their events in the order they committed.
package postgres

import (
	"context"
	"log/slog"

	"routetracker/internal/adapters/out/postgres/orderrepo"
	"routetracker/internal/adapters/out/postgres/routerepo"
	"routetracker/internal/core/ports"
	"routetracker/internal/core/realtime"
	"routetracker/internal/pkg/keylock"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool, one set of entity locks and one list of commit hooks.
type GormUnitOfWorkFactory struct {
	db     *gorm.DB
	locks  *keylock.Striped
	hooks  []ports.CommitHook
	logger *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory. Hooks run in the given order.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, keylock.New(0), logger, mutationHook)
func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	locks *keylock.Striped,
	logger *slog.Logger,
	hooks ...ports.CommitHook,
) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:     db,
		locks:  locks,
		hooks:  hooks,
		logger: logger.With("component", "unit_of_work"),
	}
}

// Create produces a fresh UnitOfWork with no transaction and no recorded mutations.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		locks:     f.locks,
		hooks:     f.hooks,
		logger:    f.logger,
		mutations: make([]realtime.Mutation, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the mutations
// recorded while it was open. Not safe for concurrent use.
type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	locks     *keylock.Striped
	hooks     []ports.CommitHook
	logger    *slog.Logger
	mutations []realtime.Mutation
}

// Begin starts a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit commits the transaction and then runs the hooks for every recorded
// mutation. Hook failures are the hooks' business and never surface here.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	mutations := uow.mutations
	uow.mutations = make([]realtime.Mutation, 0)

	unlock := uow.locks.Lock(keys(mutations)...)
	defer unlock()

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for _, m := range mutations {
		for _, hook := range uow.hooks {
			uow.runHook(ctx, hook, m)
		}
	}

	return nil
}

// Rollback discards the transaction and every recorded mutation.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	uow.mutations = make([]realtime.Mutation, 0)

	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// RouteRepository returns a repository bound to the open transaction, or to
// the pool when there is none.
func (uow *GormUnitOfWork) RouteRepository() ports.RouteRepository {
	return routerepo.NewGormRouteRepository(uow.conn(), uow)
}

// OrderRepository returns a repository bound to the open transaction, or to
// the pool when there is none.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TrackMutation records a write performed through one of the repositories.
func (uow *GormUnitOfWork) TrackMutation(m realtime.Mutation) {
	uow.mutations = append(uow.mutations, m)
}

// TrackedMutations returns the mutations recorded since the last Commit or Rollback.
func (uow *GormUnitOfWork) TrackedMutations() []realtime.Mutation {
	out := make([]realtime.Mutation, len(uow.mutations))
	copy(out, uow.mutations)
	return out
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) runHook(ctx context.Context, hook ports.CommitHook, m realtime.Mutation) {
	defer func() {
		if r := recover(); r != nil {
			uow.logger.ErrorContext(ctx, "commit hook panicked", "mutation", m.Key(), "panic", r)
		}
	}()
	hook.OnEntityCommitted(ctx, m)
}

func keys(mutations []realtime.Mutation) []string {
	out := make([]string, 0, len(mutations))
	for _, m := range mutations {
		out = append(out, m.Key())
	}
	return out
}
