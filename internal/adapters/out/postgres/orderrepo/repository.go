package orderrepo

import (
	"context"
	"errors"
	"time"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/core/domain/model/order"
	"routetracker/internal/core/realtime"
	"routetracker/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
// The connection must be opened with gorm.Config.TranslateError so that
// unique and foreign key violations can be recognised.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker mutationTracker
}

type mutationTracker interface {
	TrackMutation(m realtime.Mutation)
}

func NewGormOrderRepository(db *gorm.DB, tracker mutationTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new order and writes the generated id back into the aggregate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	dto := fromDomain(aggregate)
	dto.ID = 0
	dto.CreatedAt, dto.UpdatedAt = now, now

	if err := r.db.WithContext(ctx).Omit("Route").Create(&dto).Error; err != nil {
		return translate(err, aggregate)
	}
	if err := aggregate.MarkPersisted(kernel.ID(dto.ID), dto.CreatedAt, dto.UpdatedAt); err != nil {
		return err
	}

	r.tracker.TrackMutation(realtime.OrderMutation(realtime.MutationCreated, aggregate))
	return nil
}

// Update saves the mutable columns of an existing order.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := aggregate.ID().Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("route_id", "code", "customer_name", "address", "status", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return translate(result.Error, aggregate)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}
	if err := aggregate.MarkPersisted(aggregate.ID(), aggregate.CreatedAt(), dto.UpdatedAt); err != nil {
		return err
	}

	r.tracker.TrackMutation(realtime.OrderMutation(realtime.MutationUpdated, aggregate))
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.get(id, r.db.WithContext(ctx))
}

// GetForUpdate retrieves an order by ID and locks its row until the
// transaction ends. Outside a transaction the lock is released immediately.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.get(id, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}))
}

func (r *GormOrderRepository) get(id kernel.ID, query *gorm.DB) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := query.First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByRoute retrieves the orders of one route ordered by id.
func (r *GormOrderRepository) GetAllByRoute(ctx context.Context, routeID kernel.ID) ([]*order.Order, error) {
	if err := routeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Where("route_id = ?", routeID.Int64()).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// Delete removes the order row.
func (r *GormOrderRepository) Delete(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.ID().Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", aggregate.ID().Int64())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	r.tracker.TrackMutation(realtime.OrderMutation(realtime.MutationDeleted, aggregate))
	return nil
}

func translate(err error, aggregate *order.Order) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.NewConflictErrorWithCause("code", aggregate.Code(), err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errs.NewObjectNotFoundErrorWithCause("route", aggregate.RouteID(), err)
	default:
		return err
	}
}
