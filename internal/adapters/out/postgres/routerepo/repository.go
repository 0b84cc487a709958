package routerepo

import (
	"context"
	"errors"
	"time"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/core/domain/model/route"
	"routetracker/internal/core/realtime"
	"routetracker/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRouteRepository implements ports.RouteRepository using GORM.
type GormRouteRepository struct {
	db      *gorm.DB
	tracker mutationTracker
}

type mutationTracker interface {
	TrackMutation(m realtime.Mutation)
}

func NewGormRouteRepository(db *gorm.DB, tracker mutationTracker) *GormRouteRepository {
	return &GormRouteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new route and writes the generated id back into the aggregate.
func (r *GormRouteRepository) Add(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	dto := fromDomain(aggregate)
	dto.ID = 0
	dto.CreatedAt, dto.UpdatedAt = now, now

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if err := aggregate.MarkPersisted(kernel.ID(dto.ID), dto.CreatedAt, dto.UpdatedAt); err != nil {
		return err
	}

	r.tracker.TrackMutation(realtime.RouteMutation(realtime.MutationCreated, aggregate))
	return nil
}

// Update saves the mutable columns of an existing route.
func (r *GormRouteRepository) Update(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := aggregate.ID().Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

	result := r.db.WithContext(ctx).
		Model(&RouteDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "driver_name", "status", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("route", aggregate.ID())
	}
	if err := aggregate.MarkPersisted(aggregate.ID(), aggregate.CreatedAt(), dto.UpdatedAt); err != nil {
		return err
	}

	r.tracker.TrackMutation(realtime.RouteMutation(realtime.MutationUpdated, aggregate))
	return nil
}

// Get retrieves a route by ID.
func (r *GormRouteRepository) Get(ctx context.Context, id kernel.ID) (*route.Route, error) {
	return r.get(id, r.db.WithContext(ctx))
}

// GetForUpdate retrieves a route by ID and locks its row until the
// transaction ends. Outside a transaction the lock is released immediately.
func (r *GormRouteRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*route.Route, error) {
	return r.get(id, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}))
}

func (r *GormRouteRepository) get(id kernel.ID, query *gorm.DB) (*route.Route, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RouteDTO
	if err := query.First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("route", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the route row.
func (r *GormRouteRepository) Delete(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.ID().Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&RouteDTO{}, "id = ?", aggregate.ID().Int64())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("route", aggregate.ID())
	}

	r.tracker.TrackMutation(realtime.RouteMutation(realtime.MutationDeleted, aggregate))
	return nil
}
