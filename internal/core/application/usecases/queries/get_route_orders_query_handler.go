package queries

import (
	"context"

	"routetracker/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetRouteOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetRouteOrdersQueryHandler(db *gorm.DB) GetRouteOrdersQueryHandler {
	return GetRouteOrdersQueryHandler{db: db}
}

// Handle returns the orders ordered by id. An unknown route yields
// errs.ObjectNotFoundError rather than an empty list.
func (h GetRouteOrdersQueryHandler) Handle(ctx context.Context, query GetRouteOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists int64
	if err := h.db.WithContext(ctx).Table("routes").Where("id = ?", query.RouteID().Int64()).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, errs.NewObjectNotFoundError("route", query.RouteID())
	}

	tx := h.db.WithContext(ctx).
		Table("orders").
		Select("id, route_id, code, customer_name, address, status, created_at, updated_at").
		Where("route_id = ?", query.RouteID().Int64())
	if query.Search() != "" {
		pattern := likePattern(query.Search())
		tx = tx.Where("(code ILIKE ? OR customer_name ILIKE ? OR address ILIKE ?)", pattern, pattern, pattern)
	}

	orders := make([]OrderView, 0)
	if err := tx.Order("id").Scan(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}
