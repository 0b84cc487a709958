package queries

import (
	"context"

	"routetracker/internal/core/domain/services"
	"routetracker/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetRouteQueryHandler struct {
	db       *gorm.DB
	progress services.RouteProgress
}

func NewGetRouteQueryHandler(db *gorm.DB) GetRouteQueryHandler {
	return GetRouteQueryHandler{db: db, progress: services.NewRouteProgress()}
}

// Handle returns errs.ObjectNotFoundError when the route does not exist.
func (h GetRouteQueryHandler) Handle(ctx context.Context, query GetRouteQuery) (RouteView, error) {
	if err := query.Validate(); err != nil {
		return RouteView{}, err
	}

	rows := make([]routeRow, 0, 1)
	err := h.db.WithContext(ctx).
		Raw(routeSelect+` WHERE r.id = ? GROUP BY r.id`, query.RouteID().Int64()).
		Scan(&rows).Error
	if err != nil {
		return RouteView{}, err
	}
	if len(rows) == 0 {
		return RouteView{}, errs.NewObjectNotFoundError("route", query.RouteID())
	}

	return rows[0].view(h.progress), nil
}
