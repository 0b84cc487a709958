package queries

import (
	"context"

	"routetracker/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetRoutesQueryHandler reads route pages with their order counts.
type GetRoutesQueryHandler struct {
	db       *gorm.DB
	progress services.RouteProgress
}

func NewGetRoutesQueryHandler(db *gorm.DB) GetRoutesQueryHandler {
	return GetRoutesQueryHandler{db: db, progress: services.NewRouteProgress()}
}

func (h GetRoutesQueryHandler) Handle(ctx context.Context, query GetRoutesQuery) (GetRoutesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRoutesQueryResponse{}, err
	}

	var total int64
	err := routeFilter(h.db.WithContext(ctx).Table("routes AS r"), query.Status(), query.Search()).
		Count(&total).Error
	if err != nil {
		return GetRoutesQueryResponse{}, err
	}

	rows, err := listRoutes(ctx, h.db, query.Status(), query.Search(), query.PageSize(), (query.Page()-1)*query.PageSize())
	if err != nil {
		return GetRoutesQueryResponse{}, err
	}

	resp := GetRoutesQueryResponse{
		Count:    total,
		Page:     query.Page(),
		PageSize: query.PageSize(),
		Results:  make([]RouteView, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Results = append(resp.Results, row.view(h.progress))
	}

	return resp, nil
}

// listRoutes returns routes ordered by -updated_at. limit <= 0 means no limit.
func listRoutes(ctx context.Context, db *gorm.DB, status, search string, limit, offset int) ([]routeRow, error) {
	tx := db.WithContext(ctx).
		Table("routes AS r").
		Select(`r.id, r.name, r.driver_name, r.status, r.created_at, r.updated_at,
			COUNT(o.id) AS order_count,
			COUNT(o.id) FILTER (WHERE o.status = 'DELIVERED') AS delivered_count`).
		Joins("LEFT JOIN orders o ON o.route_id = r.id")
	tx = routeFilter(tx, status, search).
		Group("r.id").
		Order("r.updated_at DESC, r.id DESC")
	if limit > 0 {
		tx = tx.Limit(limit).Offset(offset)
	}

	rows := make([]routeRow, 0)
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
