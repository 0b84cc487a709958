package queries

import (
	"context"

	"routetracker/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	orders := make([]OrderView, 0, 1)
	err := h.db.WithContext(ctx).
		Table("orders").
		Select("id, route_id, code, customer_name, address, status, created_at, updated_at").
		Where("id = ?", query.OrderID().Int64()).
		Scan(&orders).Error
	if err != nil {
		return OrderView{}, err
	}
	if len(orders) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	return orders[0], nil
}
