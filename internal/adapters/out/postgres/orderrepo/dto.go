// Package orderrepo persists order aggregates with GORM.
package orderrepo

import (
	"time"

	"routetracker/internal/adapters/out/postgres/routerepo"
	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/core/domain/model/order"
)

// OrderDTO is the row shape of the orders table. Orders go away with their
// route at the database level as well.
type OrderDTO struct {
	ID           int64               `gorm:"primaryKey;autoIncrement"`
	RouteID      int64               `gorm:"not null;index"`
	Route        *routerepo.RouteDTO `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
	Code         string              `gorm:"size:50;not null;uniqueIndex"`
	CustomerName string              `gorm:"size:100;not null"`
	Address      string              `gorm:"type:text;not null"`
	Status       string              `gorm:"size:20;not null;index"`
	CreatedAt    time.Time           `gorm:"not null"`
	UpdatedAt    time.Time           `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:           aggregate.ID().Int64(),
		RouteID:      aggregate.RouteID().Int64(),
		Code:         aggregate.Code(),
		CustomerName: aggregate.CustomerName(),
		Address:      aggregate.Address(),
		Status:       aggregate.Status().String(),
		CreatedAt:    aggregate.CreatedAt(),
		UpdatedAt:    aggregate.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return order.RestoreOrder(
		kernel.ID(dto.ID),
		kernel.ID(dto.RouteID),
		dto.Code,
		dto.CustomerName,
		dto.Address,
		status,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
