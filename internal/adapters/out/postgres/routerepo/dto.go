// Package routerepo persists route aggregates with GORM.
package routerepo

import (
	"time"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/core/domain/model/route"
)

// RouteDTO is the row shape of the routes table.
type RouteDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Name       string    `gorm:"size:100;not null"`
	DriverName string    `gorm:"size:100;not null"`
	Status     string    `gorm:"size:20;not null;index"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null;index"`
}

func (RouteDTO) TableName() string {
	return "routes"
}

func fromDomain(aggregate *route.Route) RouteDTO {
	return RouteDTO{
		ID:         aggregate.ID().Int64(),
		Name:       aggregate.Name(),
		DriverName: aggregate.DriverName(),
		Status:     aggregate.Status().String(),
		CreatedAt:  aggregate.CreatedAt(),
		UpdatedAt:  aggregate.UpdatedAt(),
	}
}

func toDomain(dto RouteDTO) (*route.Route, error) {
	status, err := route.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return route.RestoreRoute(kernel.ID(dto.ID), dto.Name, dto.DriverName, status, dto.CreatedAt, dto.UpdatedAt)
}
