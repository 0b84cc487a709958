package queries

import (
	"errors"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/pkg/guard"
)

var ErrGetRouteQueryIsNotConstructed = errors.New(
	"GetRouteQuery must be created via NewGetRouteQuery constructor",
)

// GetRouteQuery reads a single route with its progress.
type GetRouteQuery struct {
	routeID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetRouteQuery(routeID kernel.ID) (GetRouteQuery, error) {
	if err := routeID.Validate(); err != nil {
		return GetRouteQuery{}, err
	}
	return GetRouteQuery{routeID: routeID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteQueryIsNotConstructed)
}

func (q GetRouteQuery) RouteID() kernel.ID {
	return q.routeID
}
