package queries

import (
	"errors"
	"strings"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/pkg/guard"
)

var ErrGetRouteOrdersQueryIsNotConstructed = errors.New(
	"GetRouteOrdersQuery must be created via NewGetRouteOrdersQuery constructor",
)

// GetRouteOrdersQuery lists the orders of one route, optionally narrowed by a
// case-insensitive substring of code, customer_name or address.
type GetRouteOrdersQuery struct {
	routeID kernel.ID
	search  string

	guard guard.ConstructorGuard
}

func NewGetRouteOrdersQuery(routeID kernel.ID, search string) (GetRouteOrdersQuery, error) {
	if err := routeID.Validate(); err != nil {
		return GetRouteOrdersQuery{}, err
	}
	return GetRouteOrdersQuery{
		routeID: routeID,
		search:  strings.TrimSpace(search),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetRouteOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteOrdersQueryIsNotConstructed)
}

func (q GetRouteOrdersQuery) RouteID() kernel.ID { return q.routeID }
func (q GetRouteOrdersQuery) Search() string     { return q.search }
