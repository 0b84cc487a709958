package queries

import (
	"errors"
	"fmt"
	"strings"

	"routetracker/internal/core/domain/model/route"
	"routetracker/internal/pkg/errs"
	"routetracker/internal/pkg/guard"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var ErrGetRoutesQueryIsNotConstructed = errors.New(
	"GetRoutesQuery must be created via NewGetRoutesQuery constructor",
)

// GetRoutesQuery lists routes, most recently updated first.
//
// Example:
//
//	query, err := NewGetRoutesQuery("IN_PROGRESS", "ann", 1, 20)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
type GetRoutesQuery struct {
	status   string
	search   string
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// NewGetRoutesQuery validates the filter. An empty status matches every route.
func NewGetRoutesQuery(status, search string, page, pageSize int) (GetRoutesQuery, error) {
	if status != "" {
		if _, err := route.ParseStatus(status); err != nil {
			return GetRoutesQuery{}, err
		}
	}
	if page < 1 {
		return GetRoutesQuery{}, errs.NewValueIsInvalidErrorWithCause("page", fmt.Errorf("%d is less than 1", page))
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return GetRoutesQuery{}, errs.NewValueIsOutOfRangeError("page_size", pageSize, 1, MaxPageSize)
	}

	return GetRoutesQuery{
		status:   status,
		search:   strings.TrimSpace(search),
		page:     page,
		pageSize: pageSize,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetRoutesQuery) Validate() error {
	return q.guard.Validate(ErrGetRoutesQueryIsNotConstructed)
}

func (q GetRoutesQuery) Status() string { return q.status }
func (q GetRoutesQuery) Search() string { return q.search }
func (q GetRoutesQuery) Page() int      { return q.page }
func (q GetRoutesQuery) PageSize() int  { return q.pageSize }

// GetRoutesQueryResponse is one page of routes plus the unpaged total.
type GetRoutesQueryResponse struct {
	Count    int64       `json:"count"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Results  []RouteView `json:"results"`
}
