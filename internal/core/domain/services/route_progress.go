package services

import (
	"math"

	"routetracker/internal/core/domain/model/order"
)

// Progress summarises how far a route has got through its orders.
type Progress struct {
	OrderCount           int
	DeliveredCount       int
	CompletionPercentage float64
}

// RouteProgress computes Progress for a route.
//
// Business rules:
//   - only DELIVERED orders count as complete; FAILED orders do not
//   - a route without orders is 0% complete
//   - the percentage is rounded to two decimals
//
// Example:
//
//	p := services.NewRouteProgress().Compute([]order.Status{order.Delivered, order.Pending})
//	// p.CompletionPercentage == 50
type RouteProgress struct{}

func NewRouteProgress() RouteProgress {
	return RouteProgress{}
}

// Compute derives Progress from the statuses of a route's orders.
func (RouteProgress) Compute(statuses []order.Status) Progress {
	delivered := 0
	for _, s := range statuses {
		if s == order.Delivered {
			delivered++
		}
	}
	return RouteProgress{}.FromCounts(len(statuses), delivered)
}

// FromCounts derives Progress from pre-aggregated counts, as returned by a
// grouped SQL query.
func (RouteProgress) FromCounts(orderCount, deliveredCount int) Progress {
	p := Progress{OrderCount: orderCount, DeliveredCount: deliveredCount}
	if orderCount <= 0 {
		p.OrderCount = 0
		return p
	}
	pct := float64(deliveredCount) * 100.0 / float64(orderCount)
	p.CompletionPercentage = math.Round(pct*100) / 100
	return p
}
