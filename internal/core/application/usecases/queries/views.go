// Package queries contains the read side: handlers that run SQL directly
// against the database and return flat views for the HTTP layer.
package queries

import (
	"strings"
	"time"

	"routetracker/internal/core/domain/services"

	"gorm.io/gorm"
)

// RouteView is a route together with its progress figures.
type RouteView struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	DriverName           string    `json:"driver_name"`
	Status               string    `json:"status"`
	OrderCount           int       `json:"order_count"`
	CompletionPercentage float64   `json:"completion_percentage"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// OrderView is the read shape of an order. The route id travels under "route".
type OrderView struct {
	ID           int64     `json:"id"`
	RouteID      int64     `json:"route"`
	Code         string    `json:"code"`
	CustomerName string    `json:"customer_name"`
	Address      string    `json:"address"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const routeSelect = `
	SELECT
		r.id,
		r.name,
		r.driver_name,
		r.status,
		r.created_at,
		r.updated_at,
		COUNT(o.id) AS order_count,
		COUNT(o.id) FILTER (WHERE o.status = 'DELIVERED') AS delivered_count
	FROM routes r
	LEFT JOIN orders o ON o.route_id = r.id
`

type routeRow struct {
	ID             int64
	Name           string
	DriverName     string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	OrderCount     int
	DeliveredCount int
}

func (r routeRow) view(progress services.RouteProgress) RouteView {
	p := progress.FromCounts(r.OrderCount, r.DeliveredCount)
	return RouteView{
		ID:                   r.ID,
		Name:                 r.Name,
		DriverName:           r.DriverName,
		Status:               r.Status,
		OrderCount:           p.OrderCount,
		CompletionPercentage: p.CompletionPercentage,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

// routeFilter narrows routes by exact status and by a case-insensitive
// substring of name or driver_name. Empty values match everything.
func routeFilter(db *gorm.DB, status, search string) *gorm.DB {
	if status != "" {
		db = db.Where("r.status = ?", status)
	}
	if search != "" {
		pattern := likePattern(search)
		db = db.Where("(r.name ILIKE ? OR r.driver_name ILIKE ?)", pattern, pattern)
	}
	return db
}

func likePattern(search string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.TrimSpace(search)) + "%"
}
