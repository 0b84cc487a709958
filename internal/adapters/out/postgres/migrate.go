package postgres

import (
	"fmt"

	"routetracker/internal/adapters/out/postgres/orderrepo"
	"routetracker/internal/adapters/out/postgres/routerepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the routes and orders tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&routerepo.RouteDTO{}, &orderrepo.OrderDTO{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
