package queries

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"routetracker/internal/core/domain/services"

	"gorm.io/gorm"
)

var csvHeader = []string{"ID", "Name", "Driver", "Status", "Orders", "Updated At"}

type ExportRoutesCSVQueryHandler struct {
	db       *gorm.DB
	progress services.RouteProgress
}

func NewExportRoutesCSVQueryHandler(db *gorm.DB) ExportRoutesCSVQueryHandler {
	return ExportRoutesCSVQueryHandler{db: db, progress: services.NewRouteProgress()}
}

// Handle writes one line per route, ordered like the route list, under a
// file name of the form routes-YYYYMMDD-HHMMSS.csv.
func (h ExportRoutesCSVQueryHandler) Handle(
	ctx context.Context,
	query ExportRoutesCSVQuery,
) (ExportRoutesCSVQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ExportRoutesCSVQueryResponse{}, err
	}

	rows, err := listRoutes(ctx, h.db, query.Status(), query.Search(), 0, 0)
	if err != nil {
		return ExportRoutesCSVQueryResponse{}, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err = w.Write(csvHeader); err != nil {
		return ExportRoutesCSVQueryResponse{}, err
	}
	for _, row := range rows {
		v := row.view(h.progress)
		record := []string{
			strconv.FormatInt(v.ID, 10),
			v.Name,
			v.DriverName,
			v.Status,
			strconv.Itoa(v.OrderCount),
			v.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err = w.Write(record); err != nil {
			return ExportRoutesCSVQueryResponse{}, err
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return ExportRoutesCSVQueryResponse{}, fmt.Errorf("write csv: %w", err)
	}

	return ExportRoutesCSVQueryResponse{
		Filename: "routes-" + query.At().Format("20060102-150405") + ".csv",
		Content:  buf.Bytes(),
	}, nil
}
