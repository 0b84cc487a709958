package queries

import (
	"errors"
	"strings"
	"time"

	"routetracker/internal/core/domain/model/route"
	"routetracker/internal/pkg/guard"
)

var ErrExportRoutesCSVQueryIsNotConstructed = errors.New(
	"ExportRoutesCSVQuery must be created via NewExportRoutesCSVQuery constructor",
)

// ExportRoutesCSVQuery renders every route matching the filter as CSV.
// The filter has the same meaning as in GetRoutesQuery; paging does not apply.
type ExportRoutesCSVQuery struct {
	status string
	search string
	at     time.Time

	guard guard.ConstructorGuard
}

// NewExportRoutesCSVQuery builds the export. at stamps the file name.
func NewExportRoutesCSVQuery(status, search string, at time.Time) (ExportRoutesCSVQuery, error) {
	if status != "" {
		if _, err := route.ParseStatus(status); err != nil {
			return ExportRoutesCSVQuery{}, err
		}
	}
	return ExportRoutesCSVQuery{
		status: status,
		search: strings.TrimSpace(search),
		at:     at,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ExportRoutesCSVQuery) Validate() error {
	return q.guard.Validate(ErrExportRoutesCSVQueryIsNotConstructed)
}

func (q ExportRoutesCSVQuery) Status() string { return q.status }
func (q ExportRoutesCSVQuery) Search() string { return q.search }
func (q ExportRoutesCSVQuery) At() time.Time  { return q.at }

// ExportRoutesCSVQueryResponse is a ready-to-send attachment.
type ExportRoutesCSVQueryResponse struct {
	Filename string
	Content  []byte
}
