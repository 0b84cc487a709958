package realtime

import (
	"strings"

	"routetracker/internal/core/domain/model/kernel"
)

// Group names a broadcast channel. Each connection belongs to exactly one group.
type Group string

const (
	// Dashboard receives every route mutation under the plural "routes.*" events.
	Dashboard Group = "dashboard"

	routeGroupPrefix = "route."
)

// RouteGroup is the group for one route's detail view.
func RouteGroup(id kernel.ID) Group {
	return Group(routeGroupPrefix + id.String())
}

// ParseGroup validates a group name received from outside the process, such
// as a relay envelope.
func ParseGroup(raw string) (Group, bool) {
	if raw == string(Dashboard) {
		return Dashboard, true
	}
	rest, ok := strings.CutPrefix(raw, routeGroupPrefix)
	if !ok {
		return "", false
	}
	id, err := kernel.ParseID(rest)
	if err != nil {
		return "", false
	}
	return RouteGroup(id), true
}

func (g Group) String() string {
	return string(g)
}
