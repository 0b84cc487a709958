// Package route provides the Route aggregate: a named delivery run driven by
// one driver and carrying a set of orders.
//
// Key business rules:
//   - name and driver name are required and at most 100 characters
//   - new routes start PLANNED
//   - status follows PLANNED -> IN_PROGRESS -> COMPLETED, and any
//     non-final status may move to CANCELLED
//   - identity and timestamps are assigned by persistence
package route
