// Package services provides domain services that span the route and order
// aggregates.
//
// The package includes:
//   - RouteProgress: derives order counts and completion percentage of a route
//     from the statuses of its orders
package services
