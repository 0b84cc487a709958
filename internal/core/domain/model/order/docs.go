// Package order provides the Order aggregate: a single parcel delivered as
// part of a route.
//
// Key business rules:
//   - every order belongs to exactly one route
//   - code is required, at most 50 characters and unique across orders
//   - customer name is required (at most 100 characters), address is required
//   - status follows PENDING -> ASSIGNED -> IN_TRANSIT -> DELIVERED | FAILED;
//     an ASSIGNED order may be released back to PENDING and a FAILED order
//     may be retried from PENDING
package order
