// Package kernel provides the primitives shared by the route and order aggregates.
//
// The package includes:
//   - ID: the positive integer identity assigned by the database
//
// Primitives are immutable values and safe for concurrent use.
package kernel
