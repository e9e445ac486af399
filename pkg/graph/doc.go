// Package graph defines the design graph types for burl.
// The design graph is an immutable DAG of primitives, transforms,
// booleans, and groups that represents a solid model before any
// geometry kernel work happens.
package graph
