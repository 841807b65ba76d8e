// Package domain defines the core domain types and interfaces.
//
// Concept-oriented files (reading.go, timerange.go, timestamp.go, errors.go)
// hold shared types and cross-cutting interfaces. No implementation code -
// just contracts. Keeping interfaces on the consumer side prevents circular
// imports between the server, database, and hub packages.
package domain
