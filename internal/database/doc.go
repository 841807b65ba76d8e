// Package database implements the Postgres persistence layer: connection
// pooling, embedded schema migrations, and the readings repository.
package database
