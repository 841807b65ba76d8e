// Package server wires the HTTP surface: the ingest endpoint, the readings
// query endpoints, the WebSocket subscription endpoint, and the
// health/metrics/version routes.
package server
