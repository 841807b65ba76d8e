// Package redis wraps the go-redis client used for the latest-reading cache.
// All operations pass through a metrics hook and a circuit breaker hook, so a
// dead Redis degrades reads to Postgres instead of cascading.
package redis
