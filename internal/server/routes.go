package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Ingest (pre-shared key + per-IP rate limit)
	s.echo.POST("/api/readings", s.handleCreateReading, s.requireIngestKey, newRateLimiter(ingestRatePerSecond, ingestBurst))

	// Query endpoints
	s.echo.GET("/api/readings", s.handleListReadings)
	s.echo.GET("/api/readings/latest", s.handleLatestReading)

	// Live subscription channel (no auth by design)
	s.echo.GET("/ws/readings", s.handleSubscribe)
}
