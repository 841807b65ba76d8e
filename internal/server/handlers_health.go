package server

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/firesense/firesense/internal/version"
)

const readinessTimeout = 5 * time.Second

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := s.clock.Since(s.startTime).Seconds()
	return c.JSON(200, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	checks := []struct {
		name string
		fn   Pinger
	}{
		{"postgres", s.db},
		{"redis", s.redis},
	}

	for _, check := range checks {
		if check.fn == nil {
			continue
		}
		if err := check.fn.Ping(ctx); err != nil {
			return c.JSON(503, map[string]any{
				"status":       "unhealthy",
				"failed_check": check.name,
				"error":        err.Error(),
			})
		}
	}

	return c.JSON(200, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(200, version.Get())
}
