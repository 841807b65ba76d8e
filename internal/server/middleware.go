package server

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"

	apperrors "github.com/firesense/firesense/internal/errors"
)

const ingestKeyHeader = "X-API-Key"

// requireIngestKey guards the write endpoint with the pre-shared uploader key.
func (s *Server) requireIngestKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		provided := c.Request().Header.Get(ingestKeyHeader)
		if provided == "" {
			return apperrors.UnauthorizedError("missing API key")
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(s.config.IngestAPIKey)) != 1 {
			return apperrors.UnauthorizedError("invalid API key")
		}
		return next(c)
	}
}
