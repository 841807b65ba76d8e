package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/firesense/firesense/internal/domain"
	apperrors "github.com/firesense/firesense/internal/errors"
	"github.com/firesense/firesense/internal/metrics"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
	cacheOpTimeout   = 2 * time.Second
)

type createReadingRequest struct {
	ThingspeakID int64           `json:"thingspeak_id"`
	CreatedAt    json.RawMessage `json:"created_at"`
	Temperature  float64         `json:"temperature"`
	Humidity     float64         `json:"humidity"`
	Latitude     float64         `json:"latitude"`
	Longitude    float64         `json:"longitude"`
	FireScore    float64         `json:"fire_score"`
}

func (s *Server) handleCreateReading(c echo.Context) error {
	var req createReadingRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid JSON payload")
	}

	if req.ThingspeakID <= 0 {
		return apperrors.ValidationError("thingspeak_id is required and must be positive")
	}
	if req.Latitude < -90 || req.Latitude > 90 {
		return apperrors.ValidationError("latitude must be between -90 and 90").WithField("latitude", req.Latitude)
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return apperrors.ValidationError("longitude must be between -180 and 180").WithField("longitude", req.Longitude)
	}

	reading := &domain.Reading{
		ThingspeakID: req.ThingspeakID,
		CreatedAt:    domain.CoerceTimestamp(req.CreatedAt, s.clock),
		Temperature:  req.Temperature,
		Humidity:     req.Humidity,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		FireScore:    req.FireScore,
	}

	inserted, err := s.readings.Insert(c.Request().Context(), reading)
	if err != nil {
		return apperrors.InternalError("failed to store reading", err).
			WithField("thingspeak_id", req.ThingspeakID)
	}

	// A thingspeak_id collision means the uploader retried an already-stored
	// entry. Silent no-op success, and nothing new to broadcast.
	if !inserted {
		metrics.ReadingsIngestedTotal.WithLabelValues("duplicate").Inc()
		return c.JSON(http.StatusOK, map[string]string{"status": "duplicate"})
	}
	metrics.ReadingsIngestedTotal.WithLabelValues("created").Inc()

	if s.cache != nil {
		cacheCtx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
		if err := s.cache.Set(cacheCtx, reading); err != nil {
			slog.Warn("failed to cache latest reading", "error", err)
		}
		cancel()
	}

	// Broadcast happens-after the commit and never delays the response.
	if payload, err := json.Marshal(reading); err != nil {
		slog.Error("failed to marshal reading for broadcast", "error", err)
	} else {
		s.dispatcher.PublishAsync(payload)
	}

	return c.JSON(http.StatusCreated, reading)
}

func (s *Server) handleListReadings(c echo.Context) error {
	rng := domain.Range7Days
	if param := c.QueryParam("period"); param != "" {
		parsed, err := domain.ParseTimeRange(param)
		if err != nil {
			return apperrors.ValidationError(err.Error()).WithField("period", param)
		}
		rng = parsed
	}

	limit, err := queryInt(c, "limit", defaultListLimit)
	if err != nil {
		return apperrors.ValidationError("limit must be an integer")
	}
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	offset, err := queryInt(c, "offset", 0)
	if err != nil || offset < 0 {
		return apperrors.ValidationError("offset must be a non-negative integer")
	}

	readings, err := s.readings.ListByRange(c.Request().Context(), rng, limit, offset)
	if err != nil {
		return apperrors.InternalError("failed to fetch readings", err).
			WithField("period", rng.String())
	}
	if readings == nil {
		readings = []domain.Reading{}
	}

	return c.JSON(http.StatusOK, readings)
}

func (s *Server) handleLatestReading(c echo.Context) error {
	if s.cache != nil {
		cacheCtx, cancel := context.WithTimeout(c.Request().Context(), cacheOpTimeout)
		reading, err := s.cache.Get(cacheCtx)
		cancel()

		if err == nil {
			metrics.LatestCacheHits.Inc()
			return c.JSON(http.StatusOK, reading)
		}
		metrics.LatestCacheMisses.Inc()
	}

	reading, err := s.readings.Latest(c.Request().Context())
	if err == domain.ErrNoReadings {
		return apperrors.NotFoundError("no readings recorded")
	}
	if err != nil {
		return apperrors.InternalError("failed to fetch latest reading", err)
	}

	return c.JSON(http.StatusOK, reading)
}

func queryInt(c echo.Context, name string, defaultValue int) (int, error) {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(param)
}
