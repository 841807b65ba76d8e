package server

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/firesense/firesense/internal/config"
	"github.com/firesense/firesense/internal/domain"
	apperrors "github.com/firesense/firesense/internal/errors"
	"github.com/firesense/firesense/internal/hub"
	"github.com/firesense/firesense/internal/metrics"
)

// Publisher schedules broadcast of a committed reading without blocking the
// caller.
type Publisher interface {
	PublishAsync(msg []byte)
}

// LatestCache is the optional read-through cache for the latest reading.
type LatestCache interface {
	Get(ctx context.Context) (*domain.Reading, error)
	Set(ctx context.Context, reading *domain.Reading) error
}

// Pinger is the minimal health-check surface of a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP front of the service.
type Server struct {
	echo       *echo.Echo
	config     *config.Config
	readings   domain.ReadingRepository
	cache      LatestCache
	registry   *hub.Registry
	dispatcher Publisher
	db         Pinger
	redis      Pinger
	clock      clockwork.Clock
	startTime  time.Time
}

// NewServer builds the Echo application. cache and redis may be nil when no
// Redis is configured; pass them as untyped nils to keep the interface checks
// meaningful.
func NewServer(
	cfg *config.Config,
	readings domain.ReadingRepository,
	cache LatestCache,
	registry *hub.Registry,
	dispatcher Publisher,
	db Pinger,
	redis Pinger,
	clock clockwork.Clock,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(metrics.HTTPMiddleware())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:       e,
		config:     cfg,
		readings:   readings,
		cache:      cache,
		registry:   registry,
		dispatcher: dispatcher,
		db:         db,
		redis:      redis,
		clock:      clock,
		startTime:  clock.Now(),
	}

	srv.registerRoutes()

	return srv
}

// Start begins serving on the configured port and blocks.
func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
