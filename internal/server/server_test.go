package server

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"

	"github.com/firesense/firesense/internal/config"
	"github.com/firesense/firesense/internal/domain"
	"github.com/firesense/firesense/internal/hub"
)

const testIngestKey = "test-ingest-key-0123456789"

// stubRepo implements domain.ReadingRepository with injectable behaviour and
// call recording. Zero value: inserts succeed, lists are empty, Latest reports
// no readings.
type stubRepo struct {
	insertFn func(ctx context.Context, reading *domain.Reading) (bool, error)
	listFn   func(ctx context.Context, rng domain.TimeRange, limit, offset int) ([]domain.Reading, error)
	latestFn func(ctx context.Context) (*domain.Reading, error)

	mu          sync.Mutex
	inserted    []*domain.Reading
	lastRange   domain.TimeRange
	lastLimit   int
	lastOffset  int
	latestCalls int
}

func (r *stubRepo) Insert(ctx context.Context, reading *domain.Reading) (bool, error) {
	r.mu.Lock()
	r.inserted = append(r.inserted, reading)
	r.mu.Unlock()

	if r.insertFn != nil {
		return r.insertFn(ctx, reading)
	}
	return true, nil
}

func (r *stubRepo) ListByRange(ctx context.Context, rng domain.TimeRange, limit, offset int) ([]domain.Reading, error) {
	r.mu.Lock()
	r.lastRange = rng
	r.lastLimit = limit
	r.lastOffset = offset
	r.mu.Unlock()

	if r.listFn != nil {
		return r.listFn(ctx, rng, limit, offset)
	}
	return nil, nil
}

func (r *stubRepo) Latest(ctx context.Context) (*domain.Reading, error) {
	r.mu.Lock()
	r.latestCalls++
	r.mu.Unlock()

	if r.latestFn != nil {
		return r.latestFn(ctx)
	}
	return nil, domain.ErrNoReadings
}

func (r *stubRepo) insertedReadings() []*domain.Reading {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Reading, len(r.inserted))
	copy(out, r.inserted)
	return out
}

// stubPublisher records broadcast payloads synchronously.
type stubPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *stubPublisher) PublishAsync(msg []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := make([]byte, len(msg))
	copy(cp, msg)
	p.payloads = append(p.payloads, cp)
}

func (p *stubPublisher) published() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.payloads))
	copy(out, p.payloads)
	return out
}

// stubCache implements LatestCache.
type stubCache struct {
	getFn func(ctx context.Context) (*domain.Reading, error)
	setFn func(ctx context.Context, reading *domain.Reading) error

	mu       sync.Mutex
	setCalls int
}

func (c *stubCache) Get(ctx context.Context) (*domain.Reading, error) {
	if c.getFn != nil {
		return c.getFn(ctx)
	}
	return nil, errors.New("cache empty")
}

func (c *stubCache) Set(ctx context.Context, reading *domain.Reading) error {
	c.mu.Lock()
	c.setCalls++
	c.mu.Unlock()

	if c.setFn != nil {
		return c.setFn(ctx, reading)
	}
	return nil
}

// stubPinger implements Pinger for readiness tests.
type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(ctx context.Context) error {
	return p.err
}

func newTestConfig() *config.Config {
	return &config.Config{
		AppEnv:       "test",
		Port:         "0",
		IngestAPIKey: testIngestKey,
	}
}

func newTestServer(repo domain.ReadingRepository, cache LatestCache, pub Publisher, clock clockwork.Clock) *Server {
	if pub == nil {
		pub = &stubPublisher{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return NewServer(newTestConfig(), repo, cache, hub.NewRegistry(), pub, nil, nil, clock)
}

func doRequest(s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	httpReq := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httpReq)
	return rec
}

func withIngestKey() map[string]string {
	return map[string]string{ingestKeyHeader: testIngestKey}
}
