package domain

import (
	"context"
	"time"
)

// Reading is one sensor measurement reported by an IoT uploader. The same
// shape is used for ingest payloads, query responses, and broadcast messages.
type Reading struct {
	ID           int64     `json:"id"`
	ThingspeakID int64     `json:"thingspeak_id"`
	CreatedAt    time.Time `json:"created_at"`
	Temperature  float64   `json:"temperature"`
	Humidity     float64   `json:"humidity"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	FireScore    float64   `json:"fire_score"`
}

// ReadingRepository is the persistence collaborator for sensor readings.
type ReadingRepository interface {
	// Insert stores a reading. Returns false (and no error) when a reading
	// with the same ThingspeakID already exists.
	Insert(ctx context.Context, reading *Reading) (bool, error)

	// ListByRange returns readings within rng, newest first.
	ListByRange(ctx context.Context, rng TimeRange, limit, offset int) ([]Reading, error)

	// Latest returns the most recent reading, or ErrNoReadings.
	Latest(ctx context.Context) (*Reading, error)
}
