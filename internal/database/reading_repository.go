package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/firesense/firesense/internal/domain"
)

// readingColumns must match the Scan order in scanReading.
const readingColumns = `id, thingspeak_id, recorded_at, temperature, humidity, latitude, longitude, fire_score`

// ReadingRepo implements domain.ReadingRepository backed by PostgreSQL.
// The JSON field created_at maps to the recorded_at column (measurement time);
// the table's own created_at tracks row insertion and is not exposed.
type ReadingRepo struct {
	pool *pgxpool.Pool
}

// NewReadingRepo creates a ReadingRepo from the shared connection pool.
func NewReadingRepo(pool *pgxpool.Pool) *ReadingRepo {
	return &ReadingRepo{pool: pool}
}

// Insert stores a reading and fills in its generated ID. A thingspeak_id
// collision is the known duplicate-upload case and reports (false, nil).
func (r *ReadingRepo) Insert(ctx context.Context, reading *domain.Reading) (bool, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO readings (thingspeak_id, recorded_at, temperature, humidity, latitude, longitude, fire_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (thingspeak_id) DO NOTHING
		RETURNING id
	`, reading.ThingspeakID, reading.CreatedAt, reading.Temperature, reading.Humidity,
		reading.Latitude, reading.Longitude, reading.FireScore).Scan(&reading.ID)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert reading: %w", err)
	}
	return true, nil
}

// ListByRange returns readings within rng, newest first.
func (r *ReadingRepo) ListByRange(ctx context.Context, rng domain.TimeRange, limit, offset int) ([]domain.Reading, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM readings
		WHERE %s
		ORDER BY recorded_at DESC
		LIMIT $1 OFFSET $2
	`, readingColumns, rangeFilter(rng))

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	readings := make([]domain.Reading, 0, limit)
	for rows.Next() {
		var reading domain.Reading
		if err := scanReading(rows, &reading); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		readings = append(readings, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return readings, nil
}

// Latest returns the most recent reading.
func (r *ReadingRepo) Latest(ctx context.Context) (*domain.Reading, error) {
	var reading domain.Reading
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s
		FROM readings
		ORDER BY recorded_at DESC
		LIMIT 1
	`, readingColumns))

	err := scanReading(row, &reading)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNoReadings
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest reading: %w", err)
	}
	return &reading, nil
}

// rangeFilter maps the enumerated time range to its WHERE fragment. The range
// is validated at the handler, so only the enum values reach this switch.
func rangeFilter(rng domain.TimeRange) string {
	switch rng {
	case domain.RangeToday:
		return "recorded_at >= NOW()::date"
	case domain.Range30Days:
		return "recorded_at >= NOW() - INTERVAL '30 days'"
	default:
		return "recorded_at >= NOW() - INTERVAL '7 days'"
	}
}

func scanReading(row pgx.Row, reading *domain.Reading) error {
	return row.Scan(
		&reading.ID, &reading.ThingspeakID, &reading.CreatedAt, &reading.Temperature,
		&reading.Humidity, &reading.Latitude, &reading.Longitude, &reading.FireScore,
	)
}
