package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/jonboulle/clockwork"
)

// timestampLayouts are tried in order for string payloads. Offset-less
// layouts are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// CoerceTimestamp interprets the created_at value of an ingest payload.
// Accepted forms: epoch seconds (integer or fractional) and ISO-8601 strings
// (a trailing Z is the same instant as +00:00). Missing or unparseable values
// fall back to the clock's current time.
func CoerceTimestamp(raw json.RawMessage, clock clockwork.Clock) time.Time {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return clock.Now().UTC()
	}

	var epoch float64
	if err := json.Unmarshal(trimmed, &epoch); err == nil {
		sec, frac := math.Modf(epoch)
		return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC()
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC()
			}
		}
	}

	return clock.Now().UTC()
}
