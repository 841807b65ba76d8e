package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestCoerceTimestamp_ISO8601(t *testing.T) {
	clock := clockwork.NewFakeClockAt(fixedNow)

	got := CoerceTimestamp(json.RawMessage(`"2024-01-01T00:00:00Z"`), clock)
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, got.Equal(want), "got %v, want %v", got, want)
}

func TestCoerceTimestamp_TrailingZEqualsUTCOffset(t *testing.T) {
	clock := clockwork.NewFakeClockAt(fixedNow)

	zulu := CoerceTimestamp(json.RawMessage(`"2024-01-01T00:00:00Z"`), clock)
	offset := CoerceTimestamp(json.RawMessage(`"2024-01-01T00:00:00+00:00"`), clock)
	assert.True(t, zulu.Equal(offset))
}

func TestCoerceTimestamp_EpochSeconds(t *testing.T) {
	clock := clockwork.NewFakeClockAt(fixedNow)

	got := CoerceTimestamp(json.RawMessage(`1704067200`), clock)
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, got.Equal(want), "got %v, want %v", got, want)
}

func TestCoerceTimestamp_FractionalEpoch(t *testing.T) {
	clock := clockwork.NewFakeClockAt(fixedNow)

	got := CoerceTimestamp(json.RawMessage(`1704067200.5`), clock)
	want := time.Date(2024, 1, 1, 0, 0, 0, 500000000, time.UTC)
	assert.WithinDuration(t, want, got, time.Millisecond)
}

func TestCoerceTimestamp_OffsetlessStringReadAsUTC(t *testing.T) {
	clock := clockwork.NewFakeClockAt(fixedNow)

	got := CoerceTimestamp(json.RawMessage(`"2024-01-01T00:00:00"`), clock)
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, got.Equal(want), "got %v, want %v", got, want)
}

func TestCoerceTimestamp_FallbackToClock(t *testing.T) {
	clock := clockwork.NewFakeClockAt(fixedNow)

	cases := map[string]json.RawMessage{
		"missing": nil,
		"null":    json.RawMessage(`null`),
		"garbage": json.RawMessage(`"not-a-timestamp"`),
		"object":  json.RawMessage(`{"weird":true}`),
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			got := CoerceTimestamp(raw, clock)
			assert.True(t, got.Equal(fixedNow), "got %v, want clock now %v", got, fixedNow)
		})
	}
}
