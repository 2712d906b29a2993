package finance

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{1000, "Rp 1.000"},
		{1250000, "Rp 1.250.000"},
		{1250000.5, "Rp 1.250.000,5"},
		{12.3456, "Rp 12,346"},
		{-500000, "Rp -500.000"},
		{123456789, "Rp 123.456.789"},
		{math.NaN(), "Rp 0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRupiah(tt.in))
	}
}

func TestParseAppDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"empty", "", time.Unix(0, 0).UTC()},
		{"garbage", "not a date", time.Unix(0, 0).UTC()},
		{"rfc3339 utc", "2024-03-05T10:20:30Z", time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)},
		{"rfc3339 offset", "2024-03-05T17:20:30+07:00", time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)},
		{"zoneless treated as utc", "2024-03-05T10:20:30", time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)},
		{"zoneless with space", "2024-03-05 10:20:30.5", time.Date(2024, 3, 5, 10, 20, 30, 500000000, time.UTC)},
		{"date only", "2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(ParseAppDate(tt.in)), "got %v", ParseAppDate(tt.in))
		})
	}
}

func TestTryParseAppDate(t *testing.T) {
	epoch, ok := TryParseAppDate("1970-01-01T00:00:00Z")
	require.True(t, ok)
	assert.True(t, time.Unix(0, 0).Equal(epoch))

	_, ok = TryParseAppDate("")
	assert.False(t, ok)

	_, ok = TryParseAppDate("05/03/2024")
	assert.False(t, ok)
}

func TestParseDateKey(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)

	day, ok := ParseDateKey("2026-03-01", jakarta)
	require.True(t, ok)
	assert.True(t, time.Date(2026, 3, 1, 0, 0, 0, 0, jakarta).Equal(day))
	assert.True(t, time.Date(2026, 2, 28, 17, 0, 0, 0, time.UTC).Equal(day))

	day, ok = ParseDateKey("2026-03-01", nil)
	require.True(t, ok)
	assert.True(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).Equal(day))

	_, ok = ParseDateKey("2026-3-1", jakarta)
	assert.False(t, ok)
}

func TestLocalDateKey(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	instant := time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-05", LocalDateKey(instant, time.UTC))
	assert.Equal(t, "2024-03-06", LocalDateKey(instant, jakarta))
	assert.Equal(t, "2024-03-05", LocalDateKey(instant, nil))
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange("2024-12", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)

	_, _, err = MonthRange("12-2024", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestMonthStart(t *testing.T) {
	now := time.Date(2024, 7, 19, 13, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), MonthStart(now, time.UTC))
}
