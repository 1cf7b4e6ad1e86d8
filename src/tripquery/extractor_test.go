package tripquery

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExtractor(now time.Time) *Extractor {
	return NewExtractor(slog.Default(), WithClock(func() time.Time { return now }))
}

func TestExtractCities(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantDeparture string
		wantArrival   string
		wantErr       bool
	}{
		{
			name:          "from-to with dates",
			input:         "flights and hotels from Madrid to New York from 1st Oct to 7th Oct 2025",
			wantDeparture: "madrid",
			wantArrival:   "new york",
		},
		{
			name:          "bare to without from",
			input:         "madrid to new york find me flights",
			wantDeparture: "madrid",
			wantArrival:   "new york",
		},
		{
			name:          "stop words stripped",
			input:         "I want to plan a trip from Paris to Rome",
			wantDeparture: "paris",
			wantArrival:   "rome",
		},
		{
			name:          "misspelled madrid normalized",
			input:         "from london to mardrid",
			wantDeparture: "london",
			wantArrival:   "madrid",
		},
		{
			name:          "second misspelling normalized",
			input:         "from london to mardid",
			wantDeparture: "london",
			wantArrival:   "madrid",
		},
		{
			name:          "capture stops before on-date clause",
			input:         "from berlin to tokyo on 3 march 2026",
			wantDeparture: "berlin",
			wantArrival:   "tokyo",
		},
		{
			name:    "no city pattern",
			input:   "show me something nice",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	now := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := testExtractor(now).Extract(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNoCityPattern)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDeparture, q.DepartureCity)
			assert.Equal(t, tt.wantArrival, q.ArrivalCity)
		})
	}
}

func TestExtractDates(t *testing.T) {
	now := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)

	t.Run("ordinal suffixes stripped", func(t *testing.T) {
		q, err := testExtractor(now).Extract("from madrid to new york from 1st oct to 7th oct 2025")
		require.NoError(t, err)
		assert.Equal(t, "2025-10-01", q.OutboundDateString())
		assert.Equal(t, "2025-10-07", q.ReturnDateString())
		assert.False(t, q.DatesDefaulted)
	})

	t.Run("full month names accepted", func(t *testing.T) {
		q, err := testExtractor(now).Extract("from madrid to new york from 2nd october to 9th october 2025")
		require.NoError(t, err)
		assert.Equal(t, "2025-10-02", q.OutboundDateString())
		assert.Equal(t, "2025-10-09", q.ReturnDateString())
	})

	t.Run("no date pattern yields default window", func(t *testing.T) {
		q, err := testExtractor(now).Extract("from madrid to new york")
		require.NoError(t, err)
		assert.Equal(t, "2025-09-16", q.OutboundDateString())
		assert.Equal(t, "2025-09-19", q.ReturnDateString())
		assert.True(t, q.DatesDefaulted)
	})

	t.Run("unparseable month falls back silently", func(t *testing.T) {
		q, err := testExtractor(now).Extract("from madrid to new york from 1st qz to 7th qz 2025")
		require.NoError(t, err)
		assert.True(t, q.DatesDefaulted)
		assert.Equal(t, "2025-09-16", q.OutboundDateString())
	})
}

func TestExtractHotelClass(t *testing.T) {
	now := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)

	q, err := testExtractor(now).Extract("from madrid to new york from 1st oct to 7th oct 2025, 4 star hotel")
	require.NoError(t, err)
	assert.Equal(t, "4", q.HotelClass)

	q, err = testExtractor(now).Extract("from madrid to new york")
	require.NoError(t, err)
	assert.Empty(t, q.HotelClass)
}

func TestExtractDefaults(t *testing.T) {
	now := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)

	q, err := testExtractor(now).Extract("from madrid to new york")
	require.NoError(t, err)
	assert.Equal(t, 1, q.Adults)
	assert.Equal(t, 0, q.Children)
	assert.Equal(t, 1, q.Rooms)
}
