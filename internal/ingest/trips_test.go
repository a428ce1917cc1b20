package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-moshe/GCO-RideAmigos/internal/model"
)

var tripsHeader = []string{
	"User ID", "Mode", "Trips", "Miles",
	"Vehicle Miles Reduced", "CO2 Savings (grams)", "Dollars Savings",
}

func TestParseTrips(t *testing.T) {
	rows := [][]string{
		tripsHeader,
		{"u1", "carpool", "2", "10.5", "5.25", "1,200", "$3.50"},
	}

	trips, err := ParseTrips(rows)
	require.NoError(t, err)
	require.Len(t, trips, 1)

	tr := trips[0]
	assert.Equal(t, "u1", tr.UserID)
	assert.Equal(t, model.Method("carpool"), tr.Method, "mode kept verbatim")
	assert.InDelta(t, 2, tr.Trips, 1e-9)
	assert.InDelta(t, 10.5, tr.Miles, 1e-9)
	assert.InDelta(t, 5.25, tr.VMR, 1e-9)
	assert.InDelta(t, 1200, tr.CO2, 1e-9, "thousands separator tolerated")
	assert.InDelta(t, 3.50, tr.Dollars, 1e-9, "currency sign tolerated")
}

func TestParseTripsMissingColumns(t *testing.T) {
	rows := [][]string{{"User ID", "Mode"}}

	_, err := ParseTrips(rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Trips")
	assert.Contains(t, err.Error(), "CO2 Savings (grams)")
}

func TestParseTripsEmpty(t *testing.T) {
	_, err := ParseTrips(nil)
	assert.Error(t, err)
}

func TestParseTripsSkipsBlankUserIDs(t *testing.T) {
	rows := [][]string{
		tripsHeader,
		{"", "bike", "1", "1", "1", "1", "1"},
		{"u1", "bike", "1", "1", "1", "1", "1"},
	}

	trips, err := ParseTrips(rows)
	require.NoError(t, err)
	require.Len(t, trips, 1)
}

func TestParseTripsBadNumbersCountZero(t *testing.T) {
	rows := [][]string{
		tripsHeader,
		{"u1", "bike", "n/a", "", "xyz", "1000", "2"},
	}

	trips, err := ParseTrips(rows)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Zero(t, trips[0].Trips)
	assert.Zero(t, trips[0].Miles)
	assert.Zero(t, trips[0].VMR)
	assert.InDelta(t, 1000, trips[0].CO2, 1e-9)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"10", 10},
		{"10.5", 10.5},
		{"1,200.75", 1200.75},
		{"$3.50", 3.5},
		{" 7 ", 7},
		{"", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, parseNumber(tt.raw), 1e-9, "parseNumber(%q)", tt.raw)
	}
}
