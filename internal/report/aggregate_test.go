package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-moshe/GCO-RideAmigos/internal/model"
)

func trip(userID string, method model.Method, area, zip string, trips, miles, vmr, co2, dollars float64) model.Trip {
	return model.Trip{
		UserID: userID, Method: method, ESO: area, FundingAdjusted: area,
		HomeZIP: zip, Territory: Collapse(area),
		Trips: trips, Miles: miles, VMR: vmr, CO2: co2, Dollars: dollars, Logs: 1,
	}
}

func TestGroupBy(t *testing.T) {
	rows := []model.Trip{
		trip("u1", model.MethodBike, "North", "30303", 2, 10, 5, 100, 1),
		trip("u1", model.MethodBike, "North", "30303", 3, 20, 10, 200, 2),
		trip("u2", model.MethodWalk, "North", "30303", 1, 1, 1, 10, 0),
	}

	grouped := GroupBy(rows,
		func(t model.Trip) string { return t.UserID },
		tripMetrics,
		sumTripMetrics,
	)

	require.Len(t, grouped, 2)
	assert.InDelta(t, 5, grouped["u1"][MetricTrips], 1e-9)
	assert.InDelta(t, 30, grouped["u1"][MetricMiles], 1e-9)
	assert.InDelta(t, 300, grouped["u1"][MetricCO2], 1e-9)
	assert.InDelta(t, 1, grouped["u2"][MetricTrips], 1e-9)
}

func TestGroupByUndeclaredMetricsDropped(t *testing.T) {
	rows := []model.Trip{trip("u1", model.MethodBike, "North", "30303", 2, 10, 5, 100, 1)}

	grouped := GroupBy(rows,
		func(t model.Trip) string { return t.UserID },
		tripMetrics,
		map[string]Reducer{MetricTrips: ReduceSum},
	)

	m := grouped["u1"]
	assert.Contains(t, m, MetricTrips)
	assert.NotContains(t, m, MetricMiles)
}

func TestReduceMax(t *testing.T) {
	assert.Equal(t, 5.0, ReduceMax(3, 5))
	assert.Equal(t, 5.0, ReduceMax(5, 3))
	assert.Equal(t, 0.0, ReduceMax(0, 0))
}

func TestPerUserModeSumsAndSorts(t *testing.T) {
	trips := []model.Trip{
		trip("u2", model.MethodWalk, "South", "30060", 1, 2, 2, 50, 0.5),
		trip("u1", model.MethodBike, "North", "30303", 2, 10, 5, 100, 1),
		trip("u1", model.MethodBike, "North", "30303", 3, 20, 10, 200, 2),
		trip("u1", model.MethodCarpool, "North", "30303", 1, 8, 4, 400, 1.5),
	}

	out := PerUserMode(trips, false)
	require.Len(t, out, 3)

	// Sorted by user then method.
	assert.Equal(t, "u1", out[0].UserID)
	assert.Equal(t, model.MethodBike, out[0].Method)
	assert.InDelta(t, 5, out[0].Trips, 1e-9)
	assert.InDelta(t, 30, out[0].Miles, 1e-9)
	assert.InDelta(t, 300, out[0].CO2, 1e-9)

	assert.Equal(t, model.MethodCarpool, out[1].Method)
	assert.Equal(t, "u2", out[2].UserID)
}

func TestPerUserModeConservation(t *testing.T) {
	trips := []model.Trip{
		trip("u1", model.MethodBike, "North", "30303", 2, 10, 5, 100, 1),
		trip("u1", model.MethodWalk, "North", "30303", 3, 20, 10, 200, 2),
		trip("u2", model.MethodBike, "South", "30060", 4, 40, 20, 300, 3),
	}

	var inTrips, inMiles, inCO2 float64
	for _, tr := range trips {
		inTrips += tr.Trips
		inMiles += tr.Miles
		inCO2 += tr.CO2
	}

	var outTrips, outMiles, outCO2 float64
	for _, a := range PerUserMode(trips, false) {
		outTrips += a.Trips
		outMiles += a.Miles
		outCO2 += a.CO2
	}

	assert.InDelta(t, inTrips, outTrips, 1e-9)
	assert.InDelta(t, inMiles, outMiles, 1e-9)
	assert.InDelta(t, inCO2, outCO2, 1e-9)
}

func TestPerUserModeAreaKey(t *testing.T) {
	tr := model.Trip{
		UserID: "u1", Method: model.MethodBike,
		ESO: "North", FundingAdjusted: FundedLabel, HomeZIP: "30303",
		Trips: 1,
	}

	unadjusted := PerUserMode([]model.Trip{tr}, false)
	require.Len(t, unadjusted, 1)
	assert.Equal(t, "North", unadjusted[0].Area)

	adjusted := PerUserMode([]model.Trip{tr}, true)
	require.Len(t, adjusted, 1)
	assert.Equal(t, FundedLabel, adjusted[0].Area)
}

func TestCountLoggers(t *testing.T) {
	perUser := []UserModeAggregate{
		{UserModeKey: UserModeKey{UserID: "u1", Method: model.MethodBike, Area: "GCO: Cobb"}, Trips: 2},
		{UserModeKey: UserModeKey{UserID: "u1", Method: model.MethodWalk, Area: "GCO: Cobb"}, Trips: 1},
		{UserModeKey: UserModeKey{UserID: "u2", Method: model.MethodDrive, Area: "GCO: Cobb"}, Trips: 3},
		{UserModeKey: UserModeKey{UserID: "u3", Method: model.MethodTransit, Area: "Midtown Alliance"}, Trips: 1},
	}
	territoryByUser := map[string]string{
		"u1": "GCO",
		"u2": "GCO",
		"u3": "Midtown Alliance",
	}

	out := CountLoggers(perUser, territoryByUser)
	require.Len(t, out, 2)

	// Sorted by territory.
	assert.Equal(t, "GCO", out[0].Territory)
	assert.InDelta(t, 2, out[0].Loggers, 1e-9, "u1 counts once despite two modes")
	assert.InDelta(t, 1, out[0].CleanLoggers, 1e-9, "drive-only u2 is not clean")

	assert.Equal(t, "Midtown Alliance", out[1].Territory)
	assert.InDelta(t, 1, out[1].Loggers, 1e-9)
	assert.InDelta(t, 1, out[1].CleanLoggers, 1e-9)
}

func TestCountLoggersDriveAndCleanMix(t *testing.T) {
	// A user logging both Drive and Bike is clean: max over modes.
	perUser := []UserModeAggregate{
		{UserModeKey: UserModeKey{UserID: "u1", Method: model.MethodDrive, Area: "North"}, Trips: 5},
		{UserModeKey: UserModeKey{UserID: "u1", Method: model.MethodBike, Area: "North"}, Trips: 1},
	}

	out := CountLoggers(perUser, map[string]string{"u1": "North"})
	require.Len(t, out, 1)
	assert.InDelta(t, 1, out[0].Loggers, 1e-9)
	assert.InDelta(t, 1, out[0].CleanLoggers, 1e-9)
}

func TestCountLoggersMissingTerritory(t *testing.T) {
	perUser := []UserModeAggregate{
		{UserModeKey: UserModeKey{UserID: "ghost", Method: model.MethodBike, Area: "North"}, Trips: 1},
	}

	out := CountLoggers(perUser, map[string]string{})
	require.Len(t, out, 1)
	assert.Equal(t, TerritoryUnknownOut, out[0].Territory)
}

func TestTotalsByTerritory(t *testing.T) {
	perUser := []UserModeAggregate{
		{UserModeKey: UserModeKey{UserID: "u1", Method: model.MethodBike, Area: "GCO: Cobb"}, Trips: 2, Miles: 10, VMR: 5, CO2: 1000, Dollars: 1},
		{UserModeKey: UserModeKey{UserID: "u2", Method: model.MethodWalk, Area: "GCO State/Fed"}, Trips: 1, Miles: 5, VMR: 5, CO2: 1000, Dollars: 2},
		{UserModeKey: UserModeKey{UserID: "u3", Method: model.MethodBike, Area: "Unknown"}, Trips: 1, Miles: 1, VMR: 1, CO2: 500, Dollars: 0.5},
	}

	out := TotalsByTerritory(perUser)
	require.Len(t, out, 2)

	assert.Equal(t, "GCO", out[0].Territory)
	assert.InDelta(t, 3, out[0].Trips, 1e-9)
	assert.InDelta(t, 2000, out[0].CO2Grams, 1e-9)
	// Conversion applies to the summed grams, not per row.
	assert.InDelta(t, 2000*GramsToPounds, out[0].CO2Pounds, 1e-9)

	assert.Equal(t, TerritoryUnknownOut, out[1].Territory)
	assert.InDelta(t, 500*GramsToPounds, out[1].CO2Pounds, 1e-9)
}

func TestCountNewUsers(t *testing.T) {
	users := []model.User{
		{ID: "u1", Territory: "GCO", IsNew: true},
		{ID: "u2", Territory: "GCO", IsNew: false},
		{ID: "u3", Territory: "GCO", IsNew: true},
		{ID: "u4", Territory: "Midtown Alliance", IsNew: false},
	}

	out := CountNewUsers(users)
	assert.InDelta(t, 2, out["GCO"], 1e-9)
	assert.InDelta(t, 0, out["Midtown Alliance"], 1e-9)
}

func TestLogsByTerritoryMethod(t *testing.T) {
	trips := []model.Trip{
		{UserID: "u1", Method: model.MethodBike, Territory: "GCO", Logs: 1},
		{UserID: "u2", Method: model.MethodBike, Territory: "GCO", Logs: 1},
		{UserID: "u1", Method: model.MethodWalk, Territory: "GCO", Logs: 1},
		{UserID: "u3", Method: model.MethodBike, Territory: "Midtown Alliance", Logs: 1},
	}

	out := LogsByTerritoryMethod(trips)
	require.Len(t, out, 3)

	assert.Equal(t, MethodLogCount{Territory: "GCO", Method: model.MethodBike, Logs: 2}, out[0])
	assert.Equal(t, MethodLogCount{Territory: "GCO", Method: model.MethodWalk, Logs: 1}, out[1])
	assert.Equal(t, MethodLogCount{Territory: "Midtown Alliance", Method: model.MethodBike, Logs: 1}, out[2])
}
