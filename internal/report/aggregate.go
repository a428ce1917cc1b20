package report

import (
	"sort"

	"github.com/arc-moshe/GCO-RideAmigos/internal/model"
)

// GramsToPounds converts grams of CO2 to pounds. Conversion is applied to
// summed totals, never per row, so rounding cannot compound across users.
const GramsToPounds = 0.00220462

// Metric names used by the aggregation passes.
const (
	MetricTrips   = "Trips"
	MetricMiles   = "Miles"
	MetricVMR     = "VMR"
	MetricCO2     = "CO2"
	MetricDollars = "Dollars"
	MetricLogs    = "Logs"
	MetricLogger  = "Logger"
	MetricClean   = "Clean Loggers"
)

// Reducer folds a new observation into an accumulated metric value.
type Reducer func(acc, v float64) float64

// ReduceSum accumulates by addition.
func ReduceSum(acc, v float64) float64 { return acc + v }

// ReduceMax keeps the largest observation.
func ReduceMax(acc, v float64) float64 {
	if v > acc {
		return v
	}
	return acc
}

// Metrics is a bag of named numeric values for one row or one group.
type Metrics map[string]float64

// sumTripMetrics declares the standard five-metric summing reduction.
var sumTripMetrics = map[string]Reducer{
	MetricTrips:   ReduceSum,
	MetricMiles:   ReduceSum,
	MetricVMR:     ReduceSum,
	MetricCO2:     ReduceSum,
	MetricDollars: ReduceSum,
}

// GroupBy folds rows into one Metrics bag per key. reducers declares how
// each metric accumulates; metrics not named there are dropped. Key
// equality is exact tuple match, so Unknown and fallback labels group
// like any other value.
func GroupBy[R any, K comparable](rows []R, key func(R) K, metrics func(R) Metrics, reducers map[string]Reducer) map[K]Metrics {
	out := make(map[K]Metrics)
	for _, r := range rows {
		k := key(r)
		acc, ok := out[k]
		if !ok {
			acc = make(Metrics, len(reducers))
			out[k] = acc
		}
		for name, v := range metrics(r) {
			reduce, declared := reducers[name]
			if !declared {
				continue
			}
			if cur, seen := acc[name]; seen {
				acc[name] = reduce(cur, v)
			} else {
				acc[name] = v
			}
		}
	}
	return out
}

// UserModeKey identifies one user's activity in one mode within one
// service area and home ZIP.
type UserModeKey struct {
	UserID  string
	Method  model.Method
	Area    string // unadjusted ESO or funding-adjusted label, per pass
	HomeZIP string
}

// UserModeAggregate is the per-user-per-mode grain feeding the Tableau
// report, the TDM pivot and the logger rollup.
type UserModeAggregate struct {
	UserModeKey
	Trips   float64
	Miles   float64
	VMR     float64
	CO2     float64
	Dollars float64
}

func tripMetrics(t model.Trip) Metrics {
	return Metrics{
		MetricTrips:   t.Trips,
		MetricMiles:   t.Miles,
		MetricVMR:     t.VMR,
		MetricCO2:     t.CO2,
		MetricDollars: t.Dollars,
	}
}

// PerUserMode sums the five trip metrics per (user, method, area, home
// ZIP). With adjusted=false the area key is the unadjusted service area;
// with adjusted=true it is the funding-adjusted label.
func PerUserMode(trips []model.Trip, adjusted bool) []UserModeAggregate {
	key := func(t model.Trip) UserModeKey {
		area := t.ESO
		if adjusted {
			area = t.FundingAdjusted
		}
		return UserModeKey{UserID: t.UserID, Method: t.Method, Area: area, HomeZIP: t.HomeZIP}
	}

	grouped := GroupBy(trips, key, tripMetrics, sumTripMetrics)

	out := make([]UserModeAggregate, 0, len(grouped))
	for k, m := range grouped {
		out = append(out, UserModeAggregate{
			UserModeKey: k,
			Trips:       m[MetricTrips],
			Miles:       m[MetricMiles],
			VMR:         m[MetricVMR],
			CO2:         m[MetricCO2],
			Dollars:     m[MetricDollars],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].UserModeKey, out[j].UserModeKey
		if a.UserID != b.UserID {
			return a.UserID < b.UserID
		}
		if a.Method != b.Method {
			return a.Method < b.Method
		}
		if a.Area != b.Area {
			return a.Area < b.Area
		}
		return a.HomeZIP < b.HomeZIP
	})
	return out
}

// LoggerCounts holds per-territory logger tallies for the GDOT report.
type LoggerCounts struct {
	Territory    string
	Loggers      float64
	CleanLoggers float64
}

// CountLoggers rolls the funding-adjusted per-user-per-mode aggregate up
// to per-territory logger counts. A user is a logger once regardless of
// how many modes they logged, and a clean logger if any logged mode is
// not Drive (max over modes). territoryByUser maps user IDs to their
// collapsed territory; users absent from it land in the Unknown bucket.
func CountLoggers(perUser []UserModeAggregate, territoryByUser map[string]string) []LoggerCounts {
	perUserFlags := GroupBy(perUser,
		func(a UserModeAggregate) string { return a.UserID },
		func(a UserModeAggregate) Metrics {
			clean := 1.0
			if a.Method == model.MethodDrive {
				clean = 0
			}
			return Metrics{MetricLogger: 1, MetricClean: clean}
		},
		map[string]Reducer{MetricLogger: ReduceMax, MetricClean: ReduceMax},
	)

	type userFlags struct {
		userID string
		m      Metrics
	}
	flat := make([]userFlags, 0, len(perUserFlags))
	for id, m := range perUserFlags {
		flat = append(flat, userFlags{userID: id, m: m})
	}

	byTerritory := GroupBy(flat,
		func(f userFlags) string {
			if t, ok := territoryByUser[f.userID]; ok {
				return t
			}
			return Collapse("")
		},
		func(f userFlags) Metrics { return f.m },
		map[string]Reducer{MetricLogger: ReduceSum, MetricClean: ReduceSum},
	)

	out := make([]LoggerCounts, 0, len(byTerritory))
	for territory, m := range byTerritory {
		out = append(out, LoggerCounts{
			Territory:    territory,
			Loggers:      m[MetricLogger],
			CleanLoggers: m[MetricClean],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Territory < out[j].Territory })
	return out
}

// TerritoryTotals is the per-territory metric rollup for the GDOT report.
type TerritoryTotals struct {
	Territory string
	Trips     float64
	Miles     float64
	VMR       float64
	CO2Grams  float64
	CO2Pounds float64
	Dollars   float64
}

// TotalsByTerritory sums the funding-adjusted per-user-per-mode aggregate
// by collapsed territory. CO2 pounds are derived from the summed grams.
func TotalsByTerritory(perUser []UserModeAggregate) []TerritoryTotals {
	grouped := GroupBy(perUser,
		func(a UserModeAggregate) string { return Collapse(a.Area) },
		func(a UserModeAggregate) Metrics {
			return Metrics{
				MetricTrips:   a.Trips,
				MetricMiles:   a.Miles,
				MetricVMR:     a.VMR,
				MetricCO2:     a.CO2,
				MetricDollars: a.Dollars,
			}
		},
		sumTripMetrics,
	)

	out := make([]TerritoryTotals, 0, len(grouped))
	for territory, m := range grouped {
		out = append(out, TerritoryTotals{
			Territory: territory,
			Trips:     m[MetricTrips],
			Miles:     m[MetricMiles],
			VMR:       m[MetricVMR],
			CO2Grams:  m[MetricCO2],
			CO2Pounds: m[MetricCO2] * GramsToPounds,
			Dollars:   m[MetricDollars],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Territory < out[j].Territory })
	return out
}

// CountNewUsers sums the new-user flag per territory. Only the flag is
// aggregated; no unrelated numeric columns ride along.
func CountNewUsers(users []model.User) map[string]float64 {
	grouped := GroupBy(users,
		func(u model.User) string { return u.Territory },
		func(u model.User) Metrics {
			v := 0.0
			if u.IsNew {
				v = 1
			}
			return Metrics{"New Users": v}
		},
		map[string]Reducer{"New Users": ReduceSum},
	)

	out := make(map[string]float64, len(grouped))
	for territory, m := range grouped {
		out[territory] = m["New Users"]
	}
	return out
}

// MethodLogCount is one (territory, method) log tally feeding the wide
// GDOT pivot.
type MethodLogCount struct {
	Territory string
	Method    model.Method
	Logs      float64
}

// LogsByTerritoryMethod sums log counts per (territory, method) across
// all enriched trips.
func LogsByTerritoryMethod(trips []model.Trip) []MethodLogCount {
	type key struct {
		Territory string
		Method    model.Method
	}
	grouped := GroupBy(trips,
		func(t model.Trip) key { return key{Territory: t.Territory, Method: t.Method} },
		func(t model.Trip) Metrics { return Metrics{MetricLogs: t.Logs} },
		map[string]Reducer{MetricLogs: ReduceSum},
	)

	out := make([]MethodLogCount, 0, len(grouped))
	for k, m := range grouped {
		out = append(out, MethodLogCount{Territory: k.Territory, Method: k.Method, Logs: m[MetricLogs]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Territory != out[j].Territory {
			return out[i].Territory < out[j].Territory
		}
		return out[i].Method < out[j].Method
	})
	return out
}
