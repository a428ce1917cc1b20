package report

import (
	"sort"

	"github.com/arc-moshe/GCO-RideAmigos/internal/model"
)

// ModeMetrics is one mode's column group in the wide per-user table.
// Logger is nil when the user never logged the mode; a present pointer
// always holds 1. Zero metrics with a nil Logger mean "never logged",
// which the TDM report distinguishes from "logged zero".
type ModeMetrics struct {
	Trips     float64
	Miles     float64
	VMR       float64
	CO2Pounds float64
	Dollars   float64
	Logger    *int
}

// UserWide is one row of the wide User×Method table: every canonical mode
// gets a column group, plus the Clean rollup across the non-drive modes.
type UserWide struct {
	UserID string
	Modes  map[model.Method]ModeMetrics
	Clean  ModeMetrics
}

// PivotUserMode reshapes the per-user-per-mode aggregate into one row per
// user with fixed per-mode column groups. Missing (user, mode)
// combinations are zero-filled; the Clean rollup is a pure fold over the
// eight non-drive modes of the finished row, not a mutable accumulator.
func PivotUserMode(rows []UserModeAggregate) []UserWide {
	byUser := make(map[string]map[model.Method]ModeMetrics)
	var order []string
	for _, r := range rows {
		modes, ok := byUser[r.UserID]
		if !ok {
			modes = make(map[model.Method]ModeMetrics, len(model.Methods()))
			for _, m := range model.Methods() {
				modes[m] = ModeMetrics{}
			}
			byUser[r.UserID] = modes
			order = append(order, r.UserID)
		}
		if _, known := modes[r.Method]; !known {
			// Unrecognized methods have no column in the fixed pivot.
			continue
		}
		cur := modes[r.Method]
		cur.Trips += r.Trips
		cur.Miles += r.Miles
		cur.VMR += r.VMR
		cur.CO2Pounds += r.CO2 * GramsToPounds
		cur.Dollars += r.Dollars
		modes[r.Method] = cur
	}

	sort.Strings(order)
	out := make([]UserWide, 0, len(order))
	for _, id := range order {
		modes := byUser[id]
		for method, mm := range modes {
			mm.Logger = loggerFlag(mm.Trips)
			modes[method] = mm
		}
		out = append(out, UserWide{
			UserID: id,
			Modes:  modes,
			Clean:  cleanRollup(modes),
		})
	}
	return out
}

// cleanRollup folds the non-drive mode groups into the Clean column group.
func cleanRollup(modes map[model.Method]ModeMetrics) ModeMetrics {
	var clean ModeMetrics
	for _, m := range model.CleanMethods() {
		mm := modes[m]
		clean.Trips += mm.Trips
		clean.Miles += mm.Miles
		clean.VMR += mm.VMR
		clean.CO2Pounds += mm.CO2Pounds
		clean.Dollars += mm.Dollars
	}
	clean.Logger = loggerFlag(clean.Trips)
	return clean
}

// loggerFlag returns a 1 pointer when any trips were logged, nil
// otherwise. Absence, not zero, is the "never logged" signal.
func loggerFlag(trips float64) *int {
	if trips > 0 {
		one := 1
		return &one
	}
	return nil
}

// TerritoryMethodWide is one row of the wide Territory×Method log-count
// table. Logs holds one zero-filled column per non-drive mode; Drive is
// dropped by reporting policy.
type TerritoryMethodWide struct {
	Territory string
	Logs      map[model.Method]float64
}

// PivotTerritoryMethod reshapes per-(territory, method) log counts into
// one row per territory. Missing combinations fill with zero; Drive and
// unrecognized methods get no column.
func PivotTerritoryMethod(rows []MethodLogCount) []TerritoryMethodWide {
	byTerritory := make(map[string]map[model.Method]float64)
	var order []string
	for _, r := range rows {
		logs, ok := byTerritory[r.Territory]
		if !ok {
			logs = make(map[model.Method]float64, len(model.CleanMethods()))
			for _, m := range model.CleanMethods() {
				logs[m] = 0
			}
			byTerritory[r.Territory] = logs
			order = append(order, r.Territory)
		}
		if _, keep := logs[r.Method]; keep {
			logs[r.Method] += r.Logs
		}
	}

	sort.Strings(order)
	out := make([]TerritoryMethodWide, 0, len(order))
	for _, territory := range order {
		out = append(out, TerritoryMethodWide{Territory: territory, Logs: byTerritory[territory]})
	}
	return out
}
