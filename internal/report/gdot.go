package report

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/arc-moshe/GCO-RideAmigos/internal/model"
)

// GDOTRow is one territory's line in the state-agency summary.
type GDOTRow struct {
	Territory    string
	NewUsers     float64
	Loggers      float64
	CleanLoggers float64
	Logs         map[model.Method]float64 // per non-drive mode
	ReducedVMT   float64
	ReducedCO2   float64 // pounds
	MoneySaved   float64
}

// BuildGDOT joins the four per-territory sources into one row per
// territory. The join is inner: a territory missing from any source is
// dropped rather than defaulted, matching the agency report contract.
func BuildGDOT(totals []TerritoryTotals, newUsers map[string]float64, wide []TerritoryMethodWide, loggers []LoggerCounts) []GDOTRow {
	wideByTerritory := make(map[string]TerritoryMethodWide, len(wide))
	for _, w := range wide {
		wideByTerritory[w.Territory] = w
	}
	loggersByTerritory := make(map[string]LoggerCounts, len(loggers))
	for _, l := range loggers {
		loggersByTerritory[l.Territory] = l
	}

	out := make([]GDOTRow, 0, len(totals))
	for _, t := range totals {
		nu, ok := newUsers[t.Territory]
		if !ok {
			continue
		}
		w, ok := wideByTerritory[t.Territory]
		if !ok {
			continue
		}
		l, ok := loggersByTerritory[t.Territory]
		if !ok {
			continue
		}
		out = append(out, GDOTRow{
			Territory:    t.Territory,
			NewUsers:     nu,
			Loggers:      l.Loggers,
			CleanLoggers: l.CleanLoggers,
			Logs:         w.Logs,
			ReducedVMT:   t.VMR,
			ReducedCO2:   t.CO2Pounds,
			MoneySaved:   t.Dollars,
		})
	}

	c := collate.New(language.English)
	sort.Slice(out, func(i, j int) bool {
		return c.CompareString(out[i].Territory, out[j].Territory) < 0
	})
	return out
}
