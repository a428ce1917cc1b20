package report

import (
	"sort"
	"time"

	"github.com/arc-moshe/GCO-RideAmigos/internal/model"
)

// TableauRow is one (method, service area, home ZIP) aggregate for the
// visualization extract. The unadjusted service area is used here.
type TableauRow struct {
	Date        time.Time
	HomeZIP     string
	ServiceArea string
	Method      model.Method
	Trips       float64
	Miles       float64
	VMR         float64
	CO2         float64
	Dollars     float64
}

// BuildTableau collapses the unadjusted per-user-per-mode aggregate to one
// row per (method, service area, home ZIP). Drive rows are excluded by
// policy; reportDate stamps every row; output is sorted by home ZIP,
// service area, then method.
func BuildTableau(perUser []UserModeAggregate, reportDate time.Time) []TableauRow {
	type key struct {
		Method  model.Method
		Area    string
		HomeZIP string
	}
	grouped := GroupBy(perUser,
		func(a UserModeAggregate) key {
			return key{Method: a.Method, Area: a.Area, HomeZIP: a.HomeZIP}
		},
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

	out := make([]TableauRow, 0, len(grouped))
	for k, m := range grouped {
		if k.Method == model.MethodDrive {
			continue
		}
		out = append(out, TableauRow{
			Date:        reportDate,
			HomeZIP:     k.HomeZIP,
			ServiceArea: k.Area,
			Method:      k.Method,
			Trips:       m[MetricTrips],
			Miles:       m[MetricMiles],
			VMR:         m[MetricVMR],
			CO2:         m[MetricCO2],
			Dollars:     m[MetricDollars],
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].HomeZIP != out[j].HomeZIP {
			return out[i].HomeZIP < out[j].HomeZIP
		}
		if out[i].ServiceArea != out[j].ServiceArea {
			return out[i].ServiceArea < out[j].ServiceArea
		}
		return out[i].Method < out[j].Method
	})
	return out
}
