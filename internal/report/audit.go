package report

import (
	"sort"
	"strings"

	"github.com/arc-moshe/GCO-RideAmigos/internal/model"
	"github.com/arc-moshe/GCO-RideAmigos/internal/zone"
)

// legacyAliases remaps geocoded labels whose source-system spelling
// differs from the shapefile's.
var legacyAliases = map[string]string{
	"Midtown Transportation": "Midtown Alliance",
	"ASAP":                   "Atlantic Station (ASAP)",
}

// AuditRow flags one user whose geocoded service area disagrees with the
// self-reported one.
type AuditRow struct {
	UserID       string
	FirstName    string
	LastName     string
	WorkLocation string
	TMA          string
	GeocodedESO  string
}

// BuildAudit returns the discrepancy list: one row per user where the
// normalized geocoded work service area differs from the self-reported
// TMA. Agreeing rows are dropped; this is a data-quality diff, not a full
// audit trail.
func BuildAudit(users []model.User) []AuditRow {
	out := make([]AuditRow, 0)
	for _, u := range users {
		geocoded := normalizeGeocoded(u.WorkESO)
		tma := u.TMA
		if tma == "" {
			tma = TerritoryUnknownOut
		}
		if geocoded == tma {
			continue
		}
		out = append(out, AuditRow{
			UserID:       u.ID,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			WorkLocation: u.WorkLocation,
			TMA:          tma,
			GeocodedESO:  geocoded,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// normalizeGeocoded rewrites a geocoded service-area label into the
// vocabulary the source system uses for TMAs: colons stripped, fallback
// codes collapsed, legacy spellings remapped.
func normalizeGeocoded(eso string) string {
	eso = strings.ReplaceAll(eso, ":", "")
	if eso == zone.LabelUnknown || eso == zone.LabelOutOfRegion {
		return TerritoryUnknownOut
	}
	if alias, ok := legacyAliases[eso]; ok {
		return alias
	}
	return eso
}
