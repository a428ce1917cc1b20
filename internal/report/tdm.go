package report

import (
	"sort"
	"time"

	"github.com/arc-moshe/GCO-RideAmigos/internal/model"
)

// TDMRow is one active user's line in the per-user wide extract.
type TDMRow struct {
	UserID      string
	HomeX       *float64
	HomeY       *float64
	WorkX       *float64
	WorkY       *float64
	TMA         string
	Legacy      *int // 1 when a legacy ID exists, otherwise absent
	Active      bool
	New         int
	CreatedDate string
	Modes       map[model.Method]ModeMetrics
	Clean       ModeMetrics
	Month       time.Time
	CountyIDW   string
	CountyWork  string
	ZipWork     string
	ESO         string
	CountyIDH   string
	CountyHome  string
	ZipHome     string
}

// BuildTDM joins active users with the wide User×Method table. The join
// is left: an active user with no logged trips still gets a row, with all
// metric columns zero and all logger columns absent.
func BuildTDM(users []model.User, wide []UserWide, month time.Time) []TDMRow {
	wideByUser := make(map[string]UserWide, len(wide))
	for _, w := range wide {
		wideByUser[w.UserID] = w
	}

	out := make([]TDMRow, 0, len(users))
	for _, u := range users {
		if !u.Active {
			continue
		}

		w, ok := wideByUser[u.ID]
		if !ok {
			w = emptyUserWide(u.ID)
		}

		newFlag := 0
		if u.IsNew {
			newFlag = 1
		}
		var legacy *int
		if u.LegacyID != "" {
			one := 1
			legacy = &one
		}

		out = append(out, TDMRow{
			UserID:      u.ID,
			HomeX:       u.HomeLon,
			HomeY:       u.HomeLat,
			WorkX:       u.WorkLon,
			WorkY:       u.WorkLat,
			TMA:         u.TMA,
			Legacy:      legacy,
			Active:      u.Active,
			New:         newFlag,
			CreatedDate: u.Created,
			Modes:       w.Modes,
			Clean:       w.Clean,
			Month:       month,
			CountyIDW:   u.WorkCountyFIPS,
			CountyWork:  u.WorkCountyName,
			ZipWork:     u.WorkZIP,
			ESO:         u.WorkESO,
			CountyIDH:   u.HomeCountyFIPS,
			CountyHome:  u.HomeCountyName,
			ZipHome:     u.HomeZIP,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// emptyUserWide builds the zero-filled wide row for a user with no trips.
func emptyUserWide(userID string) UserWide {
	modes := make(map[model.Method]ModeMetrics, len(model.Methods()))
	for _, m := range model.Methods() {
		modes[m] = ModeMetrics{}
	}
	return UserWide{UserID: userID, Modes: modes, Clean: ModeMetrics{}}
}
