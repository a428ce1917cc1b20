package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/arc-moshe/GCO-RideAmigos/internal/model"
	"github.com/arc-moshe/GCO-RideAmigos/internal/zone"
)

// Result holds the four report tables produced by one pipeline run.
type Result struct {
	RunID   string
	Start   time.Time
	End     time.Time
	Tableau []TableauRow
	GDOT    []GDOTRow
	TDM     []TDMRow
	Audit   []AuditRow
}

// Process runs the full batch transform: location resolution, territory
// normalization, trip enrichment, the aggregation passes, the two pivots
// and the four assemblers. Inputs are treated as read-only snapshots; the
// pipeline works on copies and the same inputs always yield the same
// four tables.
func Process(ctx context.Context, users []model.User, trips []model.Trip, layers *zone.Layers, start, end time.Time) (*Result, error) {
	if err := layers.Validate(); err != nil {
		return nil, err
	}
	start, end = dateOnly(start), dateOnly(end)
	if end.Before(start) {
		return nil, eris.Errorf("report: end date %s before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))
	log.Info("report: starting run",
		zap.Int("users", len(users)),
		zap.Int("trips", len(trips)),
		zap.Time("start", start),
		zap.Time("end", end),
	)

	users = append([]model.User(nil), users...)
	trips = append([]model.Trip(nil), trips...)

	// Stage 1: geospatial classification.
	if err := ResolveLocations(ctx, users, layers); err != nil {
		return nil, err
	}

	// Stage 2: territory normalization and new-user flagging.
	for i := range users {
		u := &users[i]
		u.FundingAdjusted, u.Territory = Normalize(u.WorkESO, u.FundingFlag != "")
		u.IsNew = isNewUser(u.CreatedAt, start, end)
	}

	// Stage 3: trip enrichment (left join on users).
	userByID := make(map[string]*model.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}
	var orphaned int
	for i := range trips {
		t := &trips[i]
		t.Method = model.CanonicalMethod(string(t.Method))
		t.Logs = 1
		if u, ok := userByID[t.UserID]; ok {
			t.ESO = u.WorkESO
			t.HomeZIP = u.HomeZIP
			t.FundingAdjusted = u.FundingAdjusted
			t.Territory = u.Territory
			continue
		}
		// Trip without an owning user: classification fields resolve to
		// the Unknown path, the trip itself is retained.
		orphaned++
		t.ESO = zone.LabelUnknown
		t.HomeZIP = zone.LabelUnknown
		t.FundingAdjusted, t.Territory = Normalize("", false)
	}
	if orphaned > 0 {
		log.Warn("report: trips reference missing users", zap.Int("trips", orphaned))
	}

	// Stage 4: aggregation passes.
	indiv := PerUserMode(trips, false)
	indivAdjusted := PerUserMode(trips, true)

	territoryByUser := make(map[string]string, len(users))
	for i := range users {
		territoryByUser[users[i].ID] = users[i].Territory
	}
	loggers := CountLoggers(indivAdjusted, territoryByUser)
	totals := TotalsByTerritory(indivAdjusted)
	newUsers := CountNewUsers(users)
	logCounts := LogsByTerritoryMethod(trips)

	// Stage 5: reshape.
	wideTerritory := PivotTerritoryMethod(logCounts)
	wideUser := PivotUserMode(indiv)

	// Stage 6: assembly.
	result := &Result{
		RunID:   runID,
		Start:   start,
		End:     end,
		Tableau: BuildTableau(indiv, start),
		GDOT:    BuildGDOT(totals, newUsers, wideTerritory, loggers),
		TDM:     BuildTDM(users, wideUser, start),
		Audit:   BuildAudit(users),
	}

	log.Info("report: run complete",
		zap.Int("tableau_rows", len(result.Tableau)),
		zap.Int("gdot_rows", len(result.GDOT)),
		zap.Int("tdm_rows", len(result.TDM)),
		zap.Int("audit_rows", len(result.Audit)),
	)
	return result, nil
}

// isNewUser reports whether a registration date falls inside the
// reporting window, inclusive on both ends. An unparsed timestamp never
// counts as new.
func isNewUser(createdAt *time.Time, start, end time.Time) bool {
	if createdAt == nil {
		return false
	}
	d := dateOnly(*createdAt)
	return !d.Before(start) && !d.After(end)
}

// dateOnly truncates a timestamp to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
