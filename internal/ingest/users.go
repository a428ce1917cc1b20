package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/arc-moshe/GCO-RideAmigos/internal/model"
)

// createdLayout is the registration timestamp format of the source
// system, e.g. "3/14/24 9:05 AM".
const createdLayout = "1/2/06 3:04 PM"

func normalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParseUsers converts raw Users extract rows (header first) into User
// records. Missing required columns abort before any row is parsed;
// per-row problems (bad coordinates, bad timestamps) degrade the single
// field and keep the record.
func ParseUsers(rows [][]string) ([]model.User, error) {
	if len(rows) == 0 {
		return nil, eris.New("ingest: users extract is empty")
	}
	h := newHeader(rows[0])

	idx, err := h.require("_id", "Home Location Coords", "Work Location Coords",
		"State/Fed", "Created", "Active Account", "Tmas")
	if err != nil {
		return nil, err
	}
	idID, idHome, idWork, idFunding, idCreated, idActive, idTMA :=
		idx[0], idx[1], idx[2], idx[3], idx[4], idx[5], idx[6]

	idFirst := h.optional("First Name")
	idLast := h.optional("Last Name")
	idEmail := h.optional("Email")
	idWorkLoc := h.optional("Work Location")
	idLegacy := h.optional("Legacyid")

	var badCreated int
	users := make([]model.User, 0, len(rows)-1)
	for _, row := range rows[1:] {
		id := strings.TrimSpace(cellAt(row, idID))
		if id == "" {
			continue
		}

		u := model.User{
			ID:           id,
			FirstName:    strings.TrimSpace(cellAt(row, idFirst)),
			LastName:     strings.TrimSpace(cellAt(row, idLast)),
			Email:        strings.TrimSpace(cellAt(row, idEmail)),
			WorkLocation: strings.TrimSpace(cellAt(row, idWorkLoc)),
			FundingFlag:  strings.TrimSpace(cellAt(row, idFunding)),
			TMA:          strings.TrimSpace(cellAt(row, idTMA)),
			Created:      strings.TrimSpace(cellAt(row, idCreated)),
			Active:       parseBool(cellAt(row, idActive)),
			LegacyID:     strings.TrimSpace(cellAt(row, idLegacy)),
		}
		u.HomeLon, u.HomeLat = parseCoords(cellAt(row, idHome))
		u.WorkLon, u.WorkLat = parseCoords(cellAt(row, idWork))

		if u.Created != "" {
			if ts, parseErr := time.Parse(createdLayout, u.Created); parseErr == nil {
				u.CreatedAt = &ts
			} else {
				badCreated++
			}
		}

		users = append(users, u)
	}

	if badCreated > 0 {
		zap.L().Warn("ingest: unparseable registration timestamps, records kept but never counted as new",
			zap.Int("records", badCreated),
		)
	}
	return users, nil
}

// parseCoords splits a "lon,lat" pair. Anything malformed yields nil
// coordinates, which classify as Unknown downstream.
func parseCoords(raw string) (lon, lat *float64) {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	if len(parts) != 2 {
		return nil, nil
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errX != nil || errY != nil {
		return nil, nil
	}
	return &x, &y
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}
