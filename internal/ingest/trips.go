package ingest

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/arc-moshe/GCO-RideAmigos/internal/model"
)

// ParseTrips converts raw Trips extract rows (header first) into Trip
// records. Mode values are kept verbatim; the pipeline canonicalizes them
// during enrichment so unrecognized modes stay visible.
func ParseTrips(rows [][]string) ([]model.Trip, error) {
	if len(rows) == 0 {
		return nil, eris.New("ingest: trips extract is empty")
	}
	h := newHeader(rows[0])

	idx, err := h.require("User ID", "Mode", "Trips", "Miles",
		"Vehicle Miles Reduced", "CO2 Savings (grams)", "Dollars Savings")
	if err != nil {
		return nil, err
	}
	idUser, idMode, idTrips, idMiles, idVMR, idCO2, idDollars :=
		idx[0], idx[1], idx[2], idx[3], idx[4], idx[5], idx[6]

	trips := make([]model.Trip, 0, len(rows)-1)
	for _, row := range rows[1:] {
		userID := strings.TrimSpace(cellAt(row, idUser))
		if userID == "" {
			continue
		}
		trips = append(trips, model.Trip{
			UserID:  userID,
			Method:  model.Method(strings.TrimSpace(cellAt(row, idMode))),
			Trips:   parseNumber(cellAt(row, idTrips)),
			Miles:   parseNumber(cellAt(row, idMiles)),
			VMR:     parseNumber(cellAt(row, idVMR)),
			CO2:     parseNumber(cellAt(row, idCO2)),
			Dollars: parseNumber(cellAt(row, idDollars)),
		})
	}
	return trips, nil
}

// parseNumber reads a numeric cell, tolerating thousands separators and a
// currency sign. Unparseable values count as zero rather than failing
// the run.
func parseNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.TrimPrefix(raw, "$")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
