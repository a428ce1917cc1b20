package ingest

import (
	"strings"

	"go.uber.org/zap"
)

// Internal and test accounts that must never reach the reports.
var (
	junkNetworks = map[string]bool{
		"RideAmigos Employees":    true,
		"RideAmigos Test Network": true,
	}

	junkEmailDomains = []string{"@rideamigos.com", "@example.com", "@test.com"}

	junkEmails = map[string]bool{
		"appreview2055@icloud.com":             true,
		"webteam@odonnellco.com":               true,
		"maureen.contestabile@odonnellco.com":  true,
		"kathryn.hagerman@gmail.com":           true,
		"bendalton+aminew@gmail.com":           true,
		"chancemagno@gmail.com":                true,
		"acuadrado@atlantaregional.com":        true,
		"acuadrado@gacommuteoptions.com":       true,
		"support@mygacommuteoptions.com":       true,
		"support@gacommuteoptions.com":         true,
	}

	junkEmployers = map[string]bool{
		"RideAmigos":    true,
		"Test Employer": true,
	}

	junkUserNames = map[string]bool{
		"Network Log": true,
	}
)

// FilterUsers drops internal/test accounts from raw Users extract rows
// (header first). Rows are matched on network, e-mail and employer name.
func FilterUsers(rows [][]string) [][]string {
	if len(rows) == 0 {
		return rows
	}
	h := newHeader(rows[0])
	idNetworks := h.optional("Networks")
	idEmail := h.optional("Email")
	idEmployer := h.optional("Employer Name")

	out := [][]string{rows[0]}
	var dropped int
	for _, row := range rows[1:] {
		if junkNetworks[strings.TrimSpace(cellAt(row, idNetworks))] ||
			junkEmail(cellAt(row, idEmail)) ||
			junkEmployers[strings.TrimSpace(cellAt(row, idEmployer))] {
			dropped++
			continue
		}
		out = append(out, row)
	}
	if dropped > 0 {
		zap.L().Info("ingest: dropped internal/test user records", zap.Int("records", dropped))
	}
	return out
}

// FilterTrips drops internal/test accounts from raw Trips extract rows
// (header first). Rows are matched on network, user e-mail and the
// synthetic "Network Log" user.
func FilterTrips(rows [][]string) [][]string {
	if len(rows) == 0 {
		return rows
	}
	h := newHeader(rows[0])
	idNetworks := h.optional("Networks")
	idEmail := h.optional("User Email")
	idName := h.optional("User Name")

	out := [][]string{rows[0]}
	var dropped int
	for _, row := range rows[1:] {
		if junkNetworks[strings.TrimSpace(cellAt(row, idNetworks))] ||
			junkEmail(cellAt(row, idEmail)) ||
			junkUserNames[strings.TrimSpace(cellAt(row, idName))] {
			dropped++
			continue
		}
		out = append(out, row)
	}
	if dropped > 0 {
		zap.L().Info("ingest: dropped internal/test trip records", zap.Int("records", dropped))
	}
	return out
}

func junkEmail(raw string) bool {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return false
	}
	if junkEmails[email] {
		return true
	}
	for _, domain := range junkEmailDomains {
		if strings.Contains(email, domain) {
			return true
		}
	}
	return false
}
