// Package report implements the classification, aggregation and reshape
// pipeline that turns cleaned Users and Trips extracts into the four
// program reports.
package report

import (
	"strings"

	"github.com/arc-moshe/GCO-RideAmigos/internal/zone"
)

// Canonical territory labels.
const (
	TerritoryGCO        = "GCO"
	TerritoryUnknownOut = "Unknown/Out of Region"

	// FundedLabel replaces the service-area label for users funded through
	// the State/Federal program.
	FundedLabel = "GCO State/Fed"
)

// Normalize derives the funding-adjusted service-area label and its
// collapsed reporting territory. It is the single territory rule for
// users, trips and logger rollups; an empty service-area label (a trip
// whose user is missing, or an unclassified record) is treated as Unknown.
func Normalize(serviceArea string, funded bool) (adjusted, territory string) {
	if serviceArea == "" {
		serviceArea = zone.LabelUnknown
	}
	adjusted = serviceArea
	if funded {
		adjusted = FundedLabel
	}
	return adjusted, Collapse(adjusted)
}

// Collapse maps a funding-adjusted label to its territory: every GCO
// sub-area folds into one GCO bucket, Unknown and Out of Region fold into
// one fallback bucket, anything else passes through. Collapse is
// idempotent: applying it to its own output is a no-op.
func Collapse(label string) string {
	switch {
	case strings.Contains(label, TerritoryGCO):
		return TerritoryGCO
	case label == "" || label == zone.LabelUnknown || label == zone.LabelOutOfRegion:
		return TerritoryUnknownOut
	default:
		return label
	}
}
