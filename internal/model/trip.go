package model

// Trip is one logged trip-method event from the Trips extract. The zone and
// territory fields are copied in from the owning User during enrichment;
// they are never re-derived from coordinates.
type Trip struct {
	UserID  string  `json:"user_id"`
	Method  Method  `json:"method"`
	Trips   float64 `json:"trips"`
	Miles   float64 `json:"miles"`
	VMR     float64 `json:"vmr"`
	CO2     float64 `json:"co2_grams"`
	Dollars float64 `json:"dollars"`
	Logs    float64 `json:"logs"` // constant 1, summed to count logged events

	// Copied from the owning User.
	ESO             string `json:"eso,omitempty"`
	HomeZIP         string `json:"home_zip,omitempty"`
	FundingAdjusted string `json:"funding_adjusted,omitempty"`
	Territory       string `json:"territory,omitempty"`
}
