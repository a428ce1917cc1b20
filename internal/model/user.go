package model

import "time"

// User is one enrolled participant from the Users extract. Coordinate
// pointers are nil when the source row has no usable geocode; CreatedAt is
// nil when the registration timestamp could not be parsed.
type User struct {
	ID           string     `json:"user_id"`
	FirstName    string     `json:"first_name,omitempty"`
	LastName     string     `json:"last_name,omitempty"`
	Email        string     `json:"email,omitempty"`
	WorkLocation string     `json:"work_location,omitempty"`
	HomeLon      *float64   `json:"home_lon,omitempty"`
	HomeLat      *float64   `json:"home_lat,omitempty"`
	WorkLon      *float64   `json:"work_lon,omitempty"`
	WorkLat      *float64   `json:"work_lat,omitempty"`
	FundingFlag  string     `json:"funding_flag,omitempty"` // non-empty marks the State/Fed funding override
	TMA          string     `json:"tma,omitempty"`          // self-reported service area, audited against the geocoded one
	Created      string     `json:"created,omitempty"`      // raw registration timestamp, kept for the TDM extract
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	Active       bool       `json:"active"`
	LegacyID     string     `json:"legacy_id,omitempty"`

	// Derived by the pipeline.
	WorkESO         string `json:"work_eso,omitempty"`
	WorkZIP         string `json:"work_zip,omitempty"`
	WorkCountyName  string `json:"work_county_name,omitempty"`
	WorkCountyFIPS  string `json:"work_county_fips,omitempty"`
	HomeESO         string `json:"home_eso,omitempty"`
	HomeZIP         string `json:"home_zip,omitempty"`
	HomeCountyName  string `json:"home_county_name,omitempty"`
	HomeCountyFIPS  string `json:"home_county_fips,omitempty"`
	FundingAdjusted string `json:"funding_adjusted,omitempty"`
	Territory       string `json:"territory,omitempty"`
	IsNew           bool   `json:"is_new"`
}
