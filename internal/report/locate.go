package report

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arc-moshe/GCO-RideAmigos/internal/model"
	"github.com/arc-moshe/GCO-RideAmigos/internal/zone"
)

// ResolveLocations classifies every user's home and work coordinates
// against the three reference layers and fills the derived zone fields
// in place. Users are independent, so classification fans out across a
// bounded errgroup and needs no further synchronization.
func ResolveLocations(ctx context.Context, users []model.User, layers *zone.Layers) error {
	if err := layers.Validate(); err != nil {
		return err
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range users {
		g.Go(func() error {
			resolveUser(&users[i], layers)
			return nil
		})
	}
	return g.Wait()
}

// resolveUser classifies one user's two coordinates. The service-area
// result is authoritative: a coordinate that is Unknown or Out of Region
// there carries the same code into its ZIP and county fields, so a record
// can never report an out-of-region service area with a valid ZIP.
func resolveUser(u *model.User, layers *zone.Layers) {
	u.WorkESO = layers.ServiceArea.Classify(u.WorkLon, u.WorkLat)
	u.WorkZIP = layers.ZCTA.Classify(u.WorkLon, u.WorkLat)
	u.WorkCountyName, u.WorkCountyFIPS = classifyCounty(layers.County, u.WorkLon, u.WorkLat)
	u.WorkZIP, u.WorkCountyName, u.WorkCountyFIPS = applyAuthority(u.WorkESO, u.WorkZIP, u.WorkCountyName, u.WorkCountyFIPS)

	u.HomeESO = layers.ServiceArea.Classify(u.HomeLon, u.HomeLat)
	u.HomeZIP = layers.ZCTA.Classify(u.HomeLon, u.HomeLat)
	u.HomeCountyName, u.HomeCountyFIPS = classifyCounty(layers.County, u.HomeLon, u.HomeLat)
	u.HomeZIP, u.HomeCountyName, u.HomeCountyFIPS = applyAuthority(u.HomeESO, u.HomeZIP, u.HomeCountyName, u.HomeCountyFIPS)
}

// classifyCounty returns the county name and FIPS for a coordinate; both
// carry the same fallback code when the point cannot be placed.
func classifyCounty(layer *zone.Layer, lon, lat *float64) (name, fips string) {
	if lon == nil || lat == nil {
		return zone.LabelUnknown, zone.LabelUnknown
	}
	if z, ok := layer.Find(*lon, *lat); ok {
		return z.Label, z.ID
	}
	return zone.LabelOutOfRegion, zone.LabelOutOfRegion
}

// applyAuthority force-sets the ZIP and county codes to the service-area
// fallback when the service-area classification is Unknown or Out of
// Region.
func applyAuthority(eso, zip, countyName, countyFIPS string) (string, string, string) {
	if eso == zone.LabelUnknown || eso == zone.LabelOutOfRegion {
		return eso, eso, eso
	}
	return zip, countyName, countyFIPS
}
