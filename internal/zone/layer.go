// Package zone provides polygon zone layers and point-in-polygon
// classification for the report pipeline.
package zone

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// Fallback labels returned when a coordinate cannot be assigned a zone.
const (
	LabelUnknown     = "Unknown"       // coordinate missing
	LabelOutOfRegion = "Out of Region" // coordinate present, no containing polygon
)

// Zone is one labeled polygon in a layer. County zones also carry the FIPS
// code in ID; other layers leave it empty.
type Zone struct {
	Label string
	ID    string

	geometry *geom.MultiPolygon
	bounds   *geom.Bounds
}

// NewZone builds a zone around a multipolygon, caching its bounds for the
// containment pre-check.
func NewZone(label, id string, geometry *geom.MultiPolygon) Zone {
	z := Zone{Label: label, ID: id, geometry: geometry}
	if geometry != nil {
		z.bounds = geometry.Bounds()
	}
	return z
}

// Contains reports whether the point lies inside the zone. Containment is
// even-odd over every ring of the multipolygon, so interior holes are
// excluded without relying on ring orientation.
func (z *Zone) Contains(lon, lat float64) bool {
	if z.geometry == nil {
		return false
	}
	p := geom.Coord{lon, lat}
	if z.bounds != nil && !z.bounds.OverlapsPoint(geom.XY, p) {
		return false
	}
	inside := false
	for i := 0; i < z.geometry.NumPolygons(); i++ {
		poly := z.geometry.Polygon(i)
		for j := 0; j < poly.NumLinearRings(); j++ {
			ring := poly.LinearRing(j)
			if xy.IsPointInRing(ring.Layout(), p, ring.FlatCoords()) {
				inside = !inside
			}
		}
	}
	return inside
}

// Layer is an immutable named collection of zones. Zone order is the
// dataset order of the source file and is the classification tie-break.
type Layer struct {
	Name  string
	zones []Zone
}

// NewLayer validates the zone set once; classification never re-checks
// geometry. A layer with no usable polygons is a configuration error.
func NewLayer(name string, zones []Zone) (*Layer, error) {
	if len(zones) == 0 {
		return nil, eris.Errorf("zone: layer %q has no polygons", name)
	}
	for i, z := range zones {
		if z.geometry == nil || z.geometry.NumPolygons() == 0 {
			return nil, eris.Errorf("zone: layer %q polygon %d (%q) has no geometry", name, i, z.Label)
		}
	}
	return &Layer{Name: name, zones: zones}, nil
}

// Zones returns the layer's zones in dataset order.
func (l *Layer) Zones() []Zone { return l.zones }

// Len returns the number of zones in the layer.
func (l *Layer) Len() int { return len(l.zones) }

// Find returns the first zone in dataset order containing the point.
// First-match-wins keeps classification reproducible when boundary
// polygons overlap.
func (l *Layer) Find(lon, lat float64) (Zone, bool) {
	for i := range l.zones {
		if l.zones[i].Contains(lon, lat) {
			return l.zones[i], true
		}
	}
	return Zone{}, false
}

// Classify returns exactly one label for a possibly-missing coordinate:
// the containing zone's label, LabelUnknown when either ordinate is nil,
// or LabelOutOfRegion when no polygon contains the point.
func (l *Layer) Classify(lon, lat *float64) string {
	if lon == nil || lat == nil {
		return LabelUnknown
	}
	if z, ok := l.Find(*lon, *lat); ok {
		return z.Label
	}
	return LabelOutOfRegion
}

// Layers bundles the three reference layers the resolver needs.
type Layers struct {
	ServiceArea *Layer
	ZCTA        *Layer
	County      *Layer
}

// Validate fails fast when any required layer is absent.
func (ls *Layers) Validate() error {
	if ls == nil {
		return eris.New("zone: layers not loaded")
	}
	if ls.ServiceArea == nil {
		return eris.New("zone: service area layer not loaded")
	}
	if ls.ZCTA == nil {
		return eris.New("zone: ZCTA layer not loaded")
	}
	if ls.County == nil {
		return eris.New("zone: county layer not loaded")
	}
	return nil
}
