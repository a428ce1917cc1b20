package zone

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// LoadShapefile reads a polygon shapefile into a Layer. labelField names
// the attribute used as the zone label; idField is optional and carries a
// secondary identifier (county FIPS). Records without a label or with
// unusable geometry are skipped and counted; an empty result is a
// configuration error surfaced here, before any classification runs.
func LoadShapefile(name, path, labelField, idField string) (*Layer, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "zone: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	labelIdx := fieldIndex(reader, labelField)
	if labelIdx < 0 {
		return nil, eris.Errorf("zone: layer %q: field %q not found in %s", name, labelField, path)
	}
	idIdx := -1
	if idField != "" {
		idIdx = fieldIndex(reader, idField)
		if idIdx < 0 {
			return nil, eris.Errorf("zone: layer %q: field %q not found in %s", name, idField, path)
		}
	}

	var zones []Zone
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()

		label := strings.TrimSpace(reader.Attribute(labelIdx))
		if label == "" {
			skipped++
			continue
		}
		id := ""
		if idIdx >= 0 {
			id = strings.TrimSpace(reader.Attribute(idIdx))
		}

		poly, ok := shape.(*shp.Polygon)
		if !ok {
			skipped++
			continue
		}
		mp := polygonToMultiPolygon(poly)
		if mp == nil {
			skipped++
			continue
		}
		zones = append(zones, NewZone(label, id, mp))
	}

	if skipped > 0 {
		zap.L().Warn("zone: skipped shapefile records",
			zap.String("layer", name),
			zap.Int("skipped", skipped),
		)
	}

	layer, err := NewLayer(name, zones)
	if err != nil {
		return nil, err
	}
	zap.L().Info("zone: layer loaded",
		zap.String("layer", name),
		zap.String("path", path),
		zap.Int("zones", layer.Len()),
	)
	return layer, nil
}

// polygonToMultiPolygon converts a shapefile Polygon to a go-geom
// MultiPolygon, one single-ring polygon per shapefile part. Ring
// orientation is irrelevant to the even-odd containment test.
func polygonToMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY)

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}
		if len(flat) < 8 { // a closed ring needs at least four points
			continue
		}

		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
			zap.L().Debug("zone: skipping malformed ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("zone: skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

// fieldIndex returns the index of a named attribute field, or -1.
func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}
