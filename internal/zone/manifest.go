package zone

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Manifest describes where each reference layer lives on disk and which
// shapefile attributes carry the zone labels.
type Manifest struct {
	ServiceArea LayerSpec `yaml:"service_area"`
	ZCTA        LayerSpec `yaml:"zcta"`
	County      LayerSpec `yaml:"county"`
}

// LayerSpec locates one layer's shapefile.
type LayerSpec struct {
	Path       string `yaml:"path"`
	LabelField string `yaml:"label_field"`
	IDField    string `yaml:"id_field,omitempty"`
}

// LoadManifest reads a zones.yaml manifest. Relative shapefile paths are
// resolved against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "zone: read manifest %s", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, eris.Wrap(err, "zone: parse manifest")
	}

	base := filepath.Dir(path)
	for name, spec := range map[string]*LayerSpec{
		"service_area": &m.ServiceArea,
		"zcta":         &m.ZCTA,
		"county":       &m.County,
	} {
		if spec.Path == "" {
			return nil, eris.Errorf("zone: manifest missing %s.path", name)
		}
		if spec.LabelField == "" {
			return nil, eris.Errorf("zone: manifest missing %s.label_field", name)
		}
		if !filepath.IsAbs(spec.Path) {
			spec.Path = filepath.Join(base, spec.Path)
		}
	}

	return &m, nil
}

// LoadLayers loads all three layers named by a manifest.
func LoadLayers(m *Manifest) (*Layers, error) {
	sa, err := LoadShapefile("service_area", m.ServiceArea.Path, m.ServiceArea.LabelField, m.ServiceArea.IDField)
	if err != nil {
		return nil, err
	}
	zcta, err := LoadShapefile("zcta", m.ZCTA.Path, m.ZCTA.LabelField, m.ZCTA.IDField)
	if err != nil {
		return nil, err
	}
	county, err := LoadShapefile("county", m.County.Path, m.County.LabelField, m.County.IDField)
	if err != nil {
		return nil, err
	}

	layers := &Layers{ServiceArea: sa, ZCTA: zcta, County: county}
	if err := layers.Validate(); err != nil {
		return nil, err
	}
	return layers, nil
}
