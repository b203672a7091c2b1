package survey

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/galcheat/galcheat/pkg/units"
)

// surveyYAML is the on-disk survey table. Fields map 1:1 to data/lsst.yaml.
type surveyYAML struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// PixelScale is in arcsec.
	PixelScale float64 `yaml:"pixel_scale"`

	MirrorDiameter   float64 `yaml:"mirror_diameter"`
	EffectiveArea    float64 `yaml:"effective_area"`
	Obscuration      float64 `yaml:"obscuration"`
	ZeropointAirmass float64 `yaml:"zeropoint_airmass"`
	Gain             float64 `yaml:"gain"`

	Filters []filterYAML `yaml:"filters"`
}

type filterYAML struct {
	Name string `yaml:"name"`

	// PSFFWHM is in arcsec.
	PSFFWHM float64 `yaml:"psf_fwhm"`

	// Zeropoint is the magnitude giving 1 ct/s.
	Zeropoint float64 `yaml:"zeropoint"`

	// SkyBrightness is in mag / arcsec2.
	SkyBrightness float64 `yaml:"sky_brightness"`

	// ExposureTime is the full survey integration time in seconds.
	ExposureTime float64 `yaml:"exposure_time"`

	// EffectiveWavelength is in nm.
	EffectiveWavelength float64 `yaml:"effective_wavelength"`
}

// Parse decodes one YAML survey table.
func Parse(data []byte) (*Survey, error) {
	var raw surveyYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("survey: parse yaml: %w", err)
	}
	if err := validate(&raw); err != nil {
		return nil, fmt.Errorf("survey: %w", err)
	}
	return raw.build(), nil
}

// Load reads and parses the YAML survey table at path.
func Load(path string) (*Survey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("survey: read file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadDir loads every *.yaml / *.yml file in dir, ordered by file name.
// Subdirectories are not searched.
func LoadDir(dir string) ([]*Survey, error) {
	return loadFS(os.DirFS(dir), ".")
}

// loadFS parses every YAML file directly under root in fsys.
func loadFS(fsys fs.FS, root string) ([]*Survey, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("survey: read dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsTableFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	out := make([]*Survey, 0, len(names))
	seen := make(map[string]string, len(names))
	for _, name := range names {
		p := path.Join(root, name)
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("survey: read file: %w", err)
		}
		s, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if prev, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("survey: %q defined in both %s and %s", s.Name, prev, name)
		}
		seen[s.Name] = name
		out = append(out, s)
	}
	return out, nil
}

// IsTableFile reports whether name looks like a YAML survey table.
func IsTableFile(name string) bool {
	switch path.Ext(name) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// validate checks required fields and structural constraints. Physical
// plausibility of the numbers is not checked.
func validate(raw *surveyYAML) error {
	if raw.Name == "" {
		return fmt.Errorf("name is required")
	}
	if raw.PixelScale <= 0 {
		return fmt.Errorf("%s: pixel_scale must be positive", raw.Name)
	}
	if len(raw.Filters) == 0 {
		return fmt.Errorf("%s: at least one filter is required", raw.Name)
	}
	seen := make(map[string]bool, len(raw.Filters))
	for i, f := range raw.Filters {
		if f.Name == "" {
			return fmt.Errorf("%s: filters[%d]: name is required", raw.Name, i)
		}
		if seen[f.Name] {
			return fmt.Errorf("%s: filters[%d]: duplicate filter %q", raw.Name, i, f.Name)
		}
		seen[f.Name] = true
		if f.ExposureTime <= 0 {
			return fmt.Errorf("%s: filter %q: exposure_time must be positive", raw.Name, f.Name)
		}
	}
	return nil
}

// build tags the raw table values with their units.
func (raw *surveyYAML) build() *Survey {
	s := &Survey{
		Name:             raw.Name,
		Description:      raw.Description,
		PixelScale:       units.New(raw.PixelScale, units.Arcsec),
		MirrorDiameter:   raw.MirrorDiameter,
		EffectiveArea:    raw.EffectiveArea,
		Obscuration:      raw.Obscuration,
		ZeropointAirmass: raw.ZeropointAirmass,
		Gain:             raw.Gain,
		Filters:          make([]*Filter, 0, len(raw.Filters)),
	}
	for _, f := range raw.Filters {
		s.Filters = append(s.Filters, &Filter{
			Name:                f.Name,
			Zeropoint:           units.New(f.Zeropoint, units.Mag),
			ExposureTime:        units.New(f.ExposureTime, units.Second),
			SkyBrightness:       units.New(f.SkyBrightness, units.MagPerSquareArcsec),
			PSFFWHM:             units.New(f.PSFFWHM, units.Arcsec),
			EffectiveWavelength: f.EffectiveWavelength,
		})
	}
	return s
}
