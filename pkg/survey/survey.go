package survey

import "github.com/galcheat/galcheat/pkg/units"

// Survey is one telescope/instrument configuration.
type Survey struct {
	Name        string
	Description string

	// PixelScale is the angle subtended by one detector pixel.
	PixelScale units.Quantity

	// Telescope metadata carried from the survey tables. Not used by the
	// count conversions.
	MirrorDiameter   float64 // m
	EffectiveArea    float64 // m^2
	Obscuration      float64 // fraction of the aperture
	ZeropointAirmass float64
	Gain             float64 // e- / ADU

	// Filters in declaration order.
	Filters []*Filter
}

// Filter is one passband of a survey.
type Filter struct {
	Name string

	// Zeropoint is the magnitude (plain mag) that yields one count per second.
	Zeropoint units.Quantity

	// ExposureTime is the full integration time over the survey lifetime.
	ExposureTime units.Quantity

	// SkyBrightness is the sky background in mag / arcsec2.
	SkyBrightness units.Quantity

	PSFFWHM             units.Quantity
	EffectiveWavelength float64 // nm
}

// GetFilter returns the filter called name.
func (s *Survey) GetFilter(name string) (*Filter, error) {
	for _, f := range s.Filters {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, &LookupError{
		Kind:      KindFilter,
		Name:      name,
		Survey:    s.Name,
		Available: s.AvailableFilters(),
	}
}

// AvailableFilters returns the filter names in declaration order.
func (s *Survey) AvailableFilters() []string {
	out := make([]string, 0, len(s.Filters))
	for _, f := range s.Filters {
		out = append(out, f.Name)
	}
	return out
}

// SurveyRef is anything that resolves to a Survey.
type SurveyRef interface {
	ResolveSurvey() (*Survey, error)
}

// FilterRef is anything that resolves to a Filter of a given survey.
type FilterRef interface {
	ResolveFilter(s *Survey) (*Filter, error)
}

// ResolveSurvey returns s itself.
func (s *Survey) ResolveSurvey() (*Survey, error) {
	if s == nil {
		return nil, &LookupError{Kind: KindSurvey}
	}
	return s, nil
}

// ResolveFilter returns f itself; the survey is not consulted.
func (f *Filter) ResolveFilter(*Survey) (*Filter, error) {
	if f == nil {
		return nil, &LookupError{Kind: KindFilter}
	}
	return f, nil
}

// SurveyName is a survey identifier resolved in the default registry.
type SurveyName string

// ResolveSurvey looks the name up with GetSurvey.
func (n SurveyName) ResolveSurvey() (*Survey, error) {
	return GetSurvey(string(n))
}

// FilterName is a filter identifier resolved against the survey it is used with.
type FilterName string

// ResolveFilter looks the name up with s.GetFilter.
func (n FilterName) ResolveFilter(s *Survey) (*Filter, error) {
	return s.GetFilter(string(n))
}
