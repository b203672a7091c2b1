package photometry

import (
	"github.com/galcheat/galcheat/pkg/survey"
	"github.com/galcheat/galcheat/pkg/units"
)

// Magnitude is a bare magnitude value or a magnitude quantity.
type Magnitude interface {
	float64 | units.Quantity
}

// Mag2Counts converts a source magnitude into the total counts collected in
// filter f of survey s over the full exposure time.
//
// A bare float64 is read as mag(ct / s). For a Quantity only the value is
// kept and re-tagged mag(ct / s); its unit is discarded, not converted.
//
// The result is in units.Count, truncated toward zero.
func Mag2Counts[M Magnitude](mag M, s survey.SurveyRef, f survey.FilterRef) (units.Quantity, error) {
	m := countRateMagnitude(mag)

	_, flt, err := resolve(s, f)
	if err != nil {
		return units.Quantity{}, err
	}
	return counts(m, flt)
}

// MeanSkyLevel returns the mean sky background counts collected in one
// pixel over the full exposure of filter f in survey s.
//
// The sky brightness is converted with Mag2Counts (so it is truncated) and
// then weighted by the pixel area in arcsec2. The product is not truncated.
func MeanSkyLevel(s survey.SurveyRef, f survey.FilterRef) (units.Quantity, error) {
	sv, flt, err := resolve(s, f)
	if err != nil {
		return units.Quantity{}, err
	}

	sky, err := Mag2Counts(flt.SkyBrightness, sv, flt)
	if err != nil {
		return units.Quantity{}, err
	}

	px, err := sv.PixelScale.ValueIn(units.Arcsec)
	if err != nil {
		return units.Quantity{}, err
	}
	return sky.Scale(px * px), nil
}

// countRateMagnitude tags the value of mag with mag(ct / s).
func countRateMagnitude[M Magnitude](mag M) units.Quantity {
	switch v := any(mag).(type) {
	case units.Quantity:
		return units.New(v.Value, units.MagCountPerSecond)
	case float64:
		return units.New(v, units.MagCountPerSecond)
	}
	panic("unreachable")
}

// counts applies zeropoint and exposure time: ((m - zp) -> ct / s) * t.
func counts(m units.Quantity, f *survey.Filter) (units.Quantity, error) {
	diff, err := m.Sub(f.Zeropoint)
	if err != nil {
		return units.Quantity{}, err
	}
	flux, err := diff.To(units.CountPerSecond)
	if err != nil {
		return units.Quantity{}, err
	}
	total, err := flux.Mul(f.ExposureTime)
	if err != nil {
		return units.Quantity{}, err
	}
	c, err := total.To(units.Count)
	if err != nil {
		return units.Quantity{}, err
	}
	return c.Trunc(), nil
}

// resolve normalises the survey and filter references to objects.
func resolve(s survey.SurveyRef, f survey.FilterRef) (*survey.Survey, *survey.Filter, error) {
	if s == nil {
		return nil, nil, &survey.LookupError{Kind: survey.KindSurvey}
	}
	if f == nil {
		return nil, nil, &survey.LookupError{Kind: survey.KindFilter}
	}
	sv, err := s.ResolveSurvey()
	if err != nil {
		return nil, nil, err
	}
	flt, err := f.ResolveFilter(sv)
	if err != nil {
		return nil, nil, err
	}
	return sv, flt, nil
}
