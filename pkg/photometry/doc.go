// Package photometry converts source magnitudes into detector counts for a
// survey filter.
//
// convert.go provides the two pure conversions:
//
//	Mag2Counts(mag, survey, filter)  total counts over the full exposure,
//	                                  truncated toward zero
//	MeanSkyLevel(survey, filter)     mean sky background counts per pixel,
//	                                  not truncated
//
// The flux is (mag - zeropoint) converted from mag(ct / s) to ct / s, then
// multiplied by the filter exposure time. Expect a rough estimate: atmospheric
// extinction and every other real-world effect are ignored, which is why
// Mag2Counts returns whole counts.
//
// Survey and filter arguments are survey.SurveyRef / survey.FilterRef values,
// so a *survey.Survey, a survey.SurveyName or a Registry.Ref all work, and
// are resolved once before any arithmetic. Lookup and unit errors are
// returned unchanged.
package photometry
