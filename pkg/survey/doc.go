// Package survey holds the survey and filter tables consumed by the
// photometry package.
//
// Top-level types:
//   - Survey: pixel_scale, telescope metadata, ordered Filters; GetFilter(name)
//   - Filter: zeropoint (mag), exposure_time (s), sky_brightness
//     (mag / arcsec2), psf_fwhm, effective_wavelength
//   - Registry: thread-safe name -> *Survey store; Replace swaps the whole
//     set for hot reload
//   - SurveyRef / FilterRef: anything that resolves to a Survey or Filter:
//     a *Survey, a SurveyName looked up in the default registry, or
//     Registry.Ref(name); a *Filter or a FilterName
//
// Parse/Load/LoadDir read the YAML survey table format (see data/lsst.yaml),
// then validate names, a positive pixel scale and exposure times.
//
// Default() is the process-wide registry, populated once with the surveys
// embedded under data/. GetSurvey and AvailableSurveys operate on it.
package survey
