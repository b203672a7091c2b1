package api

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Surveys int    `json:"surveys"`
}

// SurveySummary is one entry in GET /api/v1/surveys.
type SurveySummary struct {
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	PixelScaleArcsec float64  `json:"pixel_scale_arcsec"`
	Filters          []string `json:"filters"`
}

// SurveyResponse is the payload for GET /api/v1/surveys/{name}.
type SurveyResponse struct {
	Name             string           `json:"name"`
	Description      string           `json:"description,omitempty"`
	PixelScaleArcsec float64          `json:"pixel_scale_arcsec"`
	MirrorDiameter   float64          `json:"mirror_diameter_m,omitempty"`
	EffectiveArea    float64          `json:"effective_area_m2,omitempty"`
	Obscuration      float64          `json:"obscuration,omitempty"`
	ZeropointAirmass float64          `json:"zeropoint_airmass,omitempty"`
	Gain             float64          `json:"gain,omitempty"`
	Filters          []FilterResponse `json:"filters"`
}

// FilterResponse is one filter within a SurveyResponse.
type FilterResponse struct {
	Name                string  `json:"name"`
	ZeropointMag        float64 `json:"zeropoint_mag"`
	ExposureTimeSeconds float64 `json:"exposure_time_s"`
	SkyBrightness       float64 `json:"sky_brightness_mag_arcsec2"`
	PSFFWHMArcsec       float64 `json:"psf_fwhm_arcsec,omitempty"`
	EffectiveWavelength float64 `json:"effective_wavelength_nm,omitempty"`
	// MeanSkyLevel is omitted when the conversion fails for this filter.
	MeanSkyLevel *float64 `json:"mean_sky_level,omitempty"`
}

// CountsResponse is the payload for GET /api/v1/counts.
type CountsResponse struct {
	Survey    string  `json:"survey"`
	Filter    string  `json:"filter"`
	Magnitude float64 `json:"magnitude"`
	Counts    int64   `json:"counts"`
}

// SkyResponse is the payload for GET /api/v1/sky.
type SkyResponse struct {
	Survey           string  `json:"survey"`
	Filter           string  `json:"filter"`
	MeanSkyLevel     float64 `json:"mean_sky_level"`
	PixelAreaArcsec2 float64 `json:"pixel_area_arcsec2"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
