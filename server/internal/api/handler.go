package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/galcheat/galcheat/pkg/photometry"
	"github.com/galcheat/galcheat/pkg/survey"
	"github.com/galcheat/galcheat/pkg/units"
)

// Handler is the HTTP handler for all /api/v1/* endpoints.
// It reads surveys from the registry and returns JSON responses.
type Handler struct {
	reg *survey.Registry
	mux *http.ServeMux
}

// New creates a Handler wired to the given survey registry and registers all routes.
func New(reg *survey.Registry) http.Handler {
	h := &Handler{reg: reg, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/surveys", h.listSurveys)
	h.mux.HandleFunc("/api/v1/surveys/", h.getSurvey) // subtree, extracts {name}
	h.mux.HandleFunc("/api/v1/counts", h.counts)
	h.mux.HandleFunc("/api/v1/sky", h.sky)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health.
func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	jsonResp(w, http.StatusOK, HealthResponse{Status: "ok", Surveys: h.reg.Count()})
}

// listSurveys returns GET /api/v1/surveys, ordered by name.
func (h *Handler) listSurveys(w http.ResponseWriter, _ *http.Request) {
	jsonResp(w, http.StatusOK, Summaries(h.reg))
}

// getSurvey returns GET /api/v1/surveys/{name}.
func (h *Handler) getSurvey(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/v1/surveys/")
	if name == "" {
		h.listSurveys(w, r)
		return
	}

	s, err := h.reg.Get(name)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, toSurveyResponse(s))
}

// counts returns GET /api/v1/counts?survey=&filter=&mag=.
func (h *Handler) counts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	surveyName, filterName, err := pairParams(q.Get("survey"), q.Get("filter"))
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	raw := q.Get("mag")
	if raw == "" {
		jsonErr(w, http.StatusBadRequest, "missing query parameter: mag")
		return
	}
	mag, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(mag) || math.IsInf(mag, 0) {
		jsonErr(w, http.StatusBadRequest, fmt.Sprintf("mag %q is not a finite number", raw))
		return
	}

	c, err := photometry.Mag2Counts(mag, h.reg.Ref(surveyName), survey.FilterName(filterName))
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := c.Int64()
	if err != nil {
		writeError(w, fmt.Errorf("counts %s: %w", c, err))
		return
	}
	jsonResp(w, http.StatusOK, CountsResponse{
		Survey:    surveyName,
		Filter:    filterName,
		Magnitude: mag,
		Counts:    n,
	})
}

// sky returns GET /api/v1/sky?survey=&filter=.
func (h *Handler) sky(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	surveyName, filterName, err := pairParams(q.Get("survey"), q.Get("filter"))
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.reg.Get(surveyName)
	if err != nil {
		writeError(w, err)
		return
	}
	level, err := photometry.MeanSkyLevel(s, survey.FilterName(filterName))
	if err != nil {
		writeError(w, err)
		return
	}
	px := arcsec(s.PixelScale)
	jsonResp(w, http.StatusOK, SkyResponse{
		Survey:           surveyName,
		Filter:           filterName,
		MeanSkyLevel:     level.Value,
		PixelAreaArcsec2: px * px,
	})
}

// --- helpers ----------------------------------------------------------------

// Summaries lists the surveys of reg as returned by GET /api/v1/surveys.
func Summaries(reg *survey.Registry) []SurveySummary {
	surveys := reg.List()
	out := make([]SurveySummary, 0, len(surveys))
	for _, s := range surveys {
		out = append(out, SurveySummary{
			Name:             s.Name,
			Description:      s.Description,
			PixelScaleArcsec: arcsec(s.PixelScale),
			Filters:          s.AvailableFilters(),
		})
	}
	return out
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

// writeError maps lookup errors to 404 and unit or range errors to 422.
func writeError(w http.ResponseWriter, err error) {
	var ue *units.UnitError
	switch {
	case errors.Is(err, survey.ErrSurveyNotFound), errors.Is(err, survey.ErrFilterNotFound):
		jsonErr(w, http.StatusNotFound, err.Error())
	case errors.As(err, &ue):
		jsonErr(w, http.StatusUnprocessableEntity, err.Error())
	default:
		jsonErr(w, http.StatusInternalServerError, err.Error())
	}
}

func pairParams(surveyName, filterName string) (string, string, error) {
	switch {
	case surveyName == "":
		return "", "", errors.New("missing query parameter: survey")
	case filterName == "":
		return "", "", errors.New("missing query parameter: filter")
	}
	return surveyName, filterName, nil
}

// arcsec returns q in arcseconds, or 0 when q is not an angle.
func arcsec(q units.Quantity) float64 {
	v, err := q.ValueIn(units.Arcsec)
	if err != nil {
		return 0
	}
	return v
}

// toSurveyResponse maps a survey to its JSON representation.
func toSurveyResponse(s *survey.Survey) SurveyResponse {
	filters := make([]FilterResponse, 0, len(s.Filters))
	for _, f := range s.Filters {
		fr := FilterResponse{
			Name:                f.Name,
			ZeropointMag:        f.Zeropoint.Value,
			SkyBrightness:       f.SkyBrightness.Value,
			PSFFWHMArcsec:       arcsec(f.PSFFWHM),
			EffectiveWavelength: f.EffectiveWavelength,
		}
		if t, err := f.ExposureTime.ValueIn(units.Second); err == nil {
			fr.ExposureTimeSeconds = t
		}
		if level, err := photometry.MeanSkyLevel(s, f); err == nil {
			v := level.Value
			fr.MeanSkyLevel = &v
		}
		filters = append(filters, fr)
	}
	return SurveyResponse{
		Name:             s.Name,
		Description:      s.Description,
		PixelScaleArcsec: arcsec(s.PixelScale),
		MirrorDiameter:   s.MirrorDiameter,
		EffectiveArea:    s.EffectiveArea,
		Obscuration:      s.Obscuration,
		ZeropointAirmass: s.ZeropointAirmass,
		Gain:             s.Gain,
		Filters:          filters,
	}
}
