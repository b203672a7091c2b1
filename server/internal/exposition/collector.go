package exposition

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/galcheat/galcheat/pkg/photometry"
	"github.com/galcheat/galcheat/pkg/survey"
	"github.com/galcheat/galcheat/pkg/units"
)

// Metric family names.
const (
	PixelScale    = "galcheat_survey_pixel_scale_arcsec"
	Zeropoint     = "galcheat_filter_zeropoint_mag"
	ExposureTime  = "galcheat_filter_exposure_time_seconds"
	SkyBrightness = "galcheat_filter_sky_brightness_mag_arcsec2"
	MeanSkyLevel  = "galcheat_mean_sky_level_counts"
	SourceCounts  = "galcheat_source_counts"
)

var help = map[string]string{
	PixelScale:    "Angular size of one detector pixel in arcseconds.",
	Zeropoint:     "Filter zeropoint magnitude.",
	ExposureTime:  "Total exposure time of the filter in seconds.",
	SkyBrightness: "Sky surface brightness in mag per square arcsecond.",
	MeanSkyLevel:  "Mean sky background counts per pixel over the full exposure.",
	SourceCounts:  "Counts collected from a source of the given magnitude over the full exposure.",
}

// order fixes the family order of Gather output.
var order = []string{PixelScale, Zeropoint, ExposureTime, SkyBrightness, MeanSkyLevel, SourceCounts}

// Collector turns the surveys of a registry into metric families.
type Collector struct {
	reg  *survey.Registry
	mags []float64
}

// New returns a Collector over reg that reports source counts for each of
// the reference magnitudes mags.
func New(reg *survey.Registry, mags []float64) *Collector {
	return &Collector{reg: reg, mags: append([]float64(nil), mags...)}
}

// Gather computes the current metric families. Families without samples are
// omitted.
func (c *Collector) Gather() []*dto.MetricFamily {
	metrics := make(map[string][]*dto.Metric, len(order))

	for _, s := range c.reg.List() {
		if px, err := s.PixelScale.ValueIn(units.Arcsec); err == nil {
			metrics[PixelScale] = append(metrics[PixelScale], gauge(px, "survey", s.Name))
		} else {
			slog.Warn("exposition: skipping pixel scale", "survey", s.Name, "err", err)
		}

		for _, f := range s.Filters {
			pair, err := c.filterMetrics(s, f)
			if err != nil {
				slog.Warn("exposition: skipping filter", "survey", s.Name, "filter", f.Name, "err", err)
				continue
			}
			for name, ms := range pair {
				metrics[name] = append(metrics[name], ms...)
			}
		}
	}

	out := make([]*dto.MetricFamily, 0, len(order))
	for _, name := range order {
		if len(metrics[name]) == 0 {
			continue
		}
		out = append(out, &dto.MetricFamily{
			Name:   strPtr(name),
			Help:   strPtr(help[name]),
			Type:   dto.MetricType_GAUGE.Enum(),
			Metric: metrics[name],
		})
	}
	return out
}

// filterMetrics computes every per-filter sample for one pair, or none.
func (c *Collector) filterMetrics(s *survey.Survey, f *survey.Filter) (map[string][]*dto.Metric, error) {
	exposure, err := f.ExposureTime.ValueIn(units.Second)
	if err != nil {
		return nil, err
	}
	sky, err := photometry.MeanSkyLevel(s, f)
	if err != nil {
		return nil, err
	}

	labels := []string{"survey", s.Name, "filter", f.Name}
	out := map[string][]*dto.Metric{
		Zeropoint:     {gauge(f.Zeropoint.Value, labels...)},
		ExposureTime:  {gauge(exposure, labels...)},
		SkyBrightness: {gauge(f.SkyBrightness.Value, labels...)},
		MeanSkyLevel:  {gauge(sky.Value, labels...)},
	}
	for _, m := range c.mags {
		counts, err := photometry.Mag2Counts(m, s, f)
		if err != nil {
			return nil, err
		}
		mag := strconv.FormatFloat(m, 'g', -1, 64)
		out[SourceCounts] = append(out[SourceCounts], gauge(counts.Value, append(labels, "magnitude", mag)...))
	}
	return out, nil
}

// Write encodes the current families to w in the given format.
func (c *Collector) Write(w io.Writer, format expfmt.Format) error {
	enc := expfmt.NewEncoder(w, format)
	for _, mf := range c.Gather() {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	if closer, ok := enc.(expfmt.Closer); ok {
		return closer.Close()
	}
	return nil
}

// ServeHTTP serves the families in the format negotiated from the request.
func (c *Collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	format := expfmt.Negotiate(r.Header)
	w.Header().Set("Content-Type", string(format))
	if err := c.Write(w, format); err != nil {
		slog.Error("exposition: encode failed", "err", err)
	}
}

// gauge builds one gauge sample; kv holds label name/value pairs.
func gauge(v float64, kv ...string) *dto.Metric {
	labels := make([]*dto.LabelPair, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		labels = append(labels, &dto.LabelPair{Name: strPtr(kv[i]), Value: strPtr(kv[i+1])})
	}
	return &dto.Metric{Label: labels, Gauge: &dto.Gauge{Value: &v}}
}

func strPtr(s string) *string { return &s }
