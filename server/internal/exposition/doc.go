// Package exposition renders the survey catalog as Prometheus metric families.
//
// Collector.Gather walks the registry on every call and emits one gauge per
// survey (pixel scale) and per survey/filter pair (zeropoint, exposure time,
// sky brightness, mean sky level, and source counts at each reference
// magnitude). A pair whose conversion fails is skipped and logged.
//
// Collector implements http.Handler and serves the families in the format
// negotiated from the Accept header.
package exposition
