// Package api implements the HTTP REST API for galcheat-server.
//
// New(registry) returns an http.Handler that serves:
//
//	GET /api/v1/health                           {"status":"ok","surveys":N}
//	GET /api/v1/surveys                          survey summaries ordered by name
//	GET /api/v1/surveys/{name}                   survey detail with filters; 404 if unknown
//	GET /api/v1/counts?survey=&filter=&mag=      source counts over the full exposure
//	GET /api/v1/sky?survey=&filter=              mean sky level per pixel
//
// All endpoints:
//   - Respond with Content-Type: application/json
//   - Return 405 for non-GET methods
//   - Return 400 for missing or malformed query parameters, 404 for unknown
//     surveys or filters, 422 when the survey tables carry unusable units
//
// JSON types are defined in types.go. No external HTTP framework is used.
package api
