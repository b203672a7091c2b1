// Package config loads the galcheat-server configuration from YAML.
//
// Config fields:
//   - Server.HTTPPort                    port for /metrics and the REST API (default 9464)
//   - Server.ReadTimeout                 request read timeout (default 5s)
//   - Server.Auth.Mode                   "apikey" or "none"
//   - Server.Auth.KeyEnv                 environment variable holding the expected API key
//   - Server.Auth.Header                 HTTP header name (default "x-api-key")
//   - Surveys.Builtin                    include the embedded survey tables (default true)
//   - Surveys.Dir                        extra directory of survey tables
//   - Surveys.Watch                      hot-reload Dir on change (default true)
//   - Exposition.ReferenceMagnitudes     magnitudes exported as source counts (default 20, 22, 24)
//   - Log.Level / Log.Format             slog level and handler (default info, json)
//
// Load(path) applies defaults before unmarshalling, then validates.
package config
