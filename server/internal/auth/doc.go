// Package auth provides authentication middleware for galcheat-server.
//
// APIKey(mode, header, key, next) returns an http.Handler that validates the
// API key from the named request header before calling next.
//
// When mode != "apikey" or key == "", all requests pass through (useful for
// local development with auth disabled).
package auth
