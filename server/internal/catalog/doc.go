// Package catalog assembles the survey set served by galcheat-server.
//
// Sources.Load merges the embedded survey tables with an optional directory
// of YAML tables. Sources.Watch re-runs Load whenever a table in that
// directory is created, written, removed or renamed, and hands the new set to
// a callback; a reload that fails keeps the previous set.
package catalog
