// Package units defines the physical quantities shared by the photometry
// library, the survey tables and the server. It is a small closed unit
// algebra, not a general units library.
//
// Three base dimensions are tracked: count (ct), time (s) and angle (arcsec).
// A Unit is a dimension vector plus a scale factor to those base units.
// Logarithmic units mag(P) carry the physical reference unit P they are
// measured against:
//
//	Mag                 mag(dimensionless), e.g. a filter zeropoint
//	MagCountPerSecond   mag(ct / s), source magnitudes
//	MagPerSquareArcsec  mag(1 / arcsec2), sky surface brightness
//
// Quantity arithmetic checks dimensions at run time and fails with a
// *UnitError instead of coercing. Subtracting two magnitudes yields a
// magnitude referenced to the ratio of their physical units, so
// (mag(ct / s) - mag).To(CountPerSecond) turns a zeropoint difference into
// an absolute count rate.
package units
