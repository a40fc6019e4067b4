// Package fits opens FITS light-curve containers and adapts them to the
// inputs the lightcurve package expects: a primary-header keyword lookup
// and the HDU 1 binary table as an ordered column table with per-cell
// masked flags.
//
// The package wraps github.com/astrogo/fitsio and keeps all container
// concerns (HDU layout, card typing, cell coercion) out of the
// conversion core. Cells whose stored value is not a scalar number are
// surfaced as masked rather than dropped, so column order and row count
// are always preserved.
package fits
