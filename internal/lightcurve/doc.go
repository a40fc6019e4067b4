// Package lightcurve converts a satellite photometric light-curve table
// into flat output rows, adding a derived apparent-magnitude column, its
// propagated uncertainty, and a barycentric time column, and dropping
// rows whose raw or derived values are unusable.
//
// # Architecture
//
// The package is organized around three stages, executed in order by the
// Engine:
//
// 1. Zero-point resolution: pick the single calibration magnitude for
// the whole file from the header keyword or a caller override.
//
// 2. Per-row derivation: compute magnitude, magnitude error, and shifted
// time for every row independently.
//
// 3. Validity filtering: keep only rows whose raw inputs are present and
// finite and whose derived photometric values came out finite, in the
// original row order.
//
// # Usage
//
//	engine := lightcurve.NewEngine(lightcurve.DefaultParams(), logger)
//	result, err := engine.Convert(ctx, header, table, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// A missing zero point is fatal to the run and surfaces as a
// *ConfigurationError before any row is touched. Individual bad rows are
// not errors: they are silently dropped and tallied in Result.Dropped.
//
// # Data Model
//
// Cells are Value, a small sum type distinguishing masked cells from
// legitimate numbers, so a stored zero is never confused with an absent
// value. Tables are columnar, all columns equal length, column order
// preserved end to end.
package lightcurve
