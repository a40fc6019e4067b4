// Package exporter serializes conversion results to delimited text and
// spreadsheet files.
//
// This package contains two sinks:
//
// CSVWriter: core CSV writing with support for headers, streaming, and
// an optional UTF-8 BOM for Excel compatibility.
//
// XLSXWriter: spreadsheet output for the same results via excelize.
//
// Both sinks take a lightcurve.Result and write one row per surviving
// record, column order preserved. Cell formatting keeps native
// floating-point precision; masked passthrough cells serialize as empty
// fields.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(logger)
//	err := writer.WriteResult("lc.csv", result)
package exporter
