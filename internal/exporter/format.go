package exporter

import (
	"strconv"

	"lcexport/internal/lightcurve"
)

// formatValue formats a cell for text output. Native floating-point
// precision is kept (no rounding policy); masked cells become empty
// fields.
func formatValue(v lightcurve.Value) string {
	if v.Masked {
		return ""
	}
	return strconv.FormatFloat(v.Float, 'g', -1, 64)
}

// cellValue returns the value excelize should store for a cell. Masked
// cells stay empty so spreadsheets show a blank, not a zero.
func cellValue(v lightcurve.Value) interface{} {
	if v.Masked {
		return nil
	}
	return v.Float
}
