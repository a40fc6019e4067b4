package lightcurve

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Params configures a conversion run: the input column names, the
// header keyword carrying the calibration zero point, the additive time
// offset, and the names of the three derived output columns.
type Params struct {
	FluxColumn           string
	FluxErrColumn        string
	TimeColumn           string
	ZeroPointKeyword     string
	TimeOffset           float64
	MagnitudeColumn      string
	MagnitudeErrorColumn string
	ShiftedTimeColumn    string
}

// DefaultParams returns the parameters for TESS SAP photometry files.
func DefaultParams() Params {
	return Params{
		FluxColumn:           "SAP_FLUX",
		FluxErrColumn:        "SAP_FLUX_ERR",
		TimeColumn:           "TIME",
		ZeroPointKeyword:     "TESSMAG",
		TimeOffset:           BTJDOffset,
		MagnitudeColumn:      "Source_AMag_T1",
		MagnitudeErrorColumn: "Source_AMag_Error_T1",
		ShiftedTimeColumn:    "BJD_TDB",
	}
}

// MissingColumnError reports that a column the conversion requires is
// absent from the input table. This is a shape problem with the whole
// file, not per-row data-quality noise.
type MissingColumnError struct {
	Column string
}

// Error implements the error interface.
func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in table", e.Column)
}

// minRowsForParallel is the row count below which chunked derivation is
// not worth the goroutine overhead.
const minRowsForParallel = 4096

// Engine orchestrates a conversion run: zero-point resolution, per-row
// derivation, validity filtering, and row assembly.
type Engine struct {
	params         Params
	logger         *slog.Logger
	maxConcurrency int
}

// NewEngine creates an engine with the given parameters.
func NewEngine(params Params, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		params:         params,
		logger:         logger,
		maxConcurrency: 1,
	}
}

// SetConcurrency bounds the number of goroutines used for row
// derivation. Rows are reassembled in input index order before
// filtering, so the output is identical at any setting.
func (e *Engine) SetConcurrency(n int) {
	if n > 0 {
		e.maxConcurrency = n
	}
}

// Convert runs the full pipeline over one file's header and column
// table. override, when non-nil, supplies a zero point used only if the
// header keyword is absent. The returned Result preserves input column
// order with the three derived columns appended, and input row order
// restricted to valid rows.
func (e *Engine) Convert(ctx context.Context, hdr Header, table *Table, override *float64) (*Result, error) {
	start := time.Now()

	zeroPoint, err := ResolveZeroPoint(hdr, e.params.ZeroPointKeyword, override)
	if err != nil {
		return nil, err
	}
	e.logger.InfoContext(ctx, "resolved zero point",
		"keyword", e.params.ZeroPointKeyword,
		"zero_point", zeroPoint,
		"override_supplied", override != nil,
	)

	flux, ok := table.Col(e.params.FluxColumn)
	if !ok {
		return nil, &MissingColumnError{Column: e.params.FluxColumn}
	}
	fluxErr, ok := table.Col(e.params.FluxErrColumn)
	if !ok {
		return nil, &MissingColumnError{Column: e.params.FluxErrColumn}
	}
	timeCol, ok := table.Col(e.params.TimeColumn)
	if !ok {
		return nil, &MissingColumnError{Column: e.params.TimeColumn}
	}

	n := table.NumRows()
	derivedRows := make([]derived, n)
	if e.maxConcurrency > 1 && n >= minRowsForParallel {
		e.deriveParallel(ctx, zeroPoint, flux, fluxErr, timeCol, derivedRows)
	} else {
		for i := 0; i < n; i++ {
			derivedRows[i] = deriveRow(zeroPoint, flux.Cells[i], fluxErr.Cells[i], timeCol.Cells[i], e.params.TimeOffset)
		}
	}

	cols := table.Columns()
	result := &Result{ZeroPoint: zeroPoint}
	result.Columns = make([]string, 0, len(cols)+3)
	for _, c := range cols {
		result.Columns = append(result.Columns, c.Name)
	}
	result.Columns = append(result.Columns,
		e.params.MagnitudeColumn,
		e.params.MagnitudeErrorColumn,
		e.params.ShiftedTimeColumn,
	)

	for i := 0; i < n; i++ {
		d := derivedRows[i]
		if !rowValid(flux.Cells[i], fluxErr.Cells[i], timeCol.Cells[i], d) {
			result.Dropped++
			continue
		}
		record := make([]Value, 0, len(cols)+3)
		for _, c := range cols {
			record = append(record, c.Cells[i])
		}
		record = append(record, d.mag, d.magErr, d.bjd)
		result.Records = append(result.Records, record)
	}

	e.logger.InfoContext(ctx, "conversion complete",
		"rows_in", n,
		"rows_out", len(result.Records),
		"rows_dropped", result.Dropped,
		"duration", time.Since(start),
	)

	return result, nil
}

// deriveParallel fills out with one derived entry per row using chunked
// workers. Each worker writes only its own index range, so no
// synchronization beyond the join is needed.
func (e *Engine) deriveParallel(ctx context.Context, zeroPoint float64, flux, fluxErr, timeCol *Column, out []derived) {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(e.maxConcurrency)

	chunk := (len(out) + e.maxConcurrency - 1) / e.maxConcurrency
	for beg := 0; beg < len(out); beg += chunk {
		end := beg + chunk
		if end > len(out) {
			end = len(out)
		}
		g.Go(func() error {
			for i := beg; i < end; i++ {
				out[i] = deriveRow(zeroPoint, flux.Cells[i], fluxErr.Cells[i], timeCol.Cells[i], e.params.TimeOffset)
			}
			return nil
		})
	}

	// Derivation never fails; Wait only joins the workers.
	_ = g.Wait()
}
