// Command lc2csv exports the HDU 1 binary table of a FITS light-curve
// file to a delimited table, adding derived magnitude, magnitude error,
// and barycentric time columns and dropping rows with unusable values.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"lcexport/internal/config"
	"lcexport/internal/exporter"
	"lcexport/internal/fits"
	"lcexport/internal/infrastructure"
	"lcexport/internal/lightcurve"
)

// Exit codes, kept stable for callers that script around the tool.
const (
	exitOK           = 0
	exitUnexpected   = 1
	exitUsage        = 2
	exitOpenFailed   = 3
	exitBadContainer = 5
	exitDestination  = 6
)

// options holds the parsed command line.
type options struct {
	inputPath string
	overwrite bool
	format    string
	// zeroPoint is nil when the flag was not supplied, so a genuine
	// 0.0 override stays distinguishable from "not given".
	zeroPoint *float64
}

func parseArgs(args []string) (*options, error) {
	fs := flag.NewFlagSet("lc2csv", flag.ContinueOnError)
	overwrite := fs.Bool("overwrite", false, "allow overwriting the destination file if it exists")
	zeroPoint := fs.Float64("zero-point", 0, "zero point used when the calibration keyword is absent from the header")
	format := fs.String("format", "", "output format: csv | xlsx (defaults to configuration)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, fmt.Errorf("a FITS filepath is required")
	}

	opts := &options{
		inputPath: fs.Arg(0),
		overwrite: *overwrite,
		format:    *format,
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "zero-point" {
			opts.zeroPoint = zeroPoint
		}
	})
	return opts, nil
}

// resolveOutputPath derives the destination from the input path by
// swapping the extension for the output format's.
func resolveOutputPath(inputPath, format string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + "." + format
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		defaults := config.Default()
		cfg = &defaults
	}

	format := cfg.Export.Format
	if opts.format != "" {
		format = opts.format
	}
	if format != "csv" && format != "xlsx" {
		fmt.Fprintf(os.Stderr, "Error: unsupported output format %q\n", format)
		return exitUsage
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if _, err := os.Stat(opts.inputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: file not found: %s\n", opts.inputPath)
		return exitUsage
	}

	outPath := resolveOutputPath(opts.inputPath, format)
	if _, err := os.Stat(outPath); err == nil && !opts.overwrite {
		fmt.Fprintf(os.Stderr, "Error: destination already exists: %s\nRe-run with --overwrite to replace it.\n", outPath)
		return exitDestination
	}

	logger.Info("Starting light-curve export",
		slog.String("input", opts.inputPath),
		slog.String("output", outPath),
		slog.String("format", format),
		slog.Bool("zero_point_override", opts.zeroPoint != nil))

	f, err := fits.Open(opts.inputPath)
	if err != nil {
		logger.Error("Cannot open FITS file",
			slog.String("path", opts.inputPath),
			slog.String("error", err.Error()))
		return exitOpenFailed
	}
	defer f.Close()

	table, err := f.LightCurveTable(1)
	if err != nil {
		logger.Error("Cannot read light-curve table",
			slog.String("path", opts.inputPath),
			slog.String("error", err.Error()))
		return exitBadContainer
	}

	engine := lightcurve.NewEngine(cfg.Convert.Params(), logger)
	engine.SetConcurrency(cfg.Convert.Concurrency)

	result, err := engine.Convert(context.Background(), f.PrimaryHeader(), table, opts.zeroPoint)
	if err != nil {
		var cfgErr *lightcurve.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "Error: %v. Supply --zero-point or use a file with the calibration keyword.\n", err)
			return exitUsage
		}
		var colErr *lightcurve.MissingColumnError
		if errors.As(err, &colErr) {
			logger.Error("Input table is missing a required column",
				slog.String("column", colErr.Column))
			return exitBadContainer
		}
		logger.Error("Conversion failed", slog.String("error", err.Error()))
		return exitUnexpected
	}

	switch format {
	case "xlsx":
		err = exporter.NewXLSXWriter(logger).WriteResult(outPath, result)
	default:
		err = exporter.NewCSVWriter(logger).WriteResult(outPath, result)
	}
	if err != nil {
		logger.Error("Cannot write output file",
			slog.String("path", outPath),
			slog.String("error", err.Error()))
		return exitDestination
	}

	fmt.Printf("Wrote %s (%d rows, %d dropped)\n", outPath, len(result.Records), result.Dropped)
	return exitOK
}
